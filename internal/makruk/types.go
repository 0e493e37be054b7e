package makruk

type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

type PieceKind int8

const (
	KindNone   PieceKind = iota
	KindKing             // ขุน
	KindMet              // เม็ด, advisor
	KindKnight           // ม้า
	KindRook             // เรือ
	KindKhon             // โคน
	KindPawn             // เบี้ย
)

const numKinds = 7

type Piece int8 // 0 = empty; >0 White; <0 Black; abs = PieceKind

func MakePiece(side Side, k PieceKind) Piece {
	if k == KindNone || side == NoSide {
		return 0
	}
	if side == White {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return White
	}
	return Black
}

func (p Piece) String() string {
	return string(pieceToChar(p))
}

type Board struct {
	Squares [NumSquares]Piece
}

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// Outcome is what Apply learned while executing a move.
type Outcome struct {
	Move     Move
	Piece    Piece // moving piece before promotion
	Captured Piece
	Promoted bool
}

// Position = board + side to move. Castling, en passant and clocks do not exist in Makruk.
type Position struct {
	Board      Board
	SideToMove Side
}

func (p *Position) At(sq Square) Piece {
	if !sq.Valid() {
		return 0
	}
	return p.Board.Squares[sq]
}
