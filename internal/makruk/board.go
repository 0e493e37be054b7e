package makruk

import (
	"unicode"
	"unicode/utf8"
)

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols
)

// StartFEN is the standard Makruk opening array. Kings stand on d1 and e8.
const StartFEN = "rnsmksnr/8/pppppppp/8/8/PPPPPPPP/8/RNSKMSNR w - - 0 1"

func indexOf(row, col int) Square { return Square(row*Cols + col) }
func rowOf(sq Square) int         { return int(sq) / Cols }
func colOf(sq Square) int         { return int(sq) % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func Opposite(side Side) Side {
	if side == White {
		return Black
	}
	if side == Black {
		return White
	}
	return NoSide
}

// forwardDir is the row delta of one step forward: White climbs toward rank 8.
func forwardDir(side Side) int {
	if side == White {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

var letterToKind = map[rune]PieceKind{
	'k': KindKing,
	'm': KindMet,
	'n': KindKnight,
	'r': KindRook,
	's': KindKhon,
	'p': KindPawn,
}

var kindToLetter = [numKinds]rune{
	KindNone:   '.',
	KindKing:   'k',
	KindMet:    'm',
	KindKnight: 'n',
	KindRook:   'r',
	KindKhon:   's',
	KindPawn:   'p',
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	k := p.Kind()
	if k <= KindNone || k >= numKinds {
		return '.'
	}
	if p.Side() == White {
		return unicode.ToUpper(kindToLetter[k])
	}
	return kindToLetter[k]
}

// charToPiece accepts ASCII letters only; case folding would otherwise map
// runes such as U+212A KELVIN SIGN onto 'k'.
func charToPiece(ch rune) (Piece, bool) {
	if ch >= utf8.RuneSelf {
		return 0, false
	}
	k, ok := letterToKind[unicode.ToLower(ch)]
	if !ok {
		return 0, false
	}
	side := Black
	if unicode.IsUpper(ch) {
		side = White
	}
	return MakePiece(side, k), true
}

func NewInitialPosition() *Position {
	pos, err := DecodePosition(StartFEN)
	if err != nil {
		panic("StartFEN: " + err.Error())
	}
	return pos
}

// KingSquare returns NoSquare when side has no king on the board.
func (p *Position) KingSquare(side Side) Square {
	for sq, pc := range p.Board.Squares {
		if pc != 0 && pc.Side() == side && pc.Kind() == KindKing {
			return Square(sq)
		}
	}
	return NoSquare
}

// ParsePiece reads a single FEN letter; case selects the side.
func ParsePiece(ch rune) (Piece, bool) {
	return charToPiece(ch)
}
