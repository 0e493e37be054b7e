package makruk

// CandidateMoves lists the squares the piece on from can reach geometrically,
// ignoring whether its own king would be left attacked.
func (rs Ruleset) CandidateMoves(p *Position, from Square) []Move {
	var moves []Move
	rs.genPieceMoves(p, from, &moves)
	return moves
}

func (rs Ruleset) genPieceMoves(p *Position, from Square, moves *[]Move) {
	if !from.Valid() {
		return
	}
	pc := p.Board.Squares[from]
	switch pc.Kind() {
	case KindKing:
		genKingMoves(p, from, moves)
	case KindMet:
		genMetMoves(p, from, moves)
	case KindKnight:
		genKnightMoves(p, from, moves)
	case KindRook:
		genRookMoves(p, from, moves)
	case KindKhon:
		genKhonMoves(p, from, moves)
	case KindPawn:
		rs.genPawnMoves(p, from, moves)
	}
}

// GeneratePseudoMovesForSide collects the candidate moves of every piece of side.
func (rs Ruleset) GeneratePseudoMovesForSide(p *Position, side Side) []Move {
	var moves []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		rs.genPieceMoves(p, sq, &moves)
	}
	return moves
}

// LegalMoves filters the candidates of the piece on from: no landing on an own
// piece and no move that leaves the mover's king attacked. The mover is whoever
// owns the piece, independent of p.SideToMove. An empty square yields nil.
func (rs Ruleset) LegalMoves(p *Position, from Square) []Move {
	pc := p.At(from)
	if pc == 0 {
		return nil
	}
	side := pc.Side()
	pseudo := rs.CandidateMoves(p, from)
	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if dst := p.Board.Squares[mv.To]; dst != 0 && dst.Side() == side {
			continue
		}
		np, _, ok := rs.Apply(p, mv)
		if !ok {
			continue
		}
		if rs.IsCheck(np, side) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// LegalMovesForSide is the union of LegalMoves over every piece of side.
func (rs Ruleset) LegalMovesForSide(p *Position, side Side) []Move {
	var out []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		out = append(out, rs.LegalMoves(p, sq)...)
	}
	return out
}

func (rs Ruleset) HasLegalMoves(p *Position, side Side) bool {
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		if len(rs.LegalMoves(p, sq)) > 0 {
			return true
		}
	}
	return false
}

// IsLegal reports whether m is among LegalMoves(p, m.From).
func (rs Ruleset) IsLegal(p *Position, m Move) bool {
	for _, lm := range rs.LegalMoves(p, m.From) {
		if lm.To == m.To {
			return true
		}
	}
	return false
}

// Destinations projects moves onto their target squares.
func Destinations(moves []Move) []Square {
	out := make([]Square, len(moves))
	for i, m := range moves {
		out[i] = m.To
	}
	return out
}
