package makruk

// Apply executes m on a copy of p. It does not check legality; callers validate
// with LegalMoves first. ok is false only when m.From holds no piece or a square
// is off the board. A pawn arriving on its promotion rank becomes a Met.
func (rs Ruleset) Apply(p *Position, m Move) (*Position, Outcome, bool) {
	if !m.From.Valid() || !m.To.Valid() {
		return nil, Outcome{}, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 {
		return nil, Outcome{}, false
	}
	out := Outcome{
		Move:     m,
		Piece:    pc,
		Captured: p.Board.Squares[m.To],
	}

	placed := pc
	if pc.Kind() == KindPawn && rowOf(m.To) == rs.promotionRow(pc.Side()) {
		placed = MakePiece(pc.Side(), KindMet)
		out.Promoted = true
	}

	np := *p
	np.Board.Squares[m.From] = 0
	np.Board.Squares[m.To] = placed
	np.SideToMove = Opposite(p.SideToMove)
	return &np, out, true
}
