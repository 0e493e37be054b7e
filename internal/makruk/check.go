package makruk

// IsAttacked reports whether any piece of bySide has sq among its raw
// candidate moves. Legality filtering is not applied here; it depends on this
// function and would recurse.
func (rs Ruleset) IsAttacked(p *Position, sq Square, bySide Side) bool {
	if !sq.Valid() {
		return false
	}
	var moves []Move
	for s := Square(0); s < NumSquares; s++ {
		pc := p.Board.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		moves = moves[:0]
		rs.genPieceMoves(p, s, &moves)
		for _, mv := range moves {
			if mv.To == sq {
				return true
			}
		}
	}
	return false
}

// IsCheck reports whether side's king is attacked. No king means no check.
func (rs Ruleset) IsCheck(p *Position, side Side) bool {
	kingSq := p.KingSquare(side)
	if kingSq == NoSquare {
		return false
	}
	return rs.IsAttacked(p, kingSq, Opposite(side))
}

func (rs Ruleset) IsCheckmate(p *Position, side Side) bool {
	return rs.IsCheck(p, side) && !rs.HasLegalMoves(p, side)
}

func (rs Ruleset) IsStalemate(p *Position, side Side) bool {
	return !rs.IsCheck(p, side) && !rs.HasLegalMoves(p, side)
}
