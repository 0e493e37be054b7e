package makruk

import "fmt"

// Ruleset holds the configurable parts of the rules. It is a plain value: copies
// cannot affect each other, so one Ruleset may serve any number of games.
type Ruleset struct {
	// PromotionRank is the rank (1..8) on which a pawn of each side becomes a Met.
	PromotionRank [2]int
	// Values is the material value of each kind, indexed by PieceKind.
	Values [numKinds]int
}

var defaultValues = [numKinds]int{
	KindKing:   0,
	KindMet:    9,
	KindKnight: 3,
	KindRook:   4,
	KindKhon:   3,
	KindPawn:   1,
}

// DefaultRuleset promotes on the third rank counted from the opponent's side.
func DefaultRuleset() Ruleset {
	return Ruleset{
		PromotionRank: [2]int{White: 6, Black: 3},
		Values:        defaultValues,
	}
}

// NewRuleset validates promotion ranks; a nil values map keeps the defaults.
func NewRuleset(whitePromo, blackPromo int, values map[PieceKind]int) (Ruleset, error) {
	rs := DefaultRuleset()
	for _, r := range []int{whitePromo, blackPromo} {
		if r < 1 || r > Rows {
			return Ruleset{}, fmt.Errorf("%w: promotion rank %d", ErrInvalidRuleset, r)
		}
	}
	rs.PromotionRank = [2]int{White: whitePromo, Black: blackPromo}
	for k, v := range values {
		if k <= KindNone || k >= numKinds {
			return Ruleset{}, fmt.Errorf("%w: piece kind %d", ErrInvalidRuleset, k)
		}
		rs.Values[k] = v
	}
	return rs, nil
}

func (rs Ruleset) promotionRow(side Side) int {
	if side != White && side != Black {
		return -1
	}
	return Rows - rs.PromotionRank[side]
}

// Value returns the material value of a piece; 0 for an empty square.
func (rs Ruleset) Value(p Piece) int {
	if p == 0 {
		return 0
	}
	return rs.Values[p.Kind()]
}
