package makruk

import "fmt"

// Square indexes the board row-major from a8 (0) to h1 (63).
type Square int

const NoSquare Square = -1

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// File returns 0..7 for a..h.
func (s Square) File() int { return colOf(s) }

// Rank returns 1..8.
func (s Square) Rank() int { return Rows - rowOf(s) }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('0' + s.Rank())})
}

// SquareAt builds a square from a 0-based file and a 1-based rank.
func SquareAt(file, rank int) Square {
	row := Rows - rank
	if !onBoard(row, file) {
		return NoSquare
	}
	return indexOf(row, file)
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return SquareAt(int(f-'a'), int(r-'0')), nil
}

// MustSquare is ParseSquare for constants and tests.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseMove reads coordinate notation such as "a3a4".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: move %q", ErrInvalidSquare, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}
