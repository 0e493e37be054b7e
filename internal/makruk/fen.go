package makruk

import (
	"fmt"
	"strings"
)

// Encode writes the FEN-like record: 8 ranks from rank 8 down, digits for empty runs,
// then the side to move and the fixed "- - 0 1" placeholders.
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteString(" - - 0 1")
	return sb.String()
}

func (p *Position) String() string { return p.Encode() }

func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty record", ErrMalformedRecord)
	}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Rows {
		return nil, fmt.Errorf("%w: %d ranks", ErrMalformedRecord, len(ranks))
	}
	var b Board
	for r, rank := range ranks {
		c := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				if c > Cols {
					return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedRecord, Rows-r)
				}
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown character %q", ErrMalformedRecord, ch)
			}
			if c >= Cols {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedRecord, Rows-r)
			}
			b.Squares[indexOf(r, c)] = pc
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: rank %d has %d squares", ErrMalformedRecord, Rows-r, c)
		}
	}

	stm := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
		case "b":
			stm = Black
		default:
			return nil, fmt.Errorf("%w: side %q", ErrMalformedRecord, parts[1])
		}
	}
	return &Position{Board: b, SideToMove: stm}, nil
}
