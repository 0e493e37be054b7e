package game

import (
	"fmt"
	"strings"

	"makruk/internal/makruk"
)

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// snapshot is one installed position plus its bookkeeping. Snapshots are
// never modified after installation, so history can share them.
type snapshot struct {
	pos       *makruk.Position
	lastMove  makruk.Move
	hasLast   bool
	moveCount int
	captured  [2][]makruk.Piece // indexed by the capturing side
	check     bool
	checkmate bool
	stalemate bool
}

func (s *snapshot) status() Status {
	switch {
	case s.checkmate:
		return StatusCheckmate
	case s.stalemate:
		return StatusStalemate
	case s.check:
		return StatusCheck
	default:
		return StatusOngoing
	}
}

func (s *snapshot) over() bool { return s.checkmate || s.stalemate }

// State is a copy of the controller state for readers.
type State struct {
	Position   string
	SideToMove makruk.Side
	Selected   makruk.Square
	Targets    []makruk.Square
	Dragging   bool
	LastMove   *makruk.Move
	MoveCount  int
	Captured   [2][]makruk.Piece
	Material   [2]int
	Check      bool
	Checkmate  bool
	Status     Status
	LegalMoves []makruk.Move // every legal move of SideToMove
}

// Record is the persistable summary of a game. Undo history is not part of it.
type Record struct {
	Position        string `json:"position"`
	MoveCount       int    `json:"move_count"`
	LastMove        string `json:"last_move,omitempty"`
	CapturedByWhite string `json:"captured_by_white,omitempty"`
	CapturedByBlack string `json:"captured_by_black,omitempty"`
}

// PieceLetters spells pieces with their position-text letters, e.g. "rpp".
func PieceLetters(ps []makruk.Piece) string {
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteString(p.String())
	}
	return sb.String()
}

func parsePieces(s string) ([]makruk.Piece, error) {
	var out []makruk.Piece
	for _, ch := range s {
		p, ok := makruk.ParsePiece(ch)
		if !ok {
			return nil, fmt.Errorf("%w: captured piece %q", makruk.ErrMalformedRecord, ch)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *snapshot) record() Record {
	rec := Record{
		Position:        s.pos.Encode(),
		MoveCount:       s.moveCount,
		CapturedByWhite: PieceLetters(s.captured[makruk.White]),
		CapturedByBlack: PieceLetters(s.captured[makruk.Black]),
	}
	if s.hasLast {
		rec.LastMove = s.lastMove.String()
	}
	return rec
}

func snapshotFromRecord(rec Record) (snapshot, error) {
	pos, err := makruk.DecodePosition(rec.Position)
	if err != nil {
		return snapshot{}, err
	}
	s := snapshot{pos: pos, moveCount: rec.MoveCount}
	if rec.MoveCount < 0 {
		return snapshot{}, fmt.Errorf("%w: move count %d", makruk.ErrMalformedRecord, rec.MoveCount)
	}
	if rec.LastMove != "" {
		mv, err := makruk.ParseMove(rec.LastMove)
		if err != nil {
			return snapshot{}, fmt.Errorf("%w: last move: %v", makruk.ErrMalformedRecord, err)
		}
		s.lastMove, s.hasLast = mv, true
	}
	if s.captured[makruk.White], err = parsePieces(rec.CapturedByWhite); err != nil {
		return snapshot{}, err
	}
	if s.captured[makruk.Black], err = parsePieces(rec.CapturedByBlack); err != nil {
		return snapshot{}, err
	}
	return s, nil
}
