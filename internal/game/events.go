package game

import "makruk/internal/makruk"

type EventKind int

const (
	EventMove EventKind = iota
	EventCapture
	EventCheck
	EventCheckmate
	EventStalemate
	EventPositionChanged
)

var eventNames = [...]string{
	EventMove:            "move",
	EventCapture:         "capture",
	EventCheck:           "check",
	EventCheckmate:       "checkmate",
	EventStalemate:       "stalemate",
	EventPositionChanged: "position_changed",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is a notification for the presentation layer.
//
//	EventMove            Move, Position (after the move), MoveCount
//	EventCapture         Piece (taken), Side (capturer)
//	EventCheck           Side (the side in check)
//	EventCheckmate       Side (the winner)
//	EventStalemate       Side (the side without moves)
//	EventPositionChanged Move (zero after undo), Position, MoveCount
type Event struct {
	Kind      EventKind
	Move      makruk.Move
	Position  string
	Piece     makruk.Piece
	Side      makruk.Side
	MoveCount int
}

// Listener receives events after the new state is installed.
// It may call back into the Controller.
type Listener func(Event)

type Action int

const (
	ActionNone Action = iota
	ActionSelected
	ActionDeselected
	ActionMoved
	ActionUndone
)

var actionNames = [...]string{
	ActionNone:       "none",
	ActionSelected:   "selected",
	ActionDeselected: "deselected",
	ActionMoved:      "moved",
	ActionUndone:     "undone",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Result tells the caller what a command did.
type Result struct {
	Action Action
	Events []Event
}
