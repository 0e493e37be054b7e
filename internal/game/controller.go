// Package game drives one Makruk game: it owns the current position and turns
// clicks, drags and direct moves into validated moves.
//
// Click channel: with nothing selected, a click on an own piece selects it.
// With a selection, a click on one of its targets plays the move and any other
// click (the same square or another own piece included) drops the selection.
//
// Drag channel: DragStart on an own piece selects it, replacing any earlier
// selection; elsewhere it does nothing. Drop plays the move when the square is
// a target and always ends the drag with the selection cleared.
package game

import (
	"fmt"
	"slices"
	"sync"

	"makruk/internal/makruk"
)

type Controller struct {
	mu    sync.Mutex
	rules makruk.Ruleset

	cur     snapshot
	history []snapshot

	selected makruk.Square
	targets  []makruk.Square
	dragging bool

	listeners []Listener
}

// New starts a game from fen, or from the standard array when fen is empty.
func New(rules makruk.Ruleset, fen string) (*Controller, error) {
	if fen == "" {
		fen = makruk.StartFEN
	}
	pos, err := makruk.DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return newController(rules, snapshot{pos: pos}), nil
}

// FromRecord resumes a game saved with Record.
func FromRecord(rules makruk.Ruleset, rec Record) (*Controller, error) {
	s, err := snapshotFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return newController(rules, s), nil
}

func newController(rules makruk.Ruleset, s snapshot) *Controller {
	c := &Controller{rules: rules, selected: makruk.NoSquare}
	c.evaluate(&s)
	c.cur = s
	return c
}

func (c *Controller) Rules() makruk.Ruleset { return c.rules }

// Subscribe registers fn for every future event.
func (c *Controller) Subscribe(fn Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// SelectOrMove handles a click on sq.
func (c *Controller) SelectOrMove(sq makruk.Square) Result {
	c.mu.Lock()
	var res Result
	switch {
	case c.selected == makruk.NoSquare:
		if c.trySelect(sq) {
			res.Action = ActionSelected
		}
	case slices.Contains(c.targets, sq):
		res.Action = ActionMoved
		res.Events = c.commit(makruk.Move{From: c.selected, To: sq})
	default:
		c.clearSelection()
		res.Action = ActionDeselected
	}
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, res.Events)
	return res
}

// DragStart picks up the piece on sq.
func (c *Controller) DragStart(sq makruk.Square) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.trySelect(sq) {
		return Result{}
	}
	c.dragging = true
	return Result{Action: ActionSelected}
}

// Drop releases the dragged piece on sq.
func (c *Controller) Drop(sq makruk.Square) Result {
	c.mu.Lock()
	var res Result
	switch {
	case c.dragging && c.selected != makruk.NoSquare && slices.Contains(c.targets, sq):
		res.Action = ActionMoved
		res.Events = c.commit(makruk.Move{From: c.selected, To: sq})
	case c.selected != makruk.NoSquare:
		res.Action = ActionDeselected
	}
	c.clearSelection()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, res.Events)
	return res
}

// Play makes a move without going through selection, as transports that
// already know both squares do. A successful move drops any selection; a
// rejected one leaves it in place.
func (c *Controller) Play(mv makruk.Move) (Result, error) {
	c.mu.Lock()
	if c.cur.over() {
		c.mu.Unlock()
		return Result{}, ErrGameOver
	}
	pc := c.cur.pos.At(mv.From)
	if pc == 0 {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("%w: no piece on %s", ErrIllegalMove, mv.From)
	}
	if pc.Side() != c.cur.pos.SideToMove {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("%w: %s belongs to %s", ErrNotYourTurn, mv.From, pc.Side())
	}
	if !c.rules.IsLegal(c.cur.pos, mv) {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	res := Result{Action: ActionMoved, Events: c.commit(mv)}
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, res.Events)
	return res, nil
}

// Undo reinstates the snapshot before the last move.
func (c *Controller) Undo() (Result, error) {
	c.mu.Lock()
	if len(c.history) == 0 {
		c.mu.Unlock()
		return Result{}, ErrNothingToUndo
	}
	c.cur = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.clearSelection()
	res := Result{
		Action: ActionUndone,
		Events: []Event{{
			Kind:      EventPositionChanged,
			Position:  c.cur.pos.Encode(),
			MoveCount: c.cur.moveCount,
		}},
	}
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, res.Events)
	return res, nil
}

// LegalTargets lists where the piece on sq may go, whoever owns it.
func (c *Controller) LegalTargets(sq makruk.Square) []makruk.Square {
	c.mu.Lock()
	defer c.mu.Unlock()
	return makruk.Destinations(c.rules.LegalMoves(c.cur.pos, sq))
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{
		Position:   c.cur.pos.Encode(),
		SideToMove: c.cur.pos.SideToMove,
		Selected:   c.selected,
		Targets:    slices.Clone(c.targets),
		Dragging:   c.dragging,
		MoveCount:  c.cur.moveCount,
		Check:      c.cur.check,
		Checkmate:  c.cur.checkmate,
		Status:     c.cur.status(),
		LegalMoves: c.rules.LegalMovesForSide(c.cur.pos, c.cur.pos.SideToMove),
	}
	if c.cur.hasLast {
		mv := c.cur.lastMove
		s.LastMove = &mv
	}
	for _, side := range []makruk.Side{makruk.White, makruk.Black} {
		s.Captured[side] = slices.Clone(c.cur.captured[side])
		for _, p := range c.cur.captured[side] {
			s.Material[side] += c.rules.Value(p)
		}
	}
	return s
}

func (c *Controller) Record() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur.record()
}

// trySelect selects sq when it holds a piece of the side to move.
func (c *Controller) trySelect(sq makruk.Square) bool {
	if c.cur.over() {
		return false
	}
	pc := c.cur.pos.At(sq)
	if pc == 0 || pc.Side() != c.cur.pos.SideToMove {
		return false
	}
	c.selected = sq
	c.targets = makruk.Destinations(c.rules.LegalMoves(c.cur.pos, sq))
	return true
}

func (c *Controller) clearSelection() {
	c.selected = makruk.NoSquare
	c.targets = nil
	c.dragging = false
}

// commit installs the position after mv together with its check flags.
// mv must be legal. Called with c.mu held.
func (c *Controller) commit(mv makruk.Move) []Event {
	np, out, ok := c.rules.Apply(c.cur.pos, mv)
	if !ok {
		c.clearSelection()
		return nil
	}
	mover := out.Piece.Side()
	next := snapshot{
		pos:       np,
		lastMove:  mv,
		hasLast:   true,
		moveCount: c.cur.moveCount + 1,
		captured:  c.cur.captured,
	}
	var events []Event
	if out.Captured != 0 {
		next.captured[mover] = append(slices.Clone(c.cur.captured[mover]), out.Captured)
		events = append(events, Event{Kind: EventCapture, Move: mv, Piece: out.Captured, Side: mover})
	}
	c.evaluate(&next)

	c.history = append(c.history, c.cur)
	c.cur = next
	c.clearSelection()

	encoded := np.Encode()
	events = append(events, Event{Kind: EventMove, Move: mv, Position: encoded, Piece: out.Piece, Side: mover, MoveCount: next.moveCount})
	toMove := np.SideToMove
	switch {
	case next.checkmate:
		events = append(events, Event{Kind: EventCheckmate, Side: makruk.Opposite(toMove)})
	case next.check:
		events = append(events, Event{Kind: EventCheck, Side: toMove})
	case next.stalemate:
		events = append(events, Event{Kind: EventStalemate, Side: toMove})
	}
	events = append(events, Event{Kind: EventPositionChanged, Move: mv, Position: encoded, MoveCount: next.moveCount})
	return events
}

func (c *Controller) evaluate(s *snapshot) {
	side := s.pos.SideToMove
	s.check = c.rules.IsCheck(s.pos, side)
	hasMoves := c.rules.HasLegalMoves(s.pos, side)
	s.checkmate = s.check && !hasMoves
	s.stalemate = !s.check && !hasMoves
}

func notify(listeners []Listener, events []Event) {
	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}
