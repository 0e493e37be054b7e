package game

import (
	"errors"
	"sync"
	"testing"

	"makruk/internal/makruk"
)

func sq(s string) makruk.Square { return makruk.MustSquare(s) }

func newGame(t *testing.T, fen string) *Controller {
	t.Helper()
	c, err := New(makruk.DefaultRuleset(), fen)
	if err != nil {
		t.Fatalf("new game %q: %v", fen, err)
	}
	return c
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func sameKinds(got []Event, want ...EventKind) bool {
	k := kinds(got)
	if len(k) != len(want) {
		return false
	}
	for i := range k {
		if k[i] != want[i] {
			return false
		}
	}
	return true
}

func TestClickSelectThenMove(t *testing.T) {
	c := newGame(t, "")

	res := c.SelectOrMove(sq("a3"))
	if res.Action != ActionSelected {
		t.Fatalf("select a3: got %v", res.Action)
	}
	st := c.State()
	if st.Selected != sq("a3") || len(st.Targets) != 1 || st.Targets[0] != sq("a4") {
		t.Fatalf("selection: %v targets %v", st.Selected, st.Targets)
	}

	res = c.SelectOrMove(sq("a4"))
	if res.Action != ActionMoved {
		t.Fatalf("move a4: got %v", res.Action)
	}
	if !sameKinds(res.Events, EventMove, EventPositionChanged) {
		t.Fatalf("events: %v", kinds(res.Events))
	}
	st = c.State()
	if st.SideToMove != makruk.Black || st.MoveCount != 1 || st.Selected != makruk.NoSquare {
		t.Fatalf("after move: %+v", st)
	}
	if st.LastMove == nil || st.LastMove.String() != "a3a4" {
		t.Fatalf("last move: %v", st.LastMove)
	}
	want := "rnsmksnr/8/pppppppp/8/P7/1PPPPPPP/8/RNSKMSNR b - - 0 1"
	if st.Position != want || res.Events[0].Position != want {
		t.Fatalf("position: got %q want %q", st.Position, want)
	}
}

func TestClickIgnoresForeignAndEmptySquares(t *testing.T) {
	c := newGame(t, "")
	for _, s := range []string{"a6", "e8", "e4"} {
		if res := c.SelectOrMove(sq(s)); res.Action != ActionNone {
			t.Fatalf("click %s while idle: got %v", s, res.Action)
		}
	}
	if st := c.State(); st.Selected != makruk.NoSquare || st.Position != makruk.StartFEN {
		t.Fatalf("state changed: %+v", st)
	}
}

func TestClickCancelsOnNonTarget(t *testing.T) {
	tests := []struct {
		name   string
		second string
	}{
		{"SameSquare", "a3"},
		{"OtherOwnPiece", "b3"},
		{"EnemyPiece", "a6"},
		{"UnreachableEmpty", "a5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newGame(t, "")
			c.SelectOrMove(sq("a3"))
			res := c.SelectOrMove(sq(tt.second))
			if res.Action != ActionDeselected || len(res.Events) != 0 {
				t.Fatalf("second click: %v %v", res.Action, kinds(res.Events))
			}
			st := c.State()
			if st.Selected != makruk.NoSquare || st.Targets != nil {
				t.Fatalf("selection kept: %v %v", st.Selected, st.Targets)
			}
			if st.Position != makruk.StartFEN || st.MoveCount != 0 {
				t.Fatalf("position changed: %s", st.Position)
			}
		})
	}
}

func TestDragAndDrop(t *testing.T) {
	c := newGame(t, "")

	if res := c.DragStart(sq("a6")); res.Action != ActionNone {
		t.Fatalf("drag enemy piece: %v", res.Action)
	}
	if res := c.DragStart(sq("b1")); res.Action != ActionSelected {
		t.Fatalf("drag knight: %v", res.Action)
	}
	if st := c.State(); !st.Dragging || st.Selected != sq("b1") {
		t.Fatalf("drag state: %+v", st)
	}
	if res := c.Drop(sq("c3")); res.Action != ActionDeselected {
		t.Fatalf("drop on own pawn: %v", res.Action)
	}
	if st := c.State(); st.Dragging || st.Selected != makruk.NoSquare || st.MoveCount != 0 {
		t.Fatalf("drop should clear drag: %+v", st)
	}

	c.DragStart(sq("b1"))
	res := c.Drop(sq("d2"))
	if res.Action != ActionMoved {
		t.Fatalf("drop on d2: %v", res.Action)
	}
	if st := c.State(); st.LastMove == nil || st.LastMove.String() != "b1d2" || st.SideToMove != makruk.Black {
		t.Fatalf("after drop: %+v", st)
	}
}

func TestDragStartReplacesSelectionAndForeignDragKeepsIt(t *testing.T) {
	c := newGame(t, "")
	c.SelectOrMove(sq("a3"))
	if res := c.DragStart(sq("h8")); res.Action != ActionNone {
		t.Fatalf("drag enemy rook: %v", res.Action)
	}
	if st := c.State(); st.Selected != sq("a3") {
		t.Fatalf("foreign drag should keep selection, got %v", st.Selected)
	}
	c.DragStart(sq("h3"))
	if st := c.State(); st.Selected != sq("h3") || !st.Dragging {
		t.Fatalf("drag should replace selection: %+v", st)
	}
}

func TestDropWithoutDragDoesNotMove(t *testing.T) {
	c := newGame(t, "")
	c.SelectOrMove(sq("a3"))
	if res := c.Drop(sq("a4")); res.Action != ActionDeselected {
		t.Fatalf("drop after click selection: %v", res.Action)
	}
	if st := c.State(); st.MoveCount != 0 || st.Selected != makruk.NoSquare {
		t.Fatalf("state: %+v", st)
	}
	if res := c.Drop(sq("a4")); res.Action != ActionNone {
		t.Fatalf("drop while idle: %v", res.Action)
	}
}

func TestCaptureBucketsAndMaterial(t *testing.T) {
	c := newGame(t, "4k3/8/8/3r4/8/8/8/3RK3 w - - 0 1")
	res, err := c.Play(makruk.Move{From: sq("d1"), To: sq("d5")})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !sameKinds(res.Events, EventCapture, EventMove, EventPositionChanged) {
		t.Fatalf("events: %v", kinds(res.Events))
	}
	capture := res.Events[0]
	if capture.Piece != makruk.MakePiece(makruk.Black, makruk.KindRook) || capture.Side != makruk.White {
		t.Fatalf("capture event: %+v", capture)
	}
	st := c.State()
	if len(st.Captured[makruk.White]) != 1 || st.Captured[makruk.White][0].String() != "r" {
		t.Fatalf("white bucket: %v", st.Captured[makruk.White])
	}
	if len(st.Captured[makruk.Black]) != 0 {
		t.Fatalf("black bucket: %v", st.Captured[makruk.Black])
	}
	if st.Material[makruk.White] != 4 || st.Material[makruk.Black] != 0 {
		t.Fatalf("material: %v", st.Material)
	}
}

func TestCheckAndCheckmateEvents(t *testing.T) {
	c := newGame(t, "r7/8/8/8/8/8/8/K7 b - - 0 1")
	res, err := c.Play(makruk.Move{From: sq("a8"), To: sq("a2")})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !sameKinds(res.Events, EventMove, EventCheck, EventPositionChanged) {
		t.Fatalf("events: %v", kinds(res.Events))
	}
	if res.Events[1].Side != makruk.White {
		t.Fatalf("check side: %v", res.Events[1].Side)
	}
	if st := c.State(); !st.Check || st.Checkmate || st.Status != StatusCheck {
		t.Fatalf("state: %+v", st)
	}

	m := newGame(t, "7k/6pp/8/8/8/8/8/R5K1 w - - 0 1")
	res, err = m.Play(makruk.Move{From: sq("a1"), To: sq("a8")})
	if err != nil {
		t.Fatalf("play mate: %v", err)
	}
	if !sameKinds(res.Events, EventMove, EventCheckmate, EventPositionChanged) {
		t.Fatalf("events: %v", kinds(res.Events))
	}
	if res.Events[1].Side != makruk.White {
		t.Fatalf("winner: %v", res.Events[1].Side)
	}
	st := m.State()
	if !st.Check || !st.Checkmate || st.Status != StatusCheckmate {
		t.Fatalf("state: %+v", st)
	}
	if res := m.SelectOrMove(sq("g7")); res.Action != ActionNone {
		t.Fatalf("selection after mate: %v", res.Action)
	}
	if _, err := m.Play(makruk.Move{From: sq("g7"), To: sq("g6")}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("play after mate: %v", err)
	}
}

func TestStalemateStatus(t *testing.T) {
	c := newGame(t, "k7/8/1SK5/8/8/8/8/8 w - - 0 1")
	res, err := c.Play(makruk.Move{From: sq("c6"), To: sq("c7")})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !sameKinds(res.Events, EventMove, EventStalemate, EventPositionChanged) {
		t.Fatalf("events: %v", kinds(res.Events))
	}
	if st := c.State(); st.Status != StatusStalemate || st.Check {
		t.Fatalf("state: %+v", st)
	}
}

func TestPlayRejects(t *testing.T) {
	c := newGame(t, "")
	tests := []struct {
		name string
		mv   string
		err  error
	}{
		{"TwoSteps", "a3a5", ErrIllegalMove},
		{"EmptyOrigin", "e4e5", ErrIllegalMove},
		{"OpponentPiece", "a6a5", ErrNotYourTurn},
		{"OntoOwnPiece", "a1a3", ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv, err := makruk.ParseMove(tt.mv)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := c.Play(mv); !errors.Is(err, tt.err) {
				t.Fatalf("want %v, got %v", tt.err, err)
			}
		})
	}
	if st := c.State(); st.Position != makruk.StartFEN {
		t.Fatalf("rejected moves changed the position: %s", st.Position)
	}
}

func TestPlaySelectionHandling(t *testing.T) {
	c := newGame(t, "")
	c.SelectOrMove(sq("b1"))
	if _, err := c.Play(makruk.Move{From: sq("a3"), To: sq("a5")}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("play: %v", err)
	}
	if st := c.State(); st.Selected != sq("b1") || len(st.Targets) != 1 {
		t.Fatalf("rejected play changed the selection: %+v", st)
	}
	if _, err := c.Play(makruk.Move{From: sq("a3"), To: sq("a4")}); err != nil {
		t.Fatalf("play: %v", err)
	}
	if st := c.State(); st.Selected != makruk.NoSquare || st.Targets != nil {
		t.Fatalf("selection survived a move: %+v", st)
	}
}

func TestPieceLetters(t *testing.T) {
	ps := []makruk.Piece{
		makruk.MakePiece(makruk.Black, makruk.KindRook),
		makruk.MakePiece(makruk.White, makruk.KindMet),
		makruk.MakePiece(makruk.Black, makruk.KindPawn),
	}
	if got := PieceLetters(ps); got != "rMp" {
		t.Fatalf("got %q", got)
	}
	if got := PieceLetters(nil); got != "" {
		t.Fatalf("empty: %q", got)
	}
}

func TestUndoRestoresPreviousSnapshot(t *testing.T) {
	c := newGame(t, "4k3/8/8/3r4/8/8/8/3RK3 w - - 0 1")
	if _, err := c.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo on fresh game: %v", err)
	}
	before := c.State()
	if _, err := c.Play(makruk.Move{From: sq("d1"), To: sq("d5")}); err != nil {
		t.Fatalf("play: %v", err)
	}
	res, err := c.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if res.Action != ActionUndone || !sameKinds(res.Events, EventPositionChanged) {
		t.Fatalf("undo result: %v %v", res.Action, kinds(res.Events))
	}
	after := c.State()
	if after.Position != before.Position || after.MoveCount != 0 || after.LastMove != nil {
		t.Fatalf("undo: %+v", after)
	}
	if len(after.Captured[makruk.White]) != 0 || after.Material[makruk.White] != 0 {
		t.Fatalf("captures not rolled back: %v", after.Captured)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	c := newGame(t, "4k3/8/8/3r4/8/8/8/3RK3 w - - 0 1")
	if _, err := c.Play(makruk.Move{From: sq("d1"), To: sq("d5")}); err != nil {
		t.Fatalf("play: %v", err)
	}
	rec := c.Record()
	if rec.LastMove != "d1d5" || rec.MoveCount != 1 || rec.CapturedByWhite != "r" || rec.CapturedByBlack != "" {
		t.Fatalf("record: %+v", rec)
	}
	r, err := FromRecord(c.Rules(), rec)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	got, want := r.State(), c.State()
	if got.Position != want.Position || got.MoveCount != want.MoveCount || *got.LastMove != *want.LastMove {
		t.Fatalf("restored %+v want %+v", got, want)
	}
	if got.Material != want.Material {
		t.Fatalf("material: %v want %v", got.Material, want.Material)
	}
}

func TestMalformedInputs(t *testing.T) {
	if _, err := New(makruk.DefaultRuleset(), "8/8/8 w"); !errors.Is(err, makruk.ErrMalformedRecord) {
		t.Fatalf("new: %v", err)
	}
	bad := []Record{
		{Position: "nonsense"},
		{Position: makruk.StartFEN, LastMove: "z9"},
		{Position: makruk.StartFEN, CapturedByWhite: "q"},
		{Position: makruk.StartFEN, MoveCount: -1},
	}
	for _, rec := range bad {
		if _, err := FromRecord(makruk.DefaultRuleset(), rec); !errors.Is(err, makruk.ErrMalformedRecord) {
			t.Errorf("record %+v: %v", rec, err)
		}
	}
}

func TestListenersSeeInstalledState(t *testing.T) {
	c := newGame(t, "")
	var seen []EventKind
	c.Subscribe(func(ev Event) {
		seen = append(seen, ev.Kind)
		if ev.Kind == EventMove {
			// the controller is unlocked and already holds the new position
			if st := c.State(); st.Position != ev.Position {
				t.Errorf("listener saw %q, event says %q", st.Position, ev.Position)
			}
		}
	})
	c.SelectOrMove(sq("e3"))
	c.SelectOrMove(sq("e4"))
	if len(seen) != 2 || seen[0] != EventMove || seen[1] != EventPositionChanged {
		t.Fatalf("listener events: %v", seen)
	}
}

func TestConcurrentReadersAndMoves(t *testing.T) {
	c := newGame(t, "")
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				st := c.State()
				if _, err := makruk.DecodePosition(st.Position); err != nil {
					t.Errorf("reader saw bad position: %v", err)
					return
				}
				c.LegalTargets(sq("d1"))
			}
		}()
	}
	for _, s := range []string{"e3e4", "e6e5", "b1d2", "b8d7"} {
		mv, _ := makruk.ParseMove(s)
		if _, err := c.Play(mv); err != nil {
			t.Errorf("play %s: %v", s, err)
		}
	}
	close(stop)
	wg.Wait()
	if st := c.State(); st.MoveCount != 4 {
		t.Fatalf("move count: %d", st.MoveCount)
	}
}
