package makruk

import (
	"sort"
	"strings"
	"testing"
)

func mustDecode(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

// targets renders the destinations of moves as a sorted, space separated list.
func targets(moves []Move) string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.To.String()
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}
