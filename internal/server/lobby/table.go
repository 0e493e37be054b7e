package lobby

import (
	"sync"
	"time"

	"makruk/internal/game"
)

// Table is one hosted game.
type Table struct {
	ID        string
	Game      *game.Controller
	CreatedAt time.Time

	// mu serializes Record+Save so the archive never ends on an older record,
	// and guards updatedAt.
	mu        sync.Mutex
	updatedAt time.Time
}

// UpdatedAt reports when the table last changed.
func (t *Table) UpdatedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updatedAt
}

// GameInfo lists a game hosted in memory or only present in the archive.
type GameInfo struct {
	ID        string
	Hosted    bool
	CreatedAt time.Time // zero for archived games not loaded since start
	UpdatedAt time.Time
}
