// Package lobby hosts games for the HTTP layer. Every table has its own
// controller; tables never share mutable state.
package lobby

import (
	"cmp"
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"makruk/internal/game"
	"makruk/internal/makruk"
	"makruk/internal/server/archive"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	rules   makruk.Ruleset
	archive *archive.Archive // nil: memory only

	mu     sync.RWMutex
	tables map[string]*Table
}

func NewManager(rules makruk.Ruleset, arc *archive.Archive) *Manager {
	return &Manager{
		rules:   rules,
		archive: arc,
		tables:  make(map[string]*Table),
	}
}

// NewGame opens a table at fen, or at the start position when fen is empty.
func (m *Manager) NewGame(fen string) (*Table, error) {
	ctrl, err := game.New(m.rules, fen)
	if err != nil {
		return nil, err
	}
	t := m.host(uuid.NewString(), ctrl)
	m.persist(t)
	log.Printf("game %s created (%d hosted)", t.ID, m.Len())
	return t, nil
}

// Get returns the table for id, reloading it from the archive when it is not in memory.
func (m *Manager) Get(id string) (*Table, error) {
	m.mu.RLock()
	t, ok := m.tables[id]
	m.mu.RUnlock()
	if ok {
		return t, nil
	}
	if m.archive == nil {
		return nil, ErrGameNotFound
	}

	rec, err := m.archive.Load(id)
	if errors.Is(err, archive.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	ctrl, err := game.FromRecord(m.rules, rec)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tables[id]; ok {
		return t, nil // another request resumed it first
	}
	t = m.newTable(id, ctrl)
	m.tables[id] = t
	log.Printf("game %s resumed from archive", id)
	return t, nil
}

// Remove forgets a table and its archived record.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	_, ok := m.tables[id]
	delete(m.tables, id)
	m.mu.Unlock()

	if m.archive != nil {
		_, err := m.archive.Load(id)
		switch {
		case err == nil:
			ok = true
			if err := m.archive.Delete(id); err != nil {
				return err
			}
		case !errors.Is(err, archive.ErrNotFound):
			return err
		}
	}
	if !ok {
		return ErrGameNotFound
	}
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

func (m *Manager) host(id string, ctrl *game.Controller) *Table {
	t := m.newTable(id, ctrl)
	m.mu.Lock()
	m.tables[id] = t
	m.mu.Unlock()
	return t
}

func (m *Manager) newTable(id string, ctrl *game.Controller) *Table {
	now := time.Now()
	t := &Table{ID: id, Game: ctrl, CreatedAt: now, updatedAt: now}
	ctrl.Subscribe(func(ev game.Event) {
		if ev.Kind == game.EventPositionChanged {
			m.persist(t)
		}
	})
	return t
}

// persist stamps the table and saves its current record. The record is read
// under t.mu, so whichever save runs last stores the newest position.
func (m *Manager) persist(t *Table) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.updatedAt = time.Now()
	if m.archive == nil {
		return
	}
	if err := m.archive.Save(t.ID, t.Game.Record()); err != nil {
		log.Printf("game %s: archive save failed: %v", t.ID, err)
	}
}

// List returns hosted and archived games, most recently updated first.
func (m *Manager) List() ([]GameInfo, error) {
	m.mu.RLock()
	out := make([]GameInfo, 0, len(m.tables))
	hosted := make(map[string]bool, len(m.tables))
	for id, t := range m.tables {
		hosted[id] = true
		out = append(out, GameInfo{ID: id, Hosted: true, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt()})
	}
	m.mu.RUnlock()

	if m.archive != nil {
		sums, err := m.archive.List()
		if err != nil {
			return nil, err
		}
		for _, s := range sums {
			if !hosted[s.ID] {
				out = append(out, GameInfo{ID: s.ID, UpdatedAt: s.SavedAt})
			}
		}
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
