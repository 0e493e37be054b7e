// Package archive keeps game records in BadgerDB so hosted games survive a restart.
package archive

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"makruk/internal/game"
)

const keyPrefix = "game/"

var ErrNotFound = errors.New("game record not found")

// Summary describes one stored game without decoding its position.
type Summary struct {
	ID      string
	SavedAt time.Time
}

type entry struct {
	Record  game.Record `json:"record"`
	SavedAt time.Time   `json:"saved_at"`
}

// Archive wraps BadgerDB for game records.
type Archive struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Archive) Save(id string, rec game.Record) error {
	data, err := json.Marshal(entry{Record: rec, SavedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+id), data)
	})
}

func (a *Archive) Load(id string) (game.Record, error) {
	var e entry
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	return e.Record, err
}

func (a *Archive) Delete(id string) error {
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + id))
	})
}

// List summarizes all stored games in key order.
func (a *Archive) List() ([]Summary, error) {
	var out []Summary
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var e entry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			out = append(out, Summary{
				ID:      strings.TrimPrefix(string(item.Key()), keyPrefix),
				SavedAt: e.SavedAt,
			})
		}
		return nil
	})
	return out, err
}
