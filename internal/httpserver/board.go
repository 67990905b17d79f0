package httpserver

import (
	"sync"
	"time"

	"github.com/tinytelemetry/smileguide/internal/model"
	"github.com/tinytelemetry/smileguide/internal/nav"
)

// Snapshot is the application state exposed by the status API.
type Snapshot struct {
	Ready     bool           `json:"ready"`
	Nav       nav.State      `json:"navigation"`
	Language  model.Language `json:"language"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Board holds the latest snapshot published by the TUI. The TUI writes from
// its event loop while HTTP handlers read from their own goroutines.
type Board struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Publish replaces the current snapshot.
func (b *Board) Publish(ready bool, state nav.State, lang model.Language) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = Snapshot{Ready: ready, Nav: state, Language: lang, UpdatedAt: time.Now().UTC()}
}

// Snapshot returns the current snapshot.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}
