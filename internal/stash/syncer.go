package stash

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// A Syncer coalesces rapid toggles into one cloud push. Each Toggle
// persists locally right away; the cloud write fires once the operator
// pauses.
type Syncer struct {
	store     *Store
	cloud     *Cloud
	debounced func(f func())

	mu      sync.Mutex
	pending map[string]bool
}

// NewSyncer returns a new Syncer debouncing cloud pushes.
func NewSyncer(store *Store, cloud *Cloud) *Syncer {
	return &Syncer{
		store:     store,
		cloud:     cloud,
		debounced: debounce.New(500 * time.Millisecond),
		pending:   make(map[string]bool),
	}
}

// Toggle marks code as owned or not. The local store is updated
// synchronously, the cloud write is debounced and best effort.
func (s *Syncer) Toggle(code string, owned bool) error {
	if err := s.store.Toggle(code, owned); err != nil {
		return err
	}

	s.mu.Lock()
	s.pending[code] = owned
	s.mu.Unlock()

	s.debounced(s.flush)
	return nil
}

// Flush pushes the pending toggles to the cloud immediately. Used on
// shutdown so a quick exit does not lose the last toggles.
func (s *Syncer) Flush() {
	s.flush()
}

func (s *Syncer) flush() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]bool)
	s.mu.Unlock()

	for code, owned := range pending {
		if owned {
			_ = s.cloud.UpsertOne(code)
			continue
		}
		_ = s.cloud.DeleteOne(code)
	}
}
