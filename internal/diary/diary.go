// Package diary holds the user's fishing journal.
package diary

import (
	"context"

	"go.uber.org/zap"

	"github.com/faideww/fishing-journal/internal/kv"
	"github.com/faideww/fishing-journal/internal/persist"
)

const StorageKey = "@journal_v1"

type Store struct {
	list *persist.List[Entry]
	log  *zap.Logger
}

func New(store kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("diary")
	return &Store{
		list: persist.New(store, StorageKey, ID, persist.WithLogger(log)),
		log:  log,
	}
}

func (s *Store) Initialize(ctx context.Context) { s.list.Initialize(ctx) }

func (s *Store) Ready() <-chan struct{} { return s.list.Ready() }

// Add puts e at the front of the journal. The caller builds a valid entry;
// see NewEntry.
func (s *Store) Add(e Entry) {
	s.list.Prepend(e)
	s.log.Debug("entry added", zap.String("id", e.ID))
}

// Remove deletes the entry with id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.list.Remove(id)
	s.log.Debug("entry removed", zap.String("id", id))
}

// Entries returns the journal, newest first.
func (s *Store) Entries() []Entry { return s.list.Items() }

func (s *Store) Get(id string) (Entry, bool) { return s.list.Find(id) }

func (s *Store) Subscribe(fn func([]Entry)) func() { return s.list.Subscribe(fn) }

func (s *Store) Close(ctx context.Context) error { return s.list.Close(ctx) }
