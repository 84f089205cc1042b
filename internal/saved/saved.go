// Package saved holds the user's bookmarked spots.
package saved

import (
	"context"

	"go.uber.org/zap"

	"github.com/faideww/fishing-journal/internal/kv"
	"github.com/faideww/fishing-journal/internal/persist"
	"github.com/faideww/fishing-journal/internal/spot"
)

const StorageKey = "@saved_spots_v1"

type Store struct {
	list *persist.List[spot.Spot]
	log  *zap.Logger
}

func New(store kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("saved")
	return &Store{
		list: persist.New(store, StorageKey, spot.Name, persist.WithLogger(log)),
		log:  log,
	}
}

func (s *Store) Initialize(ctx context.Context) { s.list.Initialize(ctx) }

func (s *Store) Ready() <-chan struct{} { return s.list.Ready() }

// Toggle unsaves sp if a spot with its name is saved, otherwise saves it at
// the front. It reports whether sp is saved afterwards.
func (s *Store) Toggle(sp spot.Spot) bool {
	added := s.list.Toggle(sp)
	s.log.Debug("toggled spot", zap.String("name", sp.Name), zap.Bool("saved", added))
	return added
}

// Saved returns the bookmarked spots, most recently saved first.
func (s *Store) Saved() []spot.Spot { return s.list.Items() }

func (s *Store) IsSaved(name string) bool { return s.list.Contains(name) }

func (s *Store) Subscribe(fn func([]spot.Spot)) func() { return s.list.Subscribe(fn) }

func (s *Store) Close(ctx context.Context) error { return s.list.Close(ctx) }
