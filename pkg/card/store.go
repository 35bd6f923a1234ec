package card

import (
	"context"
	"sort"
	"sync"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// Store loads card records.
type Store interface {
	// Get returns the record for id, or a CARD_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records ordered by ID.
	List(ctx context.Context) ([]Record, error)

	// Put creates or replaces a record.
	Put(ctx context.Context, rec *Record) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeCardNotFound, "card not found: %s", id)
}

func sortByID(recs []Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}

// MemoryStore keeps records in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates a store seeded with recs.
func NewMemoryStore(recs ...*Record) *MemoryStore {
	s := &MemoryStore{records: make(map[string]Record, len(recs))}
	for _, r := range recs {
		s.records[r.ID] = *r
	}
	return s
}

// Get implements Store. The returned record is a copy.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return &r, nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sortByID(out)
	return out, nil
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := errs.ValidateCardID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = *rec
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
