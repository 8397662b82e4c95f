package columnar

import (
	"fmt"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Store collects converted columns of equal length in insertion order
type Store struct {
	mu      sync.RWMutex
	order   []string
	columns map[string]*TemporalColumn
	rows    int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{columns: make(map[string]*TemporalColumn)}
}

// Add stores col. The store takes ownership of the column.
func (s *Store) Add(col *TemporalColumn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.columns[col.Name()]; exists {
		return fmt.Errorf("column %q already exists", col.Name())
	}
	if len(s.order) > 0 && col.Len() != s.rows {
		return fmt.Errorf("column %q has %d rows, store has %d", col.Name(), col.Len(), s.rows)
	}
	s.rows = col.Len()
	s.order = append(s.order, col.Name())
	s.columns[col.Name()] = col
	return nil
}

// Get returns the named column
func (s *Store) Get(name string) (*TemporalColumn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.columns[name]
	return col, ok
}

// Columns returns the columns in insertion order
func (s *Store) Columns() []*TemporalColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*TemporalColumn, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.columns[name])
	}
	return out
}

// Rows returns the shared row count
func (s *Store) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Record builds an Arrow record over the stored arrays. The caller must
// release it.
func (s *Store) Record() arrow.Record {
	cols := s.Columns()
	fields := make([]arrow.Field, len(cols))
	arrs := make([]arrow.Array, len(cols))
	for i, c := range cols {
		fields[i] = c.Field()
		arrs[i] = c.Array()
	}
	return array.NewRecord(arrow.NewSchema(fields, nil), arrs, int64(s.Rows()))
}

// Release releases every stored column
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.columns {
		c.Release()
	}
	s.columns = make(map[string]*TemporalColumn)
	s.order = nil
	s.rows = 0
}
