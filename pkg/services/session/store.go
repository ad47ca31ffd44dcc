package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/faoa-tools/annual-report/pkg/models/domain"
	"github.com/faoa-tools/annual-report/pkg/services/ingest"
	"github.com/faoa-tools/annual-report/pkg/services/summary"
)

// ErrNotFound is returned when a session id has no live session.
var ErrNotFound = errors.New("session not found")

// Store holds the live sessions for this process. Sessions are in-memory
// only and die with the process; there is no persistence.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create runs the ingest pipeline over the uploaded datasets and, when
// every validation passes, registers a new session. Any failure aborts
// before a session exists: there is no partial state to clean up.
func (st *Store) Create(datasets []ingest.RawDataset) (*Session, error) {
	normalized := make([][]domain.Transaction, 0, len(datasets))
	for _, ds := range datasets {
		rows, err := ingest.Normalize(ds)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, rows)
	}

	merged, err := ingest.Merge(normalized)
	if err != nil {
		return nil, err
	}
	year, err := ingest.ValidateSingleYear(merged)
	if err != nil {
		return nil, err
	}
	if err := ingest.ValidateCategories(merged); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Year:      year,
		Rows:      merged,
		Coverage:  ingest.MonthCoverage(merged),
		base:      summary.Build(merged),
		overrides: make(map[rowKey]float64),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess, nil
}

// Get returns the session with the given id, or ErrNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete discards a finished session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
