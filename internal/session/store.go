package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Store persists sessions. Implementations return copies from Get so that
// callers never share memory with stored state.
type Store interface {
	// Create saves a new session.
	Create(ctx context.Context, s *Session) error

	// Get loads a session, or returns an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// AppendQuestion adds a newly generated question to the session.
	AppendQuestion(ctx context.Context, sessionID string, q *problemgen.Question) error

	// SaveAnswer persists the answered question together with the session's
	// score, current index and end time.
	SaveAnswer(ctx context.Context, s *Session, q *problemgen.Question) error

	// End records the session's end time.
	End(ctx context.Context, sessionID string, at time.Time) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) AppendQuestion(_ context.Context, sessionID string, q *problemgen.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	s.Questions = append(s.Questions, q.Clone())
	return nil
}

func (m *MemoryStore) SaveAnswer(_ context.Context, in *Session, q *problemgen.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[in.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, in.ID)
	}
	replaced := false
	for i, existing := range s.Questions {
		if existing.ID == q.ID {
			s.Questions[i] = q.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, q.ID)
	}
	s.Score = in.Score
	s.CurrentIndex = in.CurrentIndex
	if in.EndedAt != nil {
		t := *in.EndedAt
		s.EndedAt = &t
	}
	return nil
}

func (m *MemoryStore) End(_ context.Context, sessionID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if s.EndedAt == nil {
		s.EndedAt = &at
	}
	return nil
}
