// Package session manages per-session resume drafts and the last-used
// template. Each editing session owns exactly one draft; the store only
// guarantees isolation between sessions, not coordination within one.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/types"
)

// ErrNotFound indicates the session ID is unknown to the store.
type ErrNotFound struct {
	SessionID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// Store persists in-progress drafts keyed by session ID.
type Store interface {
	// Create registers a new empty session and returns its ID.
	Create(ctx context.Context) (string, error)
	// LoadDraft returns the draft for a session.
	LoadDraft(ctx context.Context, sessionID string) (types.ResumeData, error)
	// SaveDraft replaces the draft for a session.
	SaveDraft(ctx context.Context, sessionID string, draft types.ResumeData) error
	// LastTemplate returns the last-used template for a session, empty if none.
	LastTemplate(ctx context.Context, sessionID string) (string, error)
	// SetLastTemplate records the last-used template for a session.
	SetLastTemplate(ctx context.Context, sessionID, template string) error
	// Clear resets the session to an empty draft and no last-used template.
	Clear(ctx context.Context, sessionID string) error
}

// entry is one session's state.
type entry struct {
	draft        types.ResumeData
	lastTemplate string
}

// MemoryStore is the in-memory Store used for single-process deployments and
// tests. The mutex keeps independent sessions isolated from each other.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*entry)}
}

// Create registers a new empty session.
func (s *MemoryStore) Create(_ context.Context) (string, error) {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry{}
	return id, nil
}

// LoadDraft returns a copy of the session's draft.
func (s *MemoryStore) LoadDraft(_ context.Context, sessionID string) (types.ResumeData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return types.ResumeData{}, &ErrNotFound{SessionID: sessionID}
	}
	return e.draft.Clone(), nil
}

// SaveDraft replaces the session's draft.
func (s *MemoryStore) SaveDraft(_ context.Context, sessionID string, draft types.ResumeData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return &ErrNotFound{SessionID: sessionID}
	}
	e.draft = draft.Clone()
	return nil
}

// LastTemplate returns the last-used template for the session.
func (s *MemoryStore) LastTemplate(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return "", &ErrNotFound{SessionID: sessionID}
	}
	return e.lastTemplate, nil
}

// SetLastTemplate records the last-used template for the session.
func (s *MemoryStore) SetLastTemplate(_ context.Context, sessionID, template string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return &ErrNotFound{SessionID: sessionID}
	}
	e.lastTemplate = template
	return nil
}

// Clear resets the session to its initial empty state.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return &ErrNotFound{SessionID: sessionID}
	}
	s.sessions[sessionID] = &entry{}
	return nil
}
