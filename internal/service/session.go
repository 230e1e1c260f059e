// Package service provides business logic for the storefront platform.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/plateworks/storefront/internal/assistant"
	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/pkg/logger"
	"github.com/plateworks/storefront/pkg/metrics"
)

// SnapshotLoader loads a restaurant's catalog snapshot at session open.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, restaurantID string) (*catalog.Snapshot, error)
}

// SessionService owns the live chat sessions. Sessions are in-memory and end
// when the visit does; the transcript tap in NATS is the durable record.
type SessionService struct {
	loader SnapshotLoader
	logger *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*assistant.Session
}

// NewSessionService creates a new session service.
func NewSessionService(loader SnapshotLoader, log *logger.Logger) *SessionService {
	return &SessionService{
		loader:   loader,
		logger:   log,
		sessions: make(map[string]*assistant.Session),
	}
}

// Open creates a session against a fresh catalog snapshot. pendingItemID,
// when set, appends the "you've selected ..." prompt for an item the customer
// picked in the menu UI before opening the chat.
func (s *SessionService) Open(ctx context.Context, restaurantID, userID, pendingItemID string) (*assistant.Session, error) {
	snap, err := s.loader.LoadSnapshot(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	sess := assistant.NewSession(snap, userID)
	if pendingItemID != "" {
		if item := snap.ItemByID(pendingItemID); item != nil {
			sess.Append(sess.PendingItemMessage(*item))
		}
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	metrics.SessionsActive.Inc()
	return sess, nil
}

// Get returns a live session by id.
func (s *SessionService) Get(id string) (*assistant.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return sess, nil
}

// Close ends a session.
func (s *SessionService) Close(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		metrics.SessionsActive.Dec()
	}
}
