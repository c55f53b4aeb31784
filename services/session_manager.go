// services/session_manager.go - In-memory registry of active quiz sessions
package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"quizdash/models"
	"quizdash/session"

	"github.com/google/uuid"
)

// ErrActiveSession is returned when a user already has a live session.
var ErrActiveSession = errors.New("an active session already exists for this user")

// SessionManager tracks in-progress sessions, one per user. Completed or
// abandoned sessions are removed here; their results live in quiz_results.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	byUser   map[uint]string
}

var sessionManager *SessionManager

// InitSessionManager initializes the singleton session manager.
func InitSessionManager() {
	sessionManager = &SessionManager{
		sessions: make(map[string]*session.Session),
		byUser:   make(map[uint]string),
	}
}

// GetSessionManager returns the initialized session manager.
func GetSessionManager() *SessionManager {
	return sessionManager
}

// Create starts a new session for the user. A user can only drive one
// session at a time; the existing one is returned with ErrActiveSession.
func (m *SessionManager) Create(userID uint, quiz models.Quiz, timeLimitSeconds int) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existingID, ok := m.byUser[userID]; ok {
		if existing, live := m.sessions[existingID]; live {
			return existing, ErrActiveSession
		}
		delete(m.byUser, userID)
	}

	s := session.New(uuid.New().String(), userID, quiz)
	s.Start(timeLimitSeconds)

	m.sessions[s.ID()] = s
	m.byUser[userID] = s.ID()
	return s, nil
}

// Get looks a session up by ID.
func (m *SessionManager) Get(id string) (*session.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetByUser returns the user's live session, if any.
func (m *SessionManager) GetByUser(userID uint) (*session.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byUser[userID]
	if !ok {
		return nil, false
	}
	s, ok := m.sessions[id]
	return s, ok
}

// Remove tears a session down and forgets it.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return
	}
	s.Close()
	delete(m.sessions, id)
	if current, ok := m.byUser[s.UserID()]; ok && current == id {
		delete(m.byUser, s.UserID())
	}
}

// CleanupExpired removes sessions idle for longer than maxIdle and returns
// how many were dropped.
func (m *SessionManager) CleanupExpired(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for id, s := range m.sessions {
		if s.LastActivity().After(cutoff) {
			continue
		}
		s.Close()
		delete(m.sessions, id)
		if current, ok := m.byUser[s.UserID()]; ok && current == id {
			delete(m.byUser, s.UserID())
		}
		removed++
	}

	if removed > 0 {
		log.Printf("🧹 Cleaned up %d stale quiz sessions", removed)
	}
	return removed
}

// Count reports the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
