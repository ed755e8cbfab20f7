package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"filmscape/local-app/src/pkg/data"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager manages multiple sessions over one DataManager. Commands from
// all sessions run one at a time.
type SessionManager struct {
	sessions       map[string]*Session
	dataManager    *data.DataManager
	mu             sync.Mutex
	runMu          sync.Mutex
	cleanupTicker  *time.Ticker
	done           chan struct{}
	stopOnce       sync.Once
	sessionTimeout time.Duration
	logger         *log.Logger
}

// NewSessionManager starts the inactive session cleanup routine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:       make(map[string]*Session),
		dataManager:    dataManager,
		done:           make(chan struct{}),
		sessionTimeout: defaultSessionTimeout,
		logger:         logger,
	}
	sm.startCleanupRoutine(defaultCleanupInterval)

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()

	id, err := uuid.NewRandom()
	if err != nil {
		sm.logger.Error(ctx, "Failed to generate session ID", log.Fields{"error": err})
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	sessionID := id.String()

	s := NewSession(sessionID, sm.dataManager, sm.logger)

	sm.mu.Lock()
	sm.sessions[sessionID] = s
	sm.mu.Unlock()

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, exists := sm.sessions[sessionID]
	if !exists {
		sm.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": sessionID})
	}
	return s, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()

	sm.mu.Lock()
	s, exists := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	if !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	s.Close()
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionCount returns the number of live sessions.
func (sm *SessionManager) SessionCount() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

// SessionRun executes a command for a specific session. Each command runs to
// completion before the next one starts, whichever session it belongs to.
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()

	s, exists := sm.SessionGet(sessionID)
	if !exists {
		return nil, ErrSessionNotFound
	}

	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	sm.runMu.Lock()
	defer sm.runMu.Unlock()

	result, err := s.CommandRun(cmd)
	if err != nil {
		sm.logger.Debug(ctx, "Command execution failed", log.Fields{"sessionID": sessionID, "error": err})
		return nil, err
	}
	sm.logger.Debug(ctx, "Command executed successfully", log.Fields{"sessionID": sessionID})
	return result, nil
}

// startCleanupRoutine starts a goroutine that periodically cleans up inactive sessions
func (sm *SessionManager) startCleanupRoutine(interval time.Duration) {
	sm.cleanupTicker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions(time.Now())
			case <-sm.done:
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// StopCleanupRoutine stops the cleanup routine. Safe to call more than once.
func (sm *SessionManager) StopCleanupRoutine() {
	sm.stopOnce.Do(func() {
		sm.logger.Info(context.Background(), "Stopping cleanup routine", nil)
		close(sm.done)
	})
}

// cleanupInactiveSessions removes sessions idle for longer than the session timeout
func (sm *SessionManager) cleanupInactiveSessions(now time.Time) {
	// Hold runMu so LastActivity is not read while a command updates it
	sm.runMu.Lock()
	var stale []string
	sm.mu.Lock()
	for id, s := range sm.sessions {
		if now.Sub(s.LastActivity) > sm.sessionTimeout {
			stale = append(stale, id)
		}
	}
	sm.mu.Unlock()
	sm.runMu.Unlock()

	for _, id := range stale {
		sm.logger.Info(context.Background(), "Removing inactive session", log.Fields{"sessionID": id})
		sm.SessionDelete(id)
	}
}
