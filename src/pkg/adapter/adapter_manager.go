// Package adapter connects front ends to sessions.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/session"
)

// AdapterInstance represents an instance of an adapter
type AdapterInstance interface {
	// AdapterStart opens the instance's session
	AdapterStart() error

	// AdapterStop closes the instance's session
	AdapterStop() error

	// GetType returns the type of the adapter
	GetType() string
}

// AdapterManager owns the adapter instances and routes their commands to sessions
type AdapterManager struct {
	instances      map[string]AdapterInstance
	mu             sync.Mutex
	sessionManager *session.SessionManager
	logger         *log.Logger
}

// NewAdapterManager creates a new AdapterManager
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) *AdapterManager {
	return &AdapterManager{
		instances:      make(map[string]AdapterInstance),
		sessionManager: sm,
		logger:         logger,
	}
}

// AdapterAdd opens a session for the instance and returns its ID
func (am *AdapterManager) AdapterAdd(instance AdapterInstance) (string, error) {
	ctx := context.Background()

	sessionID, err := am.sessionManager.SessionAdd()
	if err != nil {
		return "", fmt.Errorf("failed to add session: %w", err)
	}

	am.mu.Lock()
	am.instances[sessionID] = instance
	am.mu.Unlock()

	am.logger.Info(ctx, "Adapter instance added", log.Fields{"sessionID": sessionID, "type": instance.GetType()})
	return sessionID, nil
}

// AdapterRemove closes the instance's session
func (am *AdapterManager) AdapterRemove(sessionID string) {
	am.mu.Lock()
	_, ok := am.instances[sessionID]
	delete(am.instances, sessionID)
	am.mu.Unlock()

	if ok {
		am.sessionManager.SessionDelete(sessionID)
		am.logger.Info(context.Background(), "Adapter instance removed", log.Fields{"sessionID": sessionID})
	}
}

// SessionGet returns the session behind an adapter instance
func (am *AdapterManager) SessionGet(sessionID string) (*session.Session, bool) {
	return am.sessionManager.SessionGet(sessionID)
}

// CommandRun runs a command in the instance's session
func (am *AdapterManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	am.mu.Lock()
	_, ok := am.instances[sessionID]
	am.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no adapter instance found for session: %s", sessionID)
	}
	return am.sessionManager.SessionRun(sessionID, cmd)
}

// Shutdown stops all adapter instances
func (am *AdapterManager) Shutdown() error {
	am.mu.Lock()
	instances := make([]AdapterInstance, 0, len(am.instances))
	for _, instance := range am.instances {
		instances = append(instances, instance)
	}
	am.mu.Unlock()

	var errs []error
	for _, instance := range instances {
		if err := instance.AdapterStop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
