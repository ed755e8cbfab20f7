// Package data provides data management functionality for the Filmscape application.
// It coordinates the user registry and the film query engine.
package data

import (
	"context"
	"errors"
	"fmt"

	"filmscape/local-app/src/pkg/event"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/query"
	"filmscape/local-app/src/pkg/storage"
)

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	UserManager  UserOperations
	QueryEngine  *query.Engine
	EventManager *event.EventManager
	Config       *model.Config
	Logger       *log.Logger
}

// NewDataManager creates a new DataManager over a loaded catalog and an open user store
func NewDataManager(films model.FilmSet, userStore storage.UserStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	ctx := context.Background()
	eventManager := event.NewEventManager(logger)

	policy, err := NewPasswordPolicy(cfg.PasswordPolicy)
	if err != nil {
		return nil, err
	}

	m := &DataManager{
		QueryEngine:  query.NewEngine(films, logger),
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	m.UserManager, err = NewUserManager(userStore, eventManager, policy, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create UserManager: %w", err)
	}

	// Handle default user logic
	if cfg.DefaultUserActive {
		err := m.UserManager.UserRegister(cfg.DefaultUser, cfg.DefaultUserPassword)
		if err != nil && !errors.Is(err, model.ErrUserExists) {
			return nil, fmt.Errorf("failed to create default user: %w", err)
		}
		if err == nil {
			logger.Info(ctx, "Default user created", log.Fields{"username": cfg.DefaultUser})
		}
	}

	return m, nil
}

// FilmExport exports a film set to a file in the specified format.
func (m *DataManager) FilmExport(films model.FilmSet, filename, format string) error {
	ctx := context.Background()
	m.Logger.Info(ctx, "Exporting films", log.Fields{"filename": filename, "format": format, "count": films.Len()})

	if err := storage.FileExport(films, filename, format); err != nil {
		m.Logger.Error(ctx, "Failed to export films", log.Fields{"error": err})
		return fmt.Errorf("failed to export films: %w", err)
	}
	return nil
}
