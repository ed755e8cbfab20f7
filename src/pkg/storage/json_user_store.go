package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// JSONUserStorage keeps the users in a single JSON file holding a list of records.
type JSONUserStorage struct {
	path   string
	logger *log.Logger
}

// NewJSONUserStorage creates a file-backed store. The file is created on the first write.
func NewJSONUserStorage(path string, logger *log.Logger) (*JSONUserStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create user file directory: %w", err)
	}
	return &JSONUserStorage{path: path, logger: logger}, nil
}

// UserRead loads every user record. A missing file is an empty registry.
func (s *JSONUserStorage) UserRead(ctx context.Context) ([]*model.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info(ctx, "User file not found, starting empty", log.Fields{"path": s.path})
		return []*model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user file: %w", err)
	}

	var users []*model.User
	if len(data) > 0 {
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, fmt.Errorf("failed to parse user file: %w", err)
		}
	}
	if err := usersValidate(users); err != nil {
		return nil, fmt.Errorf("invalid user file: %w", err)
	}

	s.logger.Debug(ctx, "User file read", log.Fields{"path": s.path, "count": len(users)})
	return normalizeUsers(users), nil
}

// UserWrite replaces the user file. The snapshot goes to a temporary file that
// is synced and renamed over the old one, so readers never see a partial file.
func (s *JSONUserStorage) UserWrite(ctx context.Context, users []*model.User) error {
	if err := usersValidate(users); err != nil {
		return fmt.Errorf("refusing to write users: %w", err)
	}

	data, err := json.MarshalIndent(normalizeUsers(users), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary user file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temporary user file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temporary user file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temporary user file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace user file: %w", err)
	}

	s.logger.Debug(ctx, "User file written", log.Fields{"path": s.path, "count": len(users)})
	return nil
}

func (s *JSONUserStorage) Close() error {
	return nil
}
