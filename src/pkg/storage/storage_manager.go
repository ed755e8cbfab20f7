package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"

	"filmscape/local-app/src/pkg/config"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// Storage bundles the film catalog and the user store selected by the configuration.
type Storage struct {
	Films model.FilmSet
	UserStore
}

// NewStorage loads the dataset and opens the configured user store.
func NewStorage(cfg *model.Config, logger *log.Logger) (*Storage, error) {
	ctx := context.Background()

	datasetPath := config.DataPath(cfg, cfg.DatasetFile)
	films, err := datasetLoad(datasetPath)
	if err != nil {
		logger.Error(ctx, "Failed to load film dataset", log.Fields{"error": err, "path": datasetPath})
		return nil, err
	}
	logger.Info(ctx, "Film dataset loaded", log.Fields{"path": datasetPath, "count": films.Len()})

	userStore, err := NewUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Storage{Films: films, UserStore: userStore}, nil
}

// NewUserStore opens the user store named by cfg.UserStoreType.
func NewUserStore(ctx context.Context, cfg *model.Config, logger *log.Logger) (UserStore, error) {
	logger.Info(ctx, "Opening user store", log.Fields{"type": cfg.UserStoreType})

	switch cfg.UserStoreType {
	case "", "json":
		return NewJSONUserStorage(config.DataPath(cfg, cfg.UserFile), logger)
	case "badger":
		return NewBadgerUserStorage(BadgerConfig{
			Path:       config.DataPath(cfg, cfg.BadgerDir),
			SyncWrites: true,
		}, logger)
	case "redis":
		return NewRedisUserStorage(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisKey, logger)
	}

	driver, err := validateDBDriver(cfg.UserStoreType)
	if err != nil {
		return nil, fmt.Errorf("invalid user store type '%s': %w", cfg.UserStoreType, err)
	}
	dsn := cfg.PostgresDSN
	if driver == SQLite {
		dsn = config.DataPath(cfg, cfg.SQLiteFile)
	}
	return NewSQLUserStorage(driver, dsn, logger)
}

// Close closes the user store.
func (s *Storage) Close() error {
	if err := s.UserStore.Close(); err != nil {
		return fmt.Errorf("failed to close user store: %w", err)
	}
	return nil
}

// datasetLoad reads the dataset as CSV, or as a JSON or XML export when the extension says so.
func datasetLoad(path string) (model.FilmSet, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".xml":
		films, err := FileImport(path, strings.TrimPrefix(ext, "."))
		var derr *model.DatasetError
		if errors.As(err, &derr) {
			return model.FilmSet{}, err
		}
		if err != nil {
			return model.FilmSet{}, &model.DatasetError{Path: path, Err: err}
		}
		return films, nil
	default:
		return FilmLoad(path)
	}
}
