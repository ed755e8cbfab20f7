package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

var userKeyPrefix = []byte("user:")

// BadgerConfig holds configuration for the embedded user database.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode, used by tests.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool
}

// badgerLogger adapts the application logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *log.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprintf(format, args...), log.Fields{"component": "badger"})
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprintf(format, args...), log.Fields{"component": "badger"})
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprintf(format, args...), log.Fields{"component": "badger"})
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprintf(format, args...), log.Fields{"component": "badger"})
}

// BadgerUserStorage keeps one key per user, "user:<position>", holding the JSON record.
type BadgerUserStorage struct {
	db     *badger.DB
	logger *log.Logger
}

// NewBadgerUserStorage opens the database at cfg.Path, or in memory.
func NewBadgerUserStorage(cfg BadgerConfig, logger *log.Logger) (*BadgerUserStorage, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	logger.Info(context.Background(), "Badger user store opened", log.Fields{"path": cfg.Path, "inMemory": cfg.InMemory})
	return &BadgerUserStorage{db: db, logger: logger}, nil
}

// UserRead loads every user in key order, which is registration order.
func (s *BadgerUserStorage) UserRead(ctx context.Context) ([]*model.User, error) {
	users := []*model.User{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = userKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var u model.User
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &u)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			users = append(users, &u)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if err := usersValidate(users); err != nil {
		return nil, fmt.Errorf("invalid user records: %w", err)
	}
	return normalizeUsers(users), nil
}

// UserWrite replaces every user key in a single transaction.
func (s *BadgerUserStorage) UserWrite(ctx context.Context, users []*model.User) error {
	if err := usersValidate(users); err != nil {
		return fmt.Errorf("refusing to write users: %w", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = userKeyPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		for i, u := range users {
			val, err := json.Marshal(u)
			if err != nil {
				return fmt.Errorf("encode user '%s': %w", u.Username, err)
			}
			if err := txn.Set(userKey(i), val); err != nil {
				return fmt.Errorf("set user '%s': %w", u.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	s.logger.Debug(ctx, "Badger users written", log.Fields{"count": len(users)})
	return nil
}

func (s *BadgerUserStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger database: %w", err)
	}
	return nil
}

func userKey(position int) []byte {
	return []byte(fmt.Sprintf("%s%08d", userKeyPrefix, position))
}
