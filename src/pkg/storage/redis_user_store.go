package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// RedisUserStorage keeps the whole user list as one JSON value under a single key.
type RedisUserStorage struct {
	client *redis.Client
	key    string
	logger *log.Logger
}

// NewRedisUserStorage connects to Redis and checks the connection.
func NewRedisUserStorage(ctx context.Context, opts *redis.Options, key string, logger *log.Logger) (*RedisUserStorage, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	logger.Info(ctx, "Redis user store connected", log.Fields{"addr": opts.Addr, "key": key})
	return &RedisUserStorage{client: client, key: key, logger: logger}, nil
}

// UserRead loads the snapshot. A missing key is an empty registry.
func (s *RedisUserStorage) UserRead(ctx context.Context) ([]*model.User, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	var users []*model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}
	if err := usersValidate(users); err != nil {
		return nil, fmt.Errorf("invalid user snapshot: %w", err)
	}
	return normalizeUsers(users), nil
}

// UserWrite replaces the snapshot and bumps its version counter inside MULTI/EXEC.
func (s *RedisUserStorage) UserWrite(ctx context.Context, users []*model.User) error {
	if err := usersValidate(users); err != nil {
		return fmt.Errorf("refusing to write users: %w", err)
	}
	data, err := json.Marshal(normalizeUsers(users))
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key, data, 0)
		pipe.Incr(ctx, s.key+":version")
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	s.logger.Debug(ctx, "Redis users written", log.Fields{"key": s.key, "count": len(users)})
	return nil
}

func (s *RedisUserStorage) Close() error {
	return s.client.Close()
}
