package storage

import (
	"context"
	"fmt"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

const (
	listToWatch = "to_watch"
	listWatched = "watched"
)

type userRow struct {
	Username string `db:"username"`
	Password string `db:"password"`
	Seq      int    `db:"seq"`
}

type userFilmRow struct {
	Username  string `db:"username"`
	List      string `db:"list"`
	Seq       int    `db:"seq"`
	FilmIndex int    `db:"film_index"`
}

// SQLUserStorage keeps users in the users and user_films tables of a SQL database.
type SQLUserStorage struct {
	db     Database
	logger *log.Logger
}

// NewSQLUserStorage opens the database for the driver and prepares the schema.
func NewSQLUserStorage(driver DBDriver, dataSourceName string, logger *log.Logger) (*SQLUserStorage, error) {
	db, err := NewDatabase(driver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLUserStorage{db: db, logger: logger}, nil
}

// UserRead loads every user with their lists in stored order.
func (s *SQLUserStorage) UserRead(ctx context.Context) ([]*model.User, error) {
	var rows []userRow
	if err := s.db.Select(ctx, &rows, "SELECT username, password, seq FROM users ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	var films []userFilmRow
	if err := s.db.Select(ctx, &films, "SELECT username, list, seq, film_index FROM user_films ORDER BY username, list, seq"); err != nil {
		return nil, fmt.Errorf("failed to query user films: %w", err)
	}

	users := make([]*model.User, 0, len(rows))
	byName := make(map[string]*model.User, len(rows))
	for _, r := range rows {
		u := &model.User{Username: r.Username, Password: r.Password, ToWatch: []int{}, Watched: []int{}}
		users = append(users, u)
		byName[r.Username] = u
	}
	for _, f := range films {
		u, ok := byName[f.Username]
		if !ok {
			return nil, fmt.Errorf("film %d listed for unknown user '%s'", f.FilmIndex, f.Username)
		}
		switch f.List {
		case listToWatch:
			u.ToWatch = append(u.ToWatch, f.FilmIndex)
		case listWatched:
			u.Watched = append(u.Watched, f.FilmIndex)
		default:
			return nil, fmt.Errorf("unknown list '%s' for user '%s'", f.List, f.Username)
		}
	}

	if err := usersValidate(users); err != nil {
		return nil, fmt.Errorf("invalid user rows: %w", err)
	}
	return users, nil
}

// UserWrite replaces all rows inside one transaction.
func (s *SQLUserStorage) UserWrite(ctx context.Context, users []*model.User) (err error) {
	if err := usersValidate(users); err != nil {
		return fmt.Errorf("refusing to write users: %w", err)
	}

	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	finished := false
	defer func() {
		if err != nil && !finished {
			if rbErr := s.db.Rollback(); rbErr != nil {
				s.logger.Error(ctx, "Failed to roll back user write", log.Fields{"error": rbErr})
			}
		}
	}()

	if _, err = s.db.Exec(ctx, "DELETE FROM user_films"); err != nil {
		return fmt.Errorf("failed to clear user films: %w", err)
	}
	if _, err = s.db.Exec(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	for i, u := range users {
		if _, err = s.db.Exec(ctx, "INSERT INTO users (username, password, seq) VALUES (?, ?, ?)", u.Username, u.Password, i); err != nil {
			return fmt.Errorf("failed to insert user '%s': %w", u.Username, err)
		}
		for _, list := range []struct {
			name    string
			indexes []int
		}{{listToWatch, u.ToWatch}, {listWatched, u.Watched}} {
			for seq, idx := range list.indexes {
				if _, err = s.db.Exec(ctx,
					"INSERT INTO user_films (username, list, seq, film_index) VALUES (?, ?, ?, ?)",
					u.Username, list.name, seq, idx,
				); err != nil {
					return fmt.Errorf("failed to insert film %d for '%s': %w", idx, u.Username, err)
				}
			}
		}
	}

	finished = true
	if err = s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLUserStorage) Close() error {
	return s.db.Close()
}
