package storage

import (
	"context"
	"fmt"

	"filmscape/local-app/src/pkg/model"
)

// UserStore persists the whole user collection as one snapshot.
// UserWrite is all-or-nothing: either every record is stored or the previous
// snapshot stays in place and an error is returned.
type UserStore interface {
	UserRead(ctx context.Context) ([]*model.User, error)
	UserWrite(ctx context.Context, users []*model.User) error
	Close() error
}

// usersValidate checks every record of a snapshot and the uniqueness of usernames.
func usersValidate(users []*model.User) error {
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if err := model.UserValidate(u); err != nil {
			return err
		}
		if _, dup := seen[u.Username]; dup {
			return fmt.Errorf("duplicate user record '%s'", u.Username)
		}
		seen[u.Username] = struct{}{}
	}
	return nil
}

// normalizeUsers replaces nil lists so every backend returns the same shape.
func normalizeUsers(users []*model.User) []*model.User {
	for _, u := range users {
		if u.ToWatch == nil {
			u.ToWatch = []int{}
		}
		if u.Watched == nil {
			u.Watched = []int{}
		}
	}
	if users == nil {
		users = []*model.User{}
	}
	return users
}
