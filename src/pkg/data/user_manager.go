// Package data provides data management functionality for the Filmscape application.
// This file contains operations related to user management.
package data

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"filmscape/local-app/src/pkg/event"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/storage"
)

// UserOperations defines the interface for user-related operations
type UserOperations interface {
	UserRegister(username, password string) error
	UserAuthenticate(username, password string) (bool, error)
	UserDelete(username string) error
	UserList() []string
	ListsGet(username string) ([]int, []int, error)
	ToWatchAdd(username string, index int) error
	WatchedAdd(username string, index int) error
	ToWatchRemove(username string, index int) error
	WatchedRemove(username string, index int) error
	WatchedMoveTo(username string, index int) error
	ToWatchMoveTo(username string, index int) error
}

// UserManager is the user registry. It holds the committed snapshot of all users
// and writes the whole collection through the store on every change. A change
// only becomes visible once the store accepted it.
type UserManager struct {
	userStore    storage.UserStore
	eventManager *event.EventManager
	policy       PasswordPolicy
	logger       *log.Logger

	mu    sync.Mutex
	users []*model.User
}

// NewUserManager creates a new UserManager instance and loads the stored users.
func NewUserManager(userStore storage.UserStore, eventManager *event.EventManager, policy PasswordPolicy, logger *log.Logger) (*UserManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new UserManager", nil)

	if userStore == nil {
		logger.Error(ctx, "UserStore not initialized", nil)
		return nil, fmt.Errorf("userStore not initialized")
	}
	if eventManager == nil {
		logger.Error(ctx, "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if policy == nil {
		policy = PlainPolicy{}
	}

	users, err := userStore.UserRead(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to read users", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	um := &UserManager{
		userStore:    userStore,
		eventManager: eventManager,
		policy:       policy,
		logger:       logger,
		users:        users,
	}

	logger.Info(ctx, "UserManager created successfully", log.Fields{"users": len(users), "policy": policy.Name()})
	return um, nil
}

// UserRegister creates a user with empty lists.
func (um *UserManager) UserRegister(username, password string) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Registering user", log.Fields{"username": username})

	if err := model.CredentialsValidate(username, password); err != nil {
		um.logger.Warn(ctx, "Invalid credentials", log.Fields{"username": username, "error": err})
		return err
	}

	um.mu.Lock()
	defer um.mu.Unlock()

	if um.find(username) >= 0 {
		um.logger.Warn(ctx, "User already exists", log.Fields{"username": username})
		return &model.UserError{Username: username, Err: model.ErrUserExists}
	}

	sealed, err := um.policy.Seal(password)
	if err != nil {
		um.logger.Error(ctx, "Failed to seal password", log.Fields{"error": err})
		return err
	}

	next := um.snapshot()
	next = append(next, &model.User{Username: username, Password: sealed, ToWatch: []int{}, Watched: []int{}})
	if err := um.commit(ctx, next); err != nil {
		return err
	}

	um.logger.Info(ctx, "User registered successfully", log.Fields{"username": username})
	return nil
}

// UserAuthenticate verifies a user's credentials.
func (um *UserManager) UserAuthenticate(username, password string) (bool, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Authenticating user", log.Fields{"username": username})

	if err := model.CredentialsValidate(username, password); err != nil {
		um.logger.Warn(ctx, "Invalid credentials", log.Fields{"username": username, "error": err})
		return false, err
	}

	um.mu.Lock()
	defer um.mu.Unlock()

	i := um.find(username)
	if i < 0 {
		um.logger.Warn(ctx, "User doesn't exist", log.Fields{"username": username})
		return false, &model.UserError{Username: username, Err: model.ErrUnknownUser}
	}

	if um.policy.Match(um.users[i].Password, password) {
		um.logger.Info(ctx, "User authenticated successfully", log.Fields{"username": username})
		return true, nil
	}

	um.logger.Warn(ctx, "Authentication failed", log.Fields{"username": username})
	return false, nil
}

// UserDelete removes a user and its lists.
func (um *UserManager) UserDelete(username string) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Deleting user", log.Fields{"username": username})

	if err := model.UsernameValidate(username); err != nil {
		return err
	}

	um.mu.Lock()
	i := um.find(username)
	if i < 0 {
		um.mu.Unlock()
		um.logger.Warn(ctx, "User doesn't exist", log.Fields{"username": username})
		return &model.UserError{Username: username, Err: model.ErrUnknownUser}
	}

	next := um.snapshot()
	next = slices.Delete(next, i, i+1)
	err := um.commit(ctx, next)
	um.mu.Unlock()
	if err != nil {
		return err
	}

	// Published outside the lock so handlers may call back into the registry
	um.eventManager.Publish(event.Event{Type: event.UserDeleted, Data: username})

	um.logger.Info(ctx, "User deleted successfully", log.Fields{"username": username})
	return nil
}

// UserList returns the usernames in registration order.
func (um *UserManager) UserList() []string {
	um.mu.Lock()
	defer um.mu.Unlock()

	names := make([]string, len(um.users))
	for i, u := range um.users {
		names[i] = u.Username
	}
	return names
}

// ListsGet returns copies of the user's to-watch and watched lists.
func (um *UserManager) ListsGet(username string) ([]int, []int, error) {
	ctx := context.Background()
	um.logger.Debug(ctx, "Retrieving user lists", log.Fields{"username": username})

	if err := model.UsernameValidate(username); err != nil {
		return nil, nil, err
	}

	um.mu.Lock()
	defer um.mu.Unlock()

	i := um.find(username)
	if i < 0 {
		um.logger.Warn(ctx, "User doesn't exist", log.Fields{"username": username})
		return nil, nil, &model.UserError{Username: username, Err: model.ErrUnknownUser}
	}
	u := um.users[i]
	return slices.Clone(u.ToWatch), slices.Clone(u.Watched), nil
}

// ToWatchAdd appends index to the user's to-watch list.
func (um *UserManager) ToWatchAdd(username string, index int) error {
	return um.listAdd(username, index, model.ListToWatch)
}

// WatchedAdd appends index to the user's watched list.
func (um *UserManager) WatchedAdd(username string, index int) error {
	return um.listAdd(username, index, model.ListWatched)
}

// ToWatchRemove removes index from the user's to-watch list.
func (um *UserManager) ToWatchRemove(username string, index int) error {
	return um.listRemove(username, index, model.ListToWatch)
}

// WatchedRemove removes index from the user's watched list.
func (um *UserManager) WatchedRemove(username string, index int) error {
	return um.listRemove(username, index, model.ListWatched)
}

// WatchedMoveTo moves index from the to-watch list to the watched list.
func (um *UserManager) WatchedMoveTo(username string, index int) error {
	return um.listMove(username, index, model.ListToWatch, model.ListWatched)
}

// ToWatchMoveTo moves index from the watched list back to the to-watch list.
func (um *UserManager) ToWatchMoveTo(username string, index int) error {
	return um.listMove(username, index, model.ListWatched, model.ListToWatch)
}

func (um *UserManager) listAdd(username string, index int, target model.ListKind) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Adding film to list", log.Fields{"username": username, "index": index, "list": target.String()})

	err := um.mutate(ctx, username, index, func(u *model.User) error {
		if holding := u.ListHolding(index); holding != model.ListAll {
			return &model.ListError{Username: username, Index: index, List: holding, Err: model.ErrAlreadyInList}
		}
		setList(u, target, append(u.List(target), index))
		return nil
	})
	if err != nil {
		return err
	}

	um.logger.Info(ctx, "Film added to list", log.Fields{"username": username, "index": index, "list": target.String()})
	return nil
}

func (um *UserManager) listRemove(username string, index int, target model.ListKind) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Removing film from list", log.Fields{"username": username, "index": index, "list": target.String()})

	err := um.mutate(ctx, username, index, func(u *model.User) error {
		pos := slices.Index(u.List(target), index)
		if pos < 0 {
			return &model.ListError{Username: username, Index: index, List: target, Err: model.ErrNotInList}
		}
		setList(u, target, slices.Delete(u.List(target), pos, pos+1))
		return nil
	})
	if err != nil {
		return err
	}

	um.logger.Info(ctx, "Film removed from list", log.Fields{"username": username, "index": index, "list": target.String()})
	return nil
}

func (um *UserManager) listMove(username string, index int, from, to model.ListKind) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Moving film between lists", log.Fields{"username": username, "index": index, "from": from.String(), "to": to.String()})

	err := um.mutate(ctx, username, index, func(u *model.User) error {
		pos := slices.Index(u.List(from), index)
		if pos < 0 {
			return &model.ListError{Username: username, Index: index, List: from, Err: model.ErrNotInList}
		}
		if slices.Contains(u.List(to), index) {
			return &model.ListError{Username: username, Index: index, List: to, Err: model.ErrAlreadyInList}
		}
		setList(u, from, slices.Delete(u.List(from), pos, pos+1))
		setList(u, to, append(u.List(to), index))
		return nil
	})
	if err != nil {
		return err
	}

	um.logger.Info(ctx, "Film moved between lists", log.Fields{"username": username, "index": index, "to": to.String()})
	return nil
}

// mutate validates the arguments, applies change to a copy of the user and
// commits the copied snapshot. The registry is locked for the whole read-modify-write.
func (um *UserManager) mutate(ctx context.Context, username string, index int, change func(u *model.User) error) error {
	if err := model.UsernameValidate(username); err != nil {
		um.logger.Warn(ctx, "Invalid username", log.Fields{"username": username, "error": err})
		return err
	}
	if err := model.IndexValidate(index); err != nil {
		um.logger.Warn(ctx, "Invalid film index", log.Fields{"index": index, "error": err})
		return err
	}

	um.mu.Lock()
	i := um.find(username)
	if i < 0 {
		um.mu.Unlock()
		um.logger.Warn(ctx, "User doesn't exist", log.Fields{"username": username})
		return &model.UserError{Username: username, Err: model.ErrUnknownUser}
	}

	next := um.snapshot()
	if err := change(next[i]); err != nil {
		um.mu.Unlock()
		um.logger.Warn(ctx, "List change rejected", log.Fields{"username": username, "error": err})
		return err
	}
	err := um.commit(ctx, next)
	um.mu.Unlock()
	if err != nil {
		return err
	}

	um.eventManager.Publish(event.Event{Type: event.ListChanged, Data: event.ListChange{Username: username, Index: index}})
	return nil
}

// commit writes next through the store and adopts it on success. Callers hold mu.
func (um *UserManager) commit(ctx context.Context, next []*model.User) error {
	if err := um.userStore.UserWrite(ctx, next); err != nil {
		um.logger.Error(ctx, "Failed to persist users", log.Fields{"error": err})
		return fmt.Errorf("failed to persist users: %w", err)
	}
	um.users = next
	return nil
}

// snapshot deep-copies the committed users. Callers hold mu.
func (um *UserManager) snapshot() []*model.User {
	next := make([]*model.User, len(um.users))
	for i, u := range um.users {
		next[i] = u.Clone()
	}
	return next
}

// find returns the position of username, or -1. Callers hold mu.
func (um *UserManager) find(username string) int {
	return slices.IndexFunc(um.users, func(u *model.User) bool {
		return u.Username == username
	})
}

func setList(u *model.User, kind model.ListKind, indexes []int) {
	switch kind {
	case model.ListToWatch:
		u.ToWatch = indexes
	case model.ListWatched:
		u.Watched = indexes
	}
}
