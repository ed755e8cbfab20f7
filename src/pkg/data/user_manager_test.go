package data

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"filmscape/local-app/src/pkg/event"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-process UserStore that can be told to fail writes.
type memoryStore struct {
	users     []*model.User
	writes    int
	failWrite error
}

func (s *memoryStore) UserRead(context.Context) ([]*model.User, error) {
	out := make([]*model.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (s *memoryStore) UserWrite(_ context.Context, users []*model.User) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	s.writes++
	s.users = make([]*model.User, len(users))
	for i, u := range users {
		s.users[i] = u.Clone()
	}
	return nil
}

func (s *memoryStore) Close() error { return nil }

func newManager(t *testing.T, store storage.UserStore) *UserManager {
	t.Helper()
	logger := log.NewNopLogger()
	um, err := NewUserManager(store, event.NewEventManager(logger), PlainPolicy{}, logger)
	require.NoError(t, err)
	return um
}

func TestRegisterThenAuthenticate(t *testing.T) {
	um := newManager(t, &memoryStore{})

	require.NoError(t, um.UserRegister("alice", "pass1234"))

	ok, err := um.UserAuthenticate("alice", "pass1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = um.UserAuthenticate("alice", "wrong-pass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	store := &memoryStore{}
	um := newManager(t, store)

	err := um.UserRegister("bob", "pass1234")
	var ie *model.InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "username", ie.Field)

	err = um.UserRegister("alice", "abc")
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "password", ie.Field)

	err = um.UserRegister("alice", "this-password-is-way-beyond-32-chars")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	assert.Equal(t, 0, store.writes, "rejected input never reaches the store")
}

func TestRegisterDuplicate(t *testing.T) {
	um := newManager(t, &memoryStore{})
	require.NoError(t, um.UserRegister("alice", "pass1234"))

	err := um.UserRegister("alice", "other123")
	assert.ErrorIs(t, err, model.ErrUserExists)
}

func TestUnknownUser(t *testing.T) {
	um := newManager(t, &memoryStore{})

	_, err := um.UserAuthenticate("ghost", "pass1234")
	assert.ErrorIs(t, err, model.ErrUnknownUser)
	assert.ErrorIs(t, um.UserDelete("ghost"), model.ErrUnknownUser)
	_, _, err = um.ListsGet("ghost")
	assert.ErrorIs(t, err, model.ErrUnknownUser)
	assert.ErrorIs(t, um.ToWatchAdd("ghost", 1), model.ErrUnknownUser)
	assert.ErrorIs(t, um.WatchedRemove("ghost", 1), model.ErrUnknownUser)
	assert.ErrorIs(t, um.WatchedMoveTo("ghost", 1), model.ErrUnknownUser)
}

func TestAliceExample(t *testing.T) {
	um := newManager(t, &memoryStore{})
	require.NoError(t, um.UserRegister("alice", "pass1234"))

	require.NoError(t, um.ToWatchAdd("alice", 2))

	err := um.WatchedAdd("alice", 2)
	var le *model.ListError
	require.True(t, errors.As(err, &le))
	assert.ErrorIs(t, err, model.ErrAlreadyInList)
	assert.Equal(t, model.ListToWatch, le.List)

	require.NoError(t, um.WatchedMoveTo("alice", 2))

	toWatch, watched, err := um.ListsGet("alice")
	require.NoError(t, err)
	assert.Equal(t, []int{}, toWatch)
	assert.Equal(t, []int{2}, watched)
}

func TestListsStayDisjoint(t *testing.T) {
	um := newManager(t, &memoryStore{})
	require.NoError(t, um.UserRegister("alice", "pass1234"))

	require.NoError(t, um.WatchedAdd("alice", 5))
	err := um.ToWatchAdd("alice", 5)
	var le *model.ListError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, model.ListWatched, le.List)

	err = um.WatchedAdd("alice", 5)
	assert.ErrorIs(t, err, model.ErrAlreadyInList)
}

func TestMoveRoundTrip(t *testing.T) {
	um := newManager(t, &memoryStore{})
	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.ToWatchAdd("alice", 1))
	require.NoError(t, um.ToWatchAdd("alice", 2))
	require.NoError(t, um.WatchedAdd("alice", 3))

	beforeToWatch, beforeWatched, err := um.ListsGet("alice")
	require.NoError(t, err)

	require.NoError(t, um.WatchedMoveTo("alice", 2))
	require.NoError(t, um.ToWatchMoveTo("alice", 2))

	afterToWatch, afterWatched, err := um.ListsGet("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, beforeToWatch, afterToWatch)
	assert.Equal(t, beforeWatched, afterWatched)
}

func TestMoveFailures(t *testing.T) {
	um := newManager(t, &memoryStore{})
	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.WatchedAdd("alice", 4))

	err := um.WatchedMoveTo("alice", 4)
	var le *model.ListError
	require.True(t, errors.As(err, &le))
	assert.ErrorIs(t, err, model.ErrNotInList)
	assert.Equal(t, model.ListToWatch, le.List)

	assert.ErrorIs(t, um.ToWatchMoveTo("alice", 9), model.ErrNotInList)
}

func TestRemove(t *testing.T) {
	um := newManager(t, &memoryStore{})
	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.ToWatchAdd("alice", 1))
	require.NoError(t, um.ToWatchAdd("alice", 2))
	require.NoError(t, um.ToWatchAdd("alice", 3))

	require.NoError(t, um.ToWatchRemove("alice", 2))
	toWatch, _, err := um.ListsGet("alice")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, toWatch)

	assert.ErrorIs(t, um.ToWatchRemove("alice", 2), model.ErrNotInList)
	assert.ErrorIs(t, um.WatchedRemove("alice", 1), model.ErrNotInList)
}

func TestNegativeIndex(t *testing.T) {
	store := &memoryStore{}
	um := newManager(t, store)
	require.NoError(t, um.UserRegister("alice", "pass1234"))
	writes := store.writes

	assert.ErrorIs(t, um.ToWatchAdd("alice", -1), model.ErrInvalidInput)
	assert.Equal(t, writes, store.writes)
}

func TestFailedWriteLeavesStateUncommitted(t *testing.T) {
	store := &memoryStore{}
	um := newManager(t, store)
	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.ToWatchAdd("alice", 1))

	store.failWrite = errors.New("disk full")
	assert.Error(t, um.WatchedMoveTo("alice", 1))
	assert.Error(t, um.UserRegister("bobby", "pass1234"))
	assert.Error(t, um.UserDelete("alice"))

	toWatch, watched, err := um.ListsGet("alice")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, toWatch)
	assert.Empty(t, watched)
	assert.Equal(t, []string{"alice"}, um.UserList())
}

func TestEveryMutationWritesThrough(t *testing.T) {
	store := &memoryStore{}
	um := newManager(t, store)

	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.ToWatchAdd("alice", 1))
	require.NoError(t, um.WatchedMoveTo("alice", 1))
	require.NoError(t, um.WatchedRemove("alice", 1))
	assert.Equal(t, 4, store.writes)

	require.Len(t, store.users, 1)
	assert.Empty(t, store.users[0].Watched)
}

func TestDeletePublishesEvent(t *testing.T) {
	logger := log.NewNopLogger()
	em := event.NewEventManager(logger)
	um, err := NewUserManager(&memoryStore{}, em, PlainPolicy{}, logger)
	require.NoError(t, err)

	var deleted string
	em.Subscribe(event.UserDeleted, func(e event.Event) { deleted = e.Data.(string) })

	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.UserDelete("alice"))
	assert.Equal(t, "alice", deleted)
	assert.Empty(t, um.UserList())
}

func TestRegistryPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	logger := log.NewNopLogger()

	store, err := storage.NewJSONUserStorage(path, logger)
	require.NoError(t, err)
	um := newManager(t, store)
	require.NoError(t, um.UserRegister("alice", "pass1234"))
	require.NoError(t, um.ToWatchAdd("alice", 7))

	reopened, err := storage.NewJSONUserStorage(path, logger)
	require.NoError(t, err)
	um2 := newManager(t, reopened)
	toWatch, _, err := um2.ListsGet("alice")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, toWatch)
}

func TestBcryptPolicy(t *testing.T) {
	logger := log.NewNopLogger()
	store := &memoryStore{}
	um, err := NewUserManager(store, event.NewEventManager(logger), BcryptPolicy{Cost: 4}, logger)
	require.NoError(t, err)

	require.NoError(t, um.UserRegister("alice", "pass1234"))
	assert.NotEqual(t, "pass1234", store.users[0].Password)

	ok, err := um.UserAuthenticate("alice", "pass1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = um.UserAuthenticate("alice", "nope1234")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewPasswordPolicy(t *testing.T) {
	p, err := NewPasswordPolicy("")
	require.NoError(t, err)
	assert.Equal(t, "plain", p.Name())

	p, err = NewPasswordPolicy("bcrypt")
	require.NoError(t, err)
	assert.Equal(t, "bcrypt", p.Name())

	_, err = NewPasswordPolicy("rot13")
	assert.Error(t, err)
}
