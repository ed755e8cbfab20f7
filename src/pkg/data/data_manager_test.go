package data

import (
	"path/filepath"
	"testing"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataManagerCreatesDefaultUserOnce(t *testing.T) {
	store := &memoryStore{}
	films := model.NewFilmSet([]*model.Film{{OriginalIndex: 1, Title: "A", Genre: "Drama"}})
	cfg := &model.Config{
		PasswordPolicy:      "plain",
		DefaultUser:         "guest",
		DefaultUserActive:   true,
		DefaultUserPassword: "guest",
	}

	dm, err := NewDataManager(films, store, cfg, log.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"guest"}, dm.UserManager.UserList())
	assert.Equal(t, 1, dm.QueryEngine.Catalog().Len())

	dm, err = NewDataManager(films, store, cfg, log.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"guest"}, dm.UserManager.UserList())
}

func TestNewDataManagerRejectsUnknownPolicy(t *testing.T) {
	_, err := NewDataManager(model.FilmSet{}, &memoryStore{}, &model.Config{PasswordPolicy: "rot13"}, log.NewNopLogger())
	assert.Error(t, err)
}

func TestFilmExport(t *testing.T) {
	films := model.NewFilmSet([]*model.Film{{OriginalIndex: 4, Title: "Roma"}})
	dm, err := NewDataManager(films, &memoryStore{}, &model.Config{}, log.NewNopLogger())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "view.json")
	require.NoError(t, dm.FilmExport(films, path, "json"))

	back, err := storage.FileImport(path, "json")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, back.Indexes())
}
