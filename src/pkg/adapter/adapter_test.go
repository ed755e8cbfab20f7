package adapter

import (
	"path/filepath"
	"testing"

	"filmscape/local-app/src/pkg/data"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/session"
	"filmscape/local-app/src/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"film show", []string{"film", "show"}},
		{"  film   search  Irish ", []string{"film", "search", "Irish"}},
		{`film search "title=Night on Earth"`, []string{"film", "search", "title=Night on Earth"}},
		{`film filter genre='Crime drama' rating_from=7`, []string{"film", "filter", "genre=Crime drama", "rating_from=7"}},
		{`user register bob1 ""`, []string{"user", "register", "bob1", ""}},
		{"film search Schindler's List", []string{"film", "search", "Schindler's", "List"}},
		{`film search "Schindler's List"`, []string{"film", "search", "Schindler's List"}},
		{`film search 'open ended`, []string{"film", "search", "'open", "ended"}},
		{`film search "a b" "c d`, []string{"film", "search", "a b", `"c`, "d"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.input))
		})
	}
}

func newCLIAdapter(t *testing.T) (*CLIAdapter, *AdapterManager, *session.SessionManager) {
	t.Helper()
	logger := log.NewNopLogger()
	store, err := storage.NewJSONUserStorage(filepath.Join(t.TempDir(), "users.json"), logger)
	require.NoError(t, err)

	rating := 7.5
	films := model.NewFilmSet([]*model.Film{
		{OriginalIndex: 1, Title: "A", Genre: "Drama", Rating: &rating},
		{OriginalIndex: 2, Title: "B", Genre: "Documentary"},
	})
	dm, err := data.NewDataManager(films, store, &model.Config{PasswordPolicy: "plain"}, logger)
	require.NoError(t, err)

	sm := session.NewSessionManager(dm, logger)
	t.Cleanup(sm.StopCleanupRoutine)
	am := NewAdapterManager(sm, logger)
	return NewCLIAdapter(am, logger), am, sm
}

func TestCLIAdapterLifecycle(t *testing.T) {
	a, am, sm := newCLIAdapter(t)

	_, err := a.ProcessInput("film show")
	assert.Error(t, err, "not started")

	require.NoError(t, a.AdapterStart())
	assert.Equal(t, 1, sm.SessionCount())

	res, err := a.ProcessInput("FILM Show")
	require.NoError(t, err)
	assert.Equal(t, 2, res.(model.FilmSet).Len())

	_, err = a.ProcessInput("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	user, list := a.SessionState()
	assert.Equal(t, "", user)
	assert.Equal(t, "", list)

	_, err = a.ProcessInput("user register alice pass1234")
	require.NoError(t, err)
	_, err = a.ProcessInput("user login alice pass1234")
	require.NoError(t, err)
	_, err = a.ProcessInput("list select to_watch")
	require.NoError(t, err)

	user, list = a.SessionState()
	assert.Equal(t, "alice", user)
	assert.Equal(t, "to watch", list)

	require.NoError(t, am.Shutdown())
	assert.Equal(t, 0, sm.SessionCount())
}

func TestCommandParse(t *testing.T) {
	a, _, _ := newCLIAdapter(t)

	cmd, err := a.CommandParse(`list add watched 12`)
	require.NoError(t, err)
	assert.Equal(t, model.ScopeList, cmd.Scope)
	assert.Equal(t, model.OpAdd, cmd.Operation)
	assert.Equal(t, []string{"watched", "12"}, cmd.Args)

	cmd, err = a.CommandParse("help")
	require.NoError(t, err)
	assert.Equal(t, model.Scope("help"), cmd.Scope)
	assert.Empty(t, cmd.Operation)
}

func TestCLIAdapterRestartsExpiredSession(t *testing.T) {
	a, _, sm := newCLIAdapter(t)
	require.NoError(t, a.AdapterStart())
	expired := a.sessionID

	sm.SessionDelete(expired)

	_, err := a.ProcessInput("film show")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.NotEqual(t, expired, a.sessionID)
	assert.Equal(t, 1, sm.SessionCount())

	res, err := a.ProcessInput("film show")
	require.NoError(t, err)
	assert.Equal(t, 2, res.(model.FilmSet).Len())
}
