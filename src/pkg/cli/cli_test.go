package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"filmscape/local-app/src/pkg/adapter"
	"filmscape/local-app/src/pkg/data"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/session"
	"filmscape/local-app/src/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	logger := log.NewNopLogger()
	store, err := storage.NewJSONUserStorage(filepath.Join(t.TempDir(), "users.json"), logger)
	require.NoError(t, err)

	rating := 8.1
	films := model.NewFilmSet([]*model.Film{
		{OriginalIndex: 1, Title: "The Irishman", Genre: "Crime drama", Rating: &rating},
		{OriginalIndex: 2, Title: "Night on Earth", Genre: "Documentary"},
	})
	dm, err := data.NewDataManager(films, store, &model.Config{PasswordPolicy: "plain"}, logger)
	require.NoError(t, err)

	sm := session.NewSessionManager(dm, logger)
	t.Cleanup(sm.StopCleanupRoutine)
	a := adapter.NewCLIAdapter(adapter.NewAdapterManager(sm, logger), logger)
	require.NoError(t, a.AdapterStart())

	var out bytes.Buffer
	return NewCLI(a, &out, false, "", logger), &out
}

func TestExecute(t *testing.T) {
	c, out := newTestCLI(t)

	assert.False(t, c.Execute(""))
	assert.False(t, c.Execute("film search Irish"))
	assert.Contains(t, out.String(), "The Irishman")
	assert.NotContains(t, out.String(), "Night on Earth")

	out.Reset()
	assert.False(t, c.Execute("film sort budget"))
	assert.Contains(t, out.String(), "! unknown column")

	out.Reset()
	assert.False(t, c.Execute("user register alice pass1234"))
	assert.False(t, c.Execute("user login alice pass1234"))
	assert.Equal(t, "alice @ all > ", c.Prompt())

	assert.True(t, c.Execute("system exit"))
	assert.True(t, c.Execute("quit"))
}

func TestHelp(t *testing.T) {
	c, out := newTestCLI(t)

	c.Execute("help")
	assert.Contains(t, out.String(), "register")
	assert.Contains(t, out.String(), "export")

	out.Reset()
	c.Execute("help film filter")
	assert.Contains(t, out.String(), "Syntax: film filter [key=value]...")

	out.Reset()
	c.Execute("help node")
	assert.Contains(t, out.String(), "No help found for node")
}

func TestExecuteScript(t *testing.T) {
	c, out := newTestCLI(t)
	script := filepath.Join(t.TempDir(), "setup.txt")
	require.NoError(t, os.WriteFile(script, []byte("# setup\nuser register alice pass1234\n\nuser login alice pass1234\nlist add to_watch 2\nexit\nfilm show\n"), 0644))

	exited, err := c.ExecuteScript(script)
	require.NoError(t, err)
	assert.True(t, exited)
	assert.Contains(t, out.String(), "Film 2 added to to watch list")
	assert.NotContains(t, out.String(), "film show")

	_, err = c.ExecuteScript(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
