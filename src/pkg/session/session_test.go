package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"filmscape/local-app/src/pkg/data"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// A(7.5, Drama), B(8.9, Documentary), C(no rating, Drama)
func abcCatalog() model.FilmSet {
	return model.NewFilmSet([]*model.Film{
		{OriginalIndex: 1, Title: "A", Genre: "Drama", Rating: ptr(7.5), ReleaseDate: date(2019, 1, 1), Runtime: 90 * time.Minute, Language: "English", Type: "Films"},
		{OriginalIndex: 2, Title: "B", Genre: "Documentary", Rating: ptr(8.9), ReleaseDate: date(2020, 6, 1), Runtime: 120 * time.Minute, Language: "English", Type: "Documentaries"},
		{OriginalIndex: 3, Title: "C", Genre: "Drama", ReleaseDate: date(2021, 3, 1), Runtime: 100 * time.Minute, Language: "Spanish", Type: "Films"},
	})
}

func newDataManager(t *testing.T) *data.DataManager {
	t.Helper()
	logger := log.NewNopLogger()
	store, err := storage.NewJSONUserStorage(filepath.Join(t.TempDir(), "users.json"), logger)
	require.NoError(t, err)
	dm, err := data.NewDataManager(abcCatalog(), store, &model.Config{PasswordPolicy: "plain"}, logger)
	require.NoError(t, err)
	return dm
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("test", newDataManager(t), log.NewNopLogger())
	t.Cleanup(s.Close)
	return s
}

func loginAlice(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.DataManager.UserManager.UserRegister("alice", "pass1234"))
	require.NoError(t, s.UserLogin("alice", "pass1234"))
}

func TestAnonymousSessionShowsCatalog(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, "", s.Username())
	assert.Equal(t, model.ListAll, s.List())
	assert.Equal(t, []int{1, 2, 3}, s.View().Indexes())

	err := s.ListSelect(model.ListToWatch)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Equal(t, model.ListAll, s.List())

	assert.ErrorIs(t, s.ToWatchAdd(1), ErrNotLoggedIn)
	assert.ErrorIs(t, s.UserLogout(), ErrNotLoggedIn)
}

func TestLoginFailureKeepsState(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.DataManager.UserManager.UserRegister("alice", "pass1234"))

	assert.ErrorIs(t, s.UserLogin("alice", "wrong-pass"), ErrAuthenticationFailed)
	assert.Equal(t, "", s.Username())

	err := s.UserLogin("nobody", "pass1234")
	assert.ErrorIs(t, err, model.ErrUnknownUser)
	assert.Equal(t, "", s.Username())
}

func TestListSelectFollowsInsertionOrder(t *testing.T) {
	s := newTestSession(t)
	loginAlice(t, s)

	require.NoError(t, s.ToWatchAdd(2))
	require.NoError(t, s.ToWatchAdd(1))
	require.NoError(t, s.ListSelect(model.ListToWatch))
	assert.Equal(t, []int{2, 1}, s.View().Indexes())

	require.NoError(t, s.WatchedMoveTo(2))
	assert.Equal(t, []int{1}, s.View().Indexes(), "view follows list changes")

	require.NoError(t, s.ListSelect(model.ListWatched))
	assert.Equal(t, []int{2}, s.View().Indexes())

	toWatch, watched, err := s.Lists()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, toWatch.Indexes())
	assert.Equal(t, []int{2}, watched.Indexes())
}

func TestListMutationErrors(t *testing.T) {
	s := newTestSession(t)
	loginAlice(t, s)

	require.NoError(t, s.ToWatchAdd(1))
	assert.ErrorIs(t, s.WatchedAdd(1), model.ErrAlreadyInList)
	assert.ErrorIs(t, s.WatchedRemove(1), model.ErrNotInList)
	assert.ErrorIs(t, s.ToWatchAdd(99), model.ErrInvalidInput)
	assert.ErrorIs(t, s.ToWatchAdd(-1), model.ErrInvalidInput)
}

func TestFilterReappliedOnListSelect(t *testing.T) {
	s := newTestSession(t)
	loginAlice(t, s)
	require.NoError(t, s.ToWatchAdd(3))
	require.NoError(t, s.ToWatchAdd(2))

	require.NoError(t, s.FilterApply(model.FilmFilter{Genre: "drama"}))
	assert.Equal(t, []int{1, 3}, s.View().Indexes())

	require.NoError(t, s.ListSelect(model.ListToWatch))
	assert.Equal(t, []int{3}, s.View().Indexes())
}

func TestInvalidFilterChangesNothing(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.FilterApply(model.FilmFilter{Genre: "Drama"}))

	err := s.FilterApply(model.FilmFilter{RatingFrom: ptr(9.0), RatingTo: ptr(5.0)})
	assert.ErrorIs(t, err, model.ErrInvalidRange)

	err = s.FilterApply(model.FilmFilter{Genre: "Western"})
	assert.ErrorIs(t, err, model.ErrUnknownCategory)

	assert.Equal(t, "Drama", s.Info().Filter.Genre)
	assert.Equal(t, []int{1, 3}, s.View().Indexes())
}

func TestSearchNarrowsFilter(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.FilterApply(model.FilmFilter{Language: "English"}))
	require.NoError(t, s.SearchApply("", "Drama"))
	assert.Equal(t, []int{1}, s.View().Indexes())

	require.NoError(t, s.SearchApply("", "Drama"))
	assert.Equal(t, []int{1}, s.View().Indexes())

	require.NoError(t, s.SearchApply("", ""))
	assert.Equal(t, []int{1, 2}, s.View().Indexes())
}

func TestSortToggleAndAbsentLast(t *testing.T) {
	s := newTestSession(t)

	pass, err := s.SortApply(model.ColumnRating)
	require.NoError(t, err)
	assert.True(t, pass.Ascending)
	assert.Equal(t, []int{1, 2, 3}, s.View().Indexes())

	pass, err = s.SortApply(model.ColumnRating)
	require.NoError(t, err)
	assert.False(t, pass.Ascending)
	assert.Equal(t, []int{2, 1, 3}, s.View().Indexes())

	pass, err = s.SortApply(model.ColumnTitle)
	require.NoError(t, err)
	assert.True(t, pass.Ascending, "a new column starts ascending")
}

func TestSortPassesAreStable(t *testing.T) {
	s := newTestSession(t)

	_, err := s.SortApply(model.ColumnTitle)
	require.NoError(t, err)
	_, err = s.SortApply(model.ColumnTitle)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, s.View().Indexes())

	_, err = s.SortApply(model.ColumnGenre)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, s.View().Indexes(), "ties keep the title order")

	info := s.Info()
	require.Len(t, info.Sorts, 2)
	assert.Equal(t, model.SortPass{Column: model.ColumnTitle, Ascending: false}, info.Sorts[0])
	assert.Equal(t, model.SortPass{Column: model.ColumnGenre, Ascending: true}, info.Sorts[1])
}

func TestResetRestoresBase(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.FilterApply(model.FilmFilter{Genre: "Drama"}))
	require.NoError(t, s.SearchApply("C", ""))
	_, err := s.SortApply(model.ColumnRating)
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	info := s.Info()
	assert.True(t, info.Filter.IsZero())
	assert.Empty(t, info.Sorts)
	assert.Equal(t, []int{1, 2, 3}, s.View().Indexes())
}

func TestLogoutKeepsOverlays(t *testing.T) {
	s := newTestSession(t)
	loginAlice(t, s)
	require.NoError(t, s.ToWatchAdd(2))
	require.NoError(t, s.ListSelect(model.ListToWatch))
	require.NoError(t, s.FilterApply(model.FilmFilter{Genre: "Drama"}))

	require.NoError(t, s.UserLogout())
	assert.Equal(t, model.ListAll, s.List())
	assert.Equal(t, []int{1, 3}, s.View().Indexes())
}

func TestAccountDeleteLogsOut(t *testing.T) {
	s := newTestSession(t)
	loginAlice(t, s)
	require.NoError(t, s.ListSelect(model.ListWatched))

	require.NoError(t, s.AccountDelete())
	assert.Equal(t, "", s.Username())
	assert.Equal(t, model.ListAll, s.List())
	assert.Empty(t, s.DataManager.UserManager.UserList())
}

func TestOtherSessionSeesDeletion(t *testing.T) {
	dm := newDataManager(t)
	first := NewSession("first", dm, log.NewNopLogger())
	second := NewSession("second", dm, log.NewNopLogger())
	defer first.Close()
	defer second.Close()

	require.NoError(t, dm.UserManager.UserRegister("alice", "pass1234"))
	require.NoError(t, first.UserLogin("alice", "pass1234"))
	require.NoError(t, second.UserLogin("alice", "pass1234"))

	require.NoError(t, first.AccountDelete())
	assert.Equal(t, "", second.Username())
}

func TestCommandRun(t *testing.T) {
	s := newTestSession(t)

	res, err := s.CommandRun(model.Command{Scope: model.ScopeUser, Operation: model.OpRegister, Args: []string{"alice", "pass1234"}})
	require.NoError(t, err)
	assert.Contains(t, res, "alice")

	_, err = s.CommandRun(model.Command{Scope: model.ScopeUser, Operation: model.OpLogin, Args: []string{"alice", "pass1234"}})
	require.NoError(t, err)

	_, err = s.CommandRun(model.Command{Scope: model.ScopeList, Operation: model.OpAdd, Args: []string{"to_watch", "3"}})
	require.NoError(t, err)

	res, err = s.CommandRun(model.Command{Scope: model.ScopeUser, Operation: model.OpLists})
	require.NoError(t, err)
	lists, ok := res.(model.UserLists)
	require.True(t, ok)
	assert.Equal(t, []int{3}, lists.ToWatch.Indexes())

	res, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpFilter, Args: []string{"rating_from=8", "runtime_to=2 h"}})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.(model.FilmSet).Indexes())

	res, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpGet, Args: []string{"3"}})
	require.NoError(t, err)
	assert.Equal(t, "C", res.(model.Film).Title)

	_, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpSort, Args: []string{"budget"}})
	assert.ErrorIs(t, err, model.ErrUnknownColumn)

	_, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpGet})
	assert.Error(t, err)

	_, err = s.CommandRun(model.Command{Scope: "playlist", Operation: "add"})
	assert.Error(t, err)

	_, err = s.CommandRun(model.Command{Scope: model.ScopeSystem, Operation: model.OpQuit})
	assert.ErrorIs(t, err, ErrExit)
}

func TestParseFilter(t *testing.T) {
	criteria, err := parseFilter([]string{"date_from=2020-01-01", "runtime_from=1 h 30 min", "rating_to=9", "type=Films"})
	require.NoError(t, err)
	assert.Equal(t, date(2020, 1, 1), *criteria.DateFrom)
	assert.Equal(t, 90*time.Minute, *criteria.RuntimeFrom)
	assert.Equal(t, 9.0, *criteria.RatingTo)
	assert.Equal(t, "Films", criteria.Type)

	_, err = parseFilter([]string{"budget=10"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = parseFilter([]string{"runtime_to=soon"})
	assert.ErrorIs(t, err, model.ErrInvalidRuntimeFormat)

	_, err = parseFilter([]string{"genre"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestFilmExportCommand(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()

	_, err := s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpExport, Args: []string{filepath.Join(dir, "view.csv")}})
	require.NoError(t, err)
	films, err := storage.FilmLoad(filepath.Join(dir, "view.csv"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, films.Indexes())

	_, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpExport, Args: []string{filepath.Join(dir, "view")}})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "view.json"))
	assert.NoError(t, err)

	_, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpExport, Args: []string{"out.bin", "yaml"}})
	assert.Error(t, err)
}

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager(newDataManager(t), log.NewNopLogger())
	defer sm.StopCleanupRoutine()

	id, err := sm.SessionAdd()
	require.NoError(t, err)
	assert.Len(t, id, 36)

	res, err := sm.SessionRun(id, model.Command{Scope: model.ScopeFilm, Operation: model.OpShow})
	require.NoError(t, err)
	assert.Equal(t, 3, res.(model.FilmSet).Len())

	_, err = sm.SessionRun("missing", model.Command{Scope: model.ScopeFilm, Operation: model.OpShow})
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	s, ok := sm.SessionGet(id)
	require.True(t, ok)
	s.LastActivity = time.Now().Add(-time.Hour)
	sm.cleanupInactiveSessions(time.Now())
	assert.Equal(t, 0, sm.SessionCount())

	sm.StopCleanupRoutine()
}

func TestFilmValuesCommand(t *testing.T) {
	s := newTestSession(t)

	res, err := s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpValues, Args: []string{"Genre"}})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryValues{Dimension: "genre", Values: []string{"Documentary", "Drama"}}, res)

	_, err = s.CommandRun(model.Command{Scope: model.ScopeFilm, Operation: model.OpValues, Args: []string{"rating"}})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
