package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"filmscape/local-app/src/pkg/data"
	"filmscape/local-app/src/pkg/event"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

var (
	// ErrNotLoggedIn is returned by operations that need a logged-in user.
	ErrNotLoggedIn = fmt.Errorf("%w: no user logged in", model.ErrInvalidInput)
	// ErrAuthenticationFailed is returned when a password does not match.
	ErrAuthenticationFailed = fmt.Errorf("%w: wrong password", model.ErrInvalidInput)
	// ErrExit asks the adapter to end the session.
	ErrExit = errors.New("exit requested")
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session holds one user's selection state: who is logged in, which list is
// shown, and the filter, search and sort passes layered over it.
type Session struct {
	ID           string
	DataManager  *data.DataManager
	LastActivity time.Time

	username string
	list     model.ListKind
	filter   model.FilmFilter
	title    string
	genre    string
	sorts    []model.SortPass
	view     model.FilmSet

	commandHandlers map[model.Scope]map[model.Operation]CommandHandler
	unsubscribe     []func()
	logger          *log.Logger
}

// NewSession creates a new Session showing the whole catalog
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		LastActivity: time.Now(),
		list:         model.ListAll,
		view:         dataManager.QueryEngine.Catalog(),
		logger:       logger,
	}
	s.initCommandHandlers()

	s.unsubscribe = []func(){
		dataManager.EventManager.Subscribe(event.UserDeleted, s.handleUserDeleted),
		dataManager.EventManager.Subscribe(event.ListChanged, s.handleListChanged),
	}

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[model.Scope]map[model.Operation]CommandHandler{
		model.ScopeUser:   initUserCommandHandlers(),
		model.ScopeList:   initListCommandHandlers(),
		model.ScopeFilm:   initFilmCommandHandlers(),
		model.ScopeSystem: initSystemCommandHandlers(),
	}
}

// Close detaches the session from registry events.
func (s *Session) Close() {
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.unsubscribe = nil
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"sessionID": s.ID, "scope": cmd.Scope, "operation": cmd.Operation})

	s.LastActivity = time.Now()

	sessionCmd := NewCommand(cmd, s.logger)
	if err := sessionCmd.Validate(); err != nil {
		return nil, err
	}

	handler, ok := s.commandHandlers[cmd.Scope][cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "No handler for command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
		return nil, fmt.Errorf("invalid command: %s %s", cmd.Scope, cmd.Operation)
	}

	result, err := handler(s, cmd)
	if err != nil && !errors.Is(err, ErrExit) {
		s.logger.Warn(ctx, "Command failed", log.Fields{"sessionID": s.ID, "error": err})
	}
	return result, err
}

// UserLogin authenticates and switches the session to the user. On failure the
// session keeps its previous state.
func (s *Session) UserLogin(username, password string) error {
	ctx := context.Background()
	ok, err := s.DataManager.UserManager.UserAuthenticate(username, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthenticationFailed
	}

	prevUser, prevList := s.username, s.list
	s.username = username
	s.list = model.ListAll
	if err := s.derive(); err != nil {
		s.username, s.list = prevUser, prevList
		return err
	}
	s.logger.Info(ctx, "User logged in", log.Fields{"sessionID": s.ID, "username": username})
	return nil
}

// UserLogout returns the session to the anonymous catalog view. Overlays are kept.
func (s *Session) UserLogout() error {
	if s.username == "" {
		return ErrNotLoggedIn
	}
	s.logger.Info(context.Background(), "User logged out", log.Fields{"sessionID": s.ID, "username": s.username})
	s.username = ""
	s.list = model.ListAll
	return s.derive()
}

// Username returns the logged-in user, or "" when nobody is.
func (s *Session) Username() string {
	return s.username
}

// List returns the selected list.
func (s *Session) List() model.ListKind {
	return s.list
}

// View returns the current films after every committed overlay.
func (s *Session) View() model.FilmSet {
	return s.view
}

// Info summarizes the selection state.
func (s *Session) Info() model.SessionInfo {
	return model.SessionInfo{
		ID:        s.ID,
		Username:  s.username,
		List:      s.list,
		Filter:    s.filter,
		Title:     s.title,
		Genre:     s.genre,
		Sorts:     slices.Clone(s.sorts),
		FilmCount: s.view.Len(),
	}
}

// ListSelect switches the base list and re-applies the committed overlays to it.
func (s *Session) ListSelect(kind model.ListKind) error {
	if kind != model.ListAll && s.username == "" {
		return ErrNotLoggedIn
	}
	prev := s.list
	s.list = kind
	if err := s.derive(); err != nil {
		s.list = prev
		return err
	}
	return nil
}

// FilterApply validates and commits filter criteria. Invalid criteria change nothing.
func (s *Session) FilterApply(criteria model.FilmFilter) error {
	if err := s.DataManager.QueryEngine.FilterValidate(criteria); err != nil {
		return err
	}
	prev := s.filter
	s.filter = criteria
	if err := s.derive(); err != nil {
		s.filter = prev
		return err
	}
	return nil
}

// SearchApply commits the title and genre search texts. Empty text searches nothing.
func (s *Session) SearchApply(title, genre string) error {
	prevTitle, prevGenre := s.title, s.genre
	s.title, s.genre = title, genre
	if err := s.derive(); err != nil {
		s.title, s.genre = prevTitle, prevGenre
		return err
	}
	return nil
}

// SortApply sorts by column. Repeating the most recent column flips its
// direction; a new column starts ascending. Earlier passes remain as tie-breakers.
func (s *Session) SortApply(column model.Column) (model.SortPass, error) {
	pass := model.SortPass{Column: column, Ascending: true}
	if n := len(s.sorts); n > 0 && s.sorts[n-1].Column == column {
		pass.Ascending = !s.sorts[n-1].Ascending
	}

	prev := s.sorts
	// An older pass on the same column cannot affect the order once the column is sorted again
	next := slices.DeleteFunc(slices.Clone(s.sorts), func(p model.SortPass) bool {
		return p.Column == column
	})
	s.sorts = append(next, pass)
	if err := s.derive(); err != nil {
		s.sorts = prev
		return model.SortPass{}, err
	}
	return pass, nil
}

// Reset clears filter, search and sort state and shows the selected list as stored.
func (s *Session) Reset() error {
	s.filter = model.FilmFilter{}
	s.title, s.genre = "", ""
	s.sorts = nil
	return s.derive()
}

// ToWatchAdd adds a catalog film to the user's to-watch list.
func (s *Session) ToWatchAdd(index int) error {
	return s.listChange(index, s.DataManager.UserManager.ToWatchAdd)
}

// WatchedAdd adds a catalog film to the user's watched list.
func (s *Session) WatchedAdd(index int) error {
	return s.listChange(index, s.DataManager.UserManager.WatchedAdd)
}

// ToWatchRemove removes a film from the user's to-watch list.
func (s *Session) ToWatchRemove(index int) error {
	return s.listChange(index, s.DataManager.UserManager.ToWatchRemove)
}

// WatchedRemove removes a film from the user's watched list.
func (s *Session) WatchedRemove(index int) error {
	return s.listChange(index, s.DataManager.UserManager.WatchedRemove)
}

// WatchedMoveTo moves a film from to-watch to watched.
func (s *Session) WatchedMoveTo(index int) error {
	return s.listChange(index, s.DataManager.UserManager.WatchedMoveTo)
}

// ToWatchMoveTo moves a film from watched back to to-watch.
func (s *Session) ToWatchMoveTo(index int) error {
	return s.listChange(index, s.DataManager.UserManager.ToWatchMoveTo)
}

// Lists returns the user's two lists resolved against the catalog.
func (s *Session) Lists() (model.FilmSet, model.FilmSet, error) {
	if s.username == "" {
		return model.FilmSet{}, model.FilmSet{}, ErrNotLoggedIn
	}
	toWatch, watched, err := s.DataManager.UserManager.ListsGet(s.username)
	if err != nil {
		return model.FilmSet{}, model.FilmSet{}, err
	}
	catalog := s.DataManager.QueryEngine.Catalog()
	return catalog.Pick(toWatch), catalog.Pick(watched), nil
}

// AccountDelete deletes the logged-in user. The session logs out through the UserDeleted event.
func (s *Session) AccountDelete() error {
	if s.username == "" {
		return ErrNotLoggedIn
	}
	return s.DataManager.UserManager.UserDelete(s.username)
}

func (s *Session) listChange(index int, change func(username string, index int) error) error {
	if s.username == "" {
		return ErrNotLoggedIn
	}
	if err := model.IndexValidate(index); err != nil {
		return err
	}
	if _, ok := s.DataManager.QueryEngine.ByIndex(index); !ok {
		return &model.InputError{Field: "index", Constraint: fmt.Sprintf("no film with index %d", index)}
	}
	return change(s.username, index)
}

// derive rebuilds the view: base list, then filter, then search, then each sort pass in order.
func (s *Session) derive() error {
	engine := s.DataManager.QueryEngine
	catalog := engine.Catalog()

	base := catalog
	if s.list != model.ListAll {
		if s.username == "" {
			return ErrNotLoggedIn
		}
		toWatch, watched, err := s.DataManager.UserManager.ListsGet(s.username)
		if err != nil {
			return err
		}
		if s.list == model.ListToWatch {
			base = catalog.Pick(toWatch)
		} else {
			base = catalog.Pick(watched)
		}
	}

	films, err := engine.FilterBy(s.filter, base)
	if err != nil {
		return err
	}
	films = engine.SearchTitle(s.title, films)
	films = engine.SearchGenre(s.genre, films)
	for _, pass := range s.sorts {
		films, err = engine.SortBy(pass.Column, pass.Ascending, films)
		if err != nil {
			return err
		}
	}

	s.view = films
	s.logger.Debug(context.Background(), "View derived", log.Fields{
		"sessionID": s.ID,
		"list":      s.list.String(),
		"base":      base.Len(),
		"films":     films.Len(),
	})
	return nil
}

// handleUserDeleted logs the session out when its user is deleted
func (s *Session) handleUserDeleted(e event.Event) {
	username, _ := e.Data.(string)
	if username == "" || username != s.username {
		return
	}
	s.username = ""
	s.list = model.ListAll
	if err := s.derive(); err != nil {
		s.logger.Error(context.Background(), "Failed to refresh view after user deletion", log.Fields{"error": err})
	}
}

// handleListChanged refreshes a view that shows the changed user's list
func (s *Session) handleListChanged(e event.Event) {
	change, _ := e.Data.(event.ListChange)
	if change.Username != s.username || s.list == model.ListAll {
		return
	}
	if err := s.derive(); err != nil {
		s.logger.Error(context.Background(), "Failed to refresh view after list change", log.Fields{"error": err})
	}
}

// initUserCommandHandlers initializes user command handlers
func initUserCommandHandlers() map[model.Operation]CommandHandler {
	return map[model.Operation]CommandHandler{
		model.OpRegister: handleUserRegister,
		model.OpLogin:    handleUserLogin,
		model.OpLogout:   handleUserLogout,
		model.OpDelete:   handleUserDelete,
		model.OpLists:    handleUserLists,
		model.OpList:     handleUserList,
	}
}

// initListCommandHandlers initializes list command handlers
func initListCommandHandlers() map[model.Operation]CommandHandler {
	return map[model.Operation]CommandHandler{
		model.OpSelect: handleListSelect,
		model.OpAdd:    handleListAdd,
		model.OpRemove: handleListRemove,
		model.OpMove:   handleListMove,
	}
}

// initFilmCommandHandlers initializes film command handlers
func initFilmCommandHandlers() map[model.Operation]CommandHandler {
	return map[model.Operation]CommandHandler{
		model.OpShow:   handleFilmShow,
		model.OpGet:    handleFilmGet,
		model.OpFilter: handleFilmFilter,
		model.OpSearch: handleFilmSearch,
		model.OpSort:   handleFilmSort,
		model.OpReset:  handleFilmReset,
		model.OpExport: handleFilmExport,
		model.OpValues: handleFilmValues,
	}
}

// initSystemCommandHandlers initializes system command handlers
func initSystemCommandHandlers() map[model.Operation]CommandHandler {
	return map[model.Operation]CommandHandler{
		model.OpExit: handleSystemExit,
		model.OpQuit: handleSystemExit,
	}
}

func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	return nil, ErrExit
}
