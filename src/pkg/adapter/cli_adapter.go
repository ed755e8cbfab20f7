package adapter

import (
	"context"
	"errors"
	"strings"
	"sync"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
	"filmscape/local-app/src/pkg/session"
)

var (
	// ErrEmptyCommand is returned for blank input.
	ErrEmptyCommand = errors.New("empty command")
	// ErrSessionExpired is returned when the terminal's session timed out. A new one is open.
	ErrSessionExpired = errors.New("session expired after inactivity, a new session was started")
)

// CLIAdapter binds one terminal to one session
type CLIAdapter struct {
	sessionID      string
	mu             sync.RWMutex
	adapterManager *AdapterManager
	logger         *log.Logger
}

// NewCLIAdapter creates a new CLIAdapter. AdapterStart opens its session.
func NewCLIAdapter(am *AdapterManager, logger *log.Logger) *CLIAdapter {
	logger.Info(context.Background(), "Creating new CLI adapter", nil)
	return &CLIAdapter{adapterManager: am, logger: logger}
}

// GetType returns the type of the adapter
func (a *CLIAdapter) GetType() string {
	return "cli"
}

// AdapterStart opens a session for the terminal
func (a *CLIAdapter) AdapterStart() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sessionID != "" {
		return nil
	}

	sessionID, err := a.adapterManager.AdapterAdd(a)
	if err != nil {
		return err
	}
	a.sessionID = sessionID
	a.logger.Info(context.Background(), "CLI adapter started", log.Fields{"sessionID": sessionID})
	return nil
}

// AdapterStop closes the terminal's session
func (a *CLIAdapter) AdapterStop() error {
	a.mu.Lock()
	sessionID := a.sessionID
	a.sessionID = ""
	a.mu.Unlock()

	if sessionID != "" {
		a.adapterManager.AdapterRemove(sessionID)
		a.logger.Info(context.Background(), "CLI adapter stopped", log.Fields{"sessionID": sessionID})
	}
	return nil
}

// ProcessInput converts the input string into a command and runs it
func (a *CLIAdapter) ProcessInput(input string) (interface{}, error) {
	cmd, err := a.CommandParse(input)
	if err != nil {
		return nil, err
	}
	return a.CommandProcess(cmd)
}

// CommandProcess runs a parsed command in the terminal's session
func (a *CLIAdapter) CommandProcess(cmd model.Command) (interface{}, error) {
	a.mu.RLock()
	sessionID := a.sessionID
	a.mu.RUnlock()
	if sessionID == "" {
		return nil, errors.New("CLI adapter is not started")
	}

	result, err := a.adapterManager.CommandRun(sessionID, cmd)
	if errors.Is(err, session.ErrSessionNotFound) {
		a.logger.Warn(context.Background(), "CLI session expired", log.Fields{"sessionID": sessionID})
		if restartErr := a.restart(sessionID); restartErr != nil {
			return nil, restartErr
		}
		return nil, ErrSessionExpired
	}
	return result, err
}

// restart replaces an expired session with a new one
func (a *CLIAdapter) restart(expired string) error {
	a.adapterManager.AdapterRemove(expired)

	a.mu.Lock()
	if a.sessionID == expired {
		a.sessionID = ""
	}
	a.mu.Unlock()
	return a.AdapterStart()
}

// CommandParse splits input into scope, operation and arguments
func (a *CLIAdapter) CommandParse(input string) (model.Command, error) {
	args := ParseArgs(input)
	if len(args) == 0 {
		return model.Command{}, ErrEmptyCommand
	}

	cmd := model.Command{
		Scope: model.Scope(strings.ToLower(args[0])),
		Args:  []string{},
	}
	if len(args) > 1 {
		cmd.Operation = model.Operation(strings.ToLower(args[1]))
		cmd.Args = args[2:]
	}

	a.logger.Debug(context.Background(), "Command parsed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "args": cmd.Args})
	return cmd, nil
}

// SessionState returns the logged-in user and the selected list, for the prompt.
func (a *CLIAdapter) SessionState() (string, string) {
	a.mu.RLock()
	sessionID := a.sessionID
	a.mu.RUnlock()

	s, ok := a.adapterManager.SessionGet(sessionID)
	if !ok || s.Username() == "" {
		return "", ""
	}
	return s.Username(), s.List().String()
}

// ParseArgs splits input on spaces. Double or single quotes group words and are
// removed. A quote that is never closed is kept as a literal character, as is a
// single quote inside a word ("Schindler's").
func ParseArgs(input string) []string {
	return parseArgs(input, map[int]bool{})
}

func parseArgs(input string, literal map[int]bool) []string {
	var args []string
	var current strings.Builder
	var quote rune
	quoteAt := -1
	inArg := false

	for i, char := range input {
		switch {
		case quote != 0:
			if char == quote {
				quote = 0
			} else {
				current.WriteRune(char)
			}
		case (char == '"' || char == '\'') && !literal[i] && opensGroup(char, current.String()):
			quote = char
			quoteAt = i
			inArg = true
		case char == ' ' || char == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(char)
			inArg = true
		}
	}

	if quote != 0 {
		literal[quoteAt] = true
		return parseArgs(input, literal)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}

// opensGroup reports whether a quote starts a quoted group given the text of
// the argument so far. Single quotes only group at the start of a word or a value.
func opensGroup(quote rune, prefix string) bool {
	if quote == '"' {
		return true
	}
	return prefix == "" || strings.HasSuffix(prefix, "=")
}
