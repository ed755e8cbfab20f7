// Package cli runs the interactive terminal front end.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"filmscape/local-app/src/pkg/adapter"
	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/session"
	"filmscape/local-app/src/pkg/ui"
)

// CLI represents the command-line interface
type CLI struct {
	adapter     *adapter.CLIAdapter
	ui          *ui.UI
	historyFile string
	rl          *readline.Instance
	logger      *log.Logger
}

// NewCLI creates a new CLI instance writing to w
func NewCLI(a *adapter.CLIAdapter, w io.Writer, useColor bool, historyFile string, logger *log.Logger) *CLI {
	return &CLI{
		adapter:     a,
		ui:          ui.NewUI(w, useColor),
		historyFile: historyFile,
		logger:      logger,
	}
}

// Run starts the readline loop and returns when the user exits
func (c *CLI) Run() error {
	ctx := context.Background()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt(),
		HistoryFile:     c.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	c.rl = rl
	defer rl.Close()

	c.ui.Println("Welcome to Filmscape! Type 'help' for a list of commands or 'exit' to quit.")
	c.logger.Info(ctx, "CLI started", nil)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			c.ui.Warning("Use 'exit' or 'quit' to exit the program.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if c.Execute(line) {
			return nil
		}
		rl.SetPrompt(c.Prompt())
	}
}

// Stop interrupts a running readline loop
func (c *CLI) Stop() {
	if c.rl != nil {
		c.rl.Close()
	}
}

// Execute runs one input line and prints its result. It reports whether the user asked to exit.
func (c *CLI) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	args := adapter.ParseArgs(line)
	switch strings.ToLower(args[0]) {
	case "help":
		c.printHelp(args[1:])
		return false
	case "exit", "quit":
		return true
	}

	result, err := c.adapter.ProcessInput(line)
	if errors.Is(err, session.ErrExit) {
		return true
	}
	if err != nil {
		c.ui.Error(err.Error())
		return false
	}
	c.ui.Result(result)
	return false
}

// ExecuteScript runs every line of a script file. Blank lines and lines starting with '#' are skipped.
func (c *CLI) ExecuteScript(filename string) (bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return false, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.ui.Println(c.Prompt() + line)
		if c.Execute(line) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read script: %w", err)
	}
	return false, nil
}

// Prompt builds the prompt from the session state
func (c *CLI) Prompt() string {
	user, list := c.adapter.SessionState()
	return c.ui.PromptString(user, list)
}

// printHelp prints the help message based on the provided arguments
func (c *CLI) printHelp(args []string) {
	switch len(args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		c.showScopeHelp(args[0])
	case 2:
		c.showOperationHelp(args[0], args[1])
	default:
		c.ui.Error("Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func (c *CLI) showGeneralHelp() {
	c.ui.Println("Command syntax: <scope> <operation> [arguments]")
	c.ui.Println("\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			c.ui.Printf("\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		c.ui.Printf("  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

// showScopeHelp displays help information for all commands within a specific scope
func (c *CLI) showScopeHelp(scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				c.ui.Printf("Commands for %s:\n\n", scope)
				found = true
			}
			c.ui.Printf("%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		c.ui.Error(fmt.Sprintf("No help found for %s", scope))
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func (c *CLI) showOperationHelp(scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			c.ui.Printf("Command: %s %s\n", scope, operation)
			c.ui.Printf("Description: %s\n", cmd.LongDesc)
			c.ui.Printf("Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				c.ui.Println("Arguments:")
				for _, arg := range cmd.Arguments {
					c.ui.Printf("  %s\n", arg)
				}
			}
			if len(cmd.Examples) > 0 {
				c.ui.Println("Examples:")
				for _, ex := range cmd.Examples {
					c.ui.Printf("  %s\n", ex)
				}
			}
			return
		}
	}
	c.ui.Error(fmt.Sprintf("No help found for %s %s", scope, operation))
}
