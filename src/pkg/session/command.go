package session

import (
	"context"
	"errors"
	"fmt"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// Command wraps the model.Command and adds session-specific functionality
type Command struct {
	command model.Command
	logger  *log.Logger
}

// NewCommand creates a new SessionCommand from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *Command) Validate() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating command", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	if c.command.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks if the scope and operation are valid
func (c *Command) validateScopeAndOperation() error {
	switch c.command.Scope {
	case model.ScopeUser:
		return c.validateUserCommand()
	case model.ScopeList:
		return c.validateListCommand()
	case model.ScopeFilm:
		return c.validateFilmCommand()
	case model.ScopeSystem:
		return c.validateSystemCommand()
	default:
		c.logger.Error(context.Background(), "Invalid command scope", log.Fields{"scope": c.command.Scope})
		return fmt.Errorf("invalid command scope: %s", c.command.Scope)
	}
}

func (c *Command) validateUserCommand() error {
	switch c.command.Operation {
	case model.OpRegister, model.OpLogin:
		if len(c.command.Args) != 2 {
			return c.argError(fmt.Sprintf("user %s command requires 2 arguments: <username> <password>", c.command.Operation))
		}
	case model.OpLogout, model.OpDelete, model.OpLists, model.OpList:
		if len(c.command.Args) != 0 {
			return c.argError(fmt.Sprintf("user %s command does not accept any arguments", c.command.Operation))
		}
	default:
		return c.operationError()
	}
	return nil
}

func (c *Command) validateListCommand() error {
	switch c.command.Operation {
	case model.OpSelect:
		if len(c.command.Args) != 1 {
			return c.argError("list select command requires 1 argument: <all|to_watch|watched>")
		}
	case model.OpAdd, model.OpRemove:
		if len(c.command.Args) != 2 {
			return c.argError(fmt.Sprintf("list %s command requires 2 arguments: <to_watch|watched> <index>", c.command.Operation))
		}
	case model.OpMove:
		if len(c.command.Args) != 2 {
			return c.argError("list move command requires 2 arguments: <index> <to_watch|watched>")
		}
	default:
		return c.operationError()
	}
	return nil
}

func (c *Command) validateFilmCommand() error {
	switch c.command.Operation {
	case model.OpShow, model.OpReset:
		if len(c.command.Args) != 0 {
			return c.argError(fmt.Sprintf("film %s command does not accept any arguments", c.command.Operation))
		}
	case model.OpGet:
		if len(c.command.Args) != 1 {
			return c.argError("film get command requires 1 argument: <index>")
		}
	case model.OpValues:
		if len(c.command.Args) != 1 {
			return c.argError("film values command requires 1 argument: <genre|language|type>")
		}
	case model.OpFilter:
		// no arguments clears the filter
	case model.OpSearch:
		if len(c.command.Args) > 2 {
			return c.argError("film search command accepts at most 2 arguments: [title=<text>] [genre=<text>]")
		}
	case model.OpSort:
		if len(c.command.Args) != 1 {
			return c.argError("film sort command requires 1 argument: <column>")
		}
	case model.OpExport:
		if len(c.command.Args) < 1 || len(c.command.Args) > 2 {
			return c.argError("film export command requires 1 or 2 arguments: <filename> [json|xml|csv]")
		}
	default:
		return c.operationError()
	}
	return nil
}

func (c *Command) validateSystemCommand() error {
	switch c.command.Operation {
	case model.OpExit, model.OpQuit:
		if len(c.command.Args) != 0 {
			return c.argError(fmt.Sprintf("system %s command does not accept any arguments", c.command.Operation))
		}
	default:
		return c.operationError()
	}
	return nil
}

func (c *Command) argError(msg string) error {
	c.logger.Error(context.Background(), "Invalid number of arguments", log.Fields{
		"scope":     c.command.Scope,
		"operation": c.command.Operation,
		"argCount":  len(c.command.Args),
	})
	return errors.New(msg)
}

func (c *Command) operationError() error {
	c.logger.Error(context.Background(), "Invalid operation", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})
	return fmt.Errorf("invalid %s operation: %s", c.command.Scope, c.command.Operation)
}
