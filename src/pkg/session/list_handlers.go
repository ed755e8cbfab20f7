package session

import (
	"context"
	"fmt"
	"strconv"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// handleListSelect switches the session to a list and returns the new view
func handleListSelect(s *Session, cmd model.Command) (interface{}, error) {
	kind, err := model.ParseListKind(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.ListSelect(kind); err != nil {
		return nil, err
	}
	return s.View(), nil
}

// handleListAdd handles "list add <to_watch|watched> <index>"
func handleListAdd(s *Session, cmd model.Command) (interface{}, error) {
	kind, index, err := listTarget(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return nil, err
	}
	s.logger.Info(context.Background(), "Handling list add command", log.Fields{"list": kind.String(), "index": index})

	add := s.ToWatchAdd
	if kind == model.ListWatched {
		add = s.WatchedAdd
	}
	if err := add(index); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Film %d added to %s list", index, kind), nil
}

// handleListRemove handles "list remove <to_watch|watched> <index>"
func handleListRemove(s *Session, cmd model.Command) (interface{}, error) {
	kind, index, err := listTarget(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return nil, err
	}
	s.logger.Info(context.Background(), "Handling list remove command", log.Fields{"list": kind.String(), "index": index})

	remove := s.ToWatchRemove
	if kind == model.ListWatched {
		remove = s.WatchedRemove
	}
	if err := remove(index); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Film %d removed from %s list", index, kind), nil
}

// handleListMove handles "list move <index> <to_watch|watched>", naming the destination list
func handleListMove(s *Session, cmd model.Command) (interface{}, error) {
	kind, index, err := listTarget(cmd.Args[1], cmd.Args[0])
	if err != nil {
		return nil, err
	}
	s.logger.Info(context.Background(), "Handling list move command", log.Fields{"list": kind.String(), "index": index})

	move := s.ToWatchMoveTo
	if kind == model.ListWatched {
		move = s.WatchedMoveTo
	}
	if err := move(index); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Film %d moved to %s list", index, kind), nil
}

// listTarget parses a user list name and a film index
func listTarget(listArg, indexArg string) (model.ListKind, int, error) {
	kind, err := model.ParseListKind(listArg)
	if err != nil {
		return 0, 0, err
	}
	if kind == model.ListAll {
		return 0, 0, &model.InputError{Field: "list", Constraint: "must be to_watch or watched"}
	}
	index, err := parseIndex(indexArg)
	if err != nil {
		return 0, 0, err
	}
	return kind, index, nil
}

func parseIndex(text string) (int, error) {
	index, err := strconv.Atoi(text)
	if err != nil {
		return 0, &model.InputError{Field: "index", Constraint: fmt.Sprintf("'%s' is not a number", text)}
	}
	if err := model.IndexValidate(index); err != nil {
		return 0, err
	}
	return index, nil
}
