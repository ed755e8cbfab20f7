package session

import (
	"context"
	"fmt"

	"filmscape/local-app/src/pkg/log"
	"filmscape/local-app/src/pkg/model"
)

// handleUserRegister handles the user register command
func handleUserRegister(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	username, password := credentials(cmd.Args)
	s.logger.Info(ctx, "Handling user register command", log.Fields{"username": username})

	if err := s.DataManager.UserManager.UserRegister(username, password); err != nil {
		return nil, err
	}
	return fmt.Sprintf("User '%s' registered", username), nil
}

// handleUserLogin handles the user login command
func handleUserLogin(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	username, password := credentials(cmd.Args)
	s.logger.Info(ctx, "Handling user login command", log.Fields{"username": username})

	if err := s.UserLogin(username, password); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Logged in as '%s'", username), nil
}

// handleUserLogout handles the user logout command
func handleUserLogout(s *Session, cmd model.Command) (interface{}, error) {
	username := s.Username()
	if err := s.UserLogout(); err != nil {
		return nil, err
	}
	return fmt.Sprintf("User '%s' logged out", username), nil
}

// handleUserDelete deletes the logged-in user
func handleUserDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	username := s.Username()
	s.logger.Info(ctx, "Handling user delete command", log.Fields{"username": username})

	if err := s.AccountDelete(); err != nil {
		return nil, err
	}
	return fmt.Sprintf("User '%s' deleted", username), nil
}

// handleUserLists returns both lists of the logged-in user
func handleUserLists(s *Session, cmd model.Command) (interface{}, error) {
	toWatch, watched, err := s.Lists()
	if err != nil {
		return nil, err
	}
	return model.UserLists{Username: s.Username(), ToWatch: toWatch, Watched: watched}, nil
}

// handleUserList returns every registered username
func handleUserList(s *Session, cmd model.Command) (interface{}, error) {
	return s.DataManager.UserManager.UserList(), nil
}

func credentials(args []string) (string, string) {
	return args[0], args[1]
}
