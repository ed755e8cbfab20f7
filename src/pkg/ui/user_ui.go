package ui

import (
	"filmscape/local-app/src/pkg/model"
)

// UserList displays the registered usernames
func (u *UI) UserList(usernames []string) {
	if len(usernames) == 0 {
		u.Info("No users found.")
		return
	}

	u.Println("User List:")
	for _, name := range usernames {
		u.Printf("- %s\n", u.style(name, userStyle))
	}
}

// UserLists displays a user's to-watch and watched lists
func (u *UI) UserLists(lists model.UserLists) {
	u.Println(u.style("To watch", headerStyle))
	u.FilmTable(lists.ToWatch)
	u.Println(u.style("Watched", headerStyle))
	u.FilmTable(lists.Watched)
}

// Result displays a command result according to its type.
func (u *UI) Result(result interface{}) {
	switch r := result.(type) {
	case nil:
	case string:
		u.Success(r)
	case []string:
		u.UserList(r)
	case model.FilmSet:
		u.FilmTable(r)
	case model.Film:
		u.FilmInfo(r)
	case model.UserLists:
		u.UserLists(r)
	case model.CategoryValues:
		u.CategoryValues(r)
	default:
		u.Printf("%v\n", r)
	}
}
