package model

import (
	"strings"
)

// ListKind selects which films a session is looking at.
type ListKind int

const (
	ListAll ListKind = iota
	ListToWatch
	ListWatched
)

// String returns the display name of the list.
func (k ListKind) String() string {
	switch k {
	case ListAll:
		return "all"
	case ListToWatch:
		return "to watch"
	case ListWatched:
		return "watched"
	default:
		return "unknown"
	}
}

// ParseListKind resolves user input such as "all", "towatch" or "to_watch".
func ParseListKind(name string) (ListKind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "all", "films":
		return ListAll, nil
	case "towatch":
		return ListToWatch, nil
	case "watched":
		return ListWatched, nil
	default:
		return 0, &InputError{Field: "list", Constraint: "must be one of all, to_watch, watched"}
	}
}

// SortPass is one committed sort of a session view.
type SortPass struct {
	Column    Column
	Ascending bool
}

// SessionInfo is a read-only summary of a session's selection state.
type SessionInfo struct {
	ID        string
	Username  string
	List      ListKind
	Filter    FilmFilter
	Title     string
	Genre     string
	Sorts     []SortPass
	FilmCount int
}

// CategoryValues lists the values a categorical filter accepts.
type CategoryValues struct {
	Dimension string
	Values    []string
}

// UserLists holds a user's two lists resolved against the catalog.
type UserLists struct {
	Username string
	ToWatch  FilmSet
	Watched  FilmSet
}
