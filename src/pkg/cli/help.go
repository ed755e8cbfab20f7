package cli

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "user",
		Operation: "register",
		ShortDesc: "Register a new user",
		LongDesc:  "Creates a new user with empty to-watch and watched lists.",
		Syntax:    "user register <username> <password>",
		Arguments: []string{"username: 4 to 32 characters", "password: 4 to 32 characters"},
		Examples:  []string{"user register alice pass1234"},
	},
	{
		Scope:     "user",
		Operation: "login",
		ShortDesc: "Log in",
		LongDesc:  "Logs in and shows the whole catalog. Filters, searches and sorts stay in place.",
		Syntax:    "user login <username> <password>",
		Examples:  []string{"user login alice pass1234"},
	},
	{
		Scope:     "user",
		Operation: "logout",
		ShortDesc: "Log out",
		LongDesc:  "Logs out and returns to the whole catalog.",
		Syntax:    "user logout",
		Examples:  []string{"user logout"},
	},
	{
		Scope:     "user",
		Operation: "delete",
		ShortDesc: "Delete the logged-in user",
		LongDesc:  "Deletes the logged-in user together with both lists, then logs out.",
		Syntax:    "user delete",
		Examples:  []string{"user delete"},
	},
	{
		Scope:     "user",
		Operation: "lists",
		ShortDesc: "Show both lists",
		LongDesc:  "Shows the to-watch and watched lists of the logged-in user in insertion order.",
		Syntax:    "user lists",
		Examples:  []string{"user lists"},
	},
	{
		Scope:     "user",
		Operation: "list",
		ShortDesc: "List registered users",
		LongDesc:  "Shows every registered username in registration order.",
		Syntax:    "user list",
		Examples:  []string{"user list"},
	},
	{
		Scope:     "list",
		Operation: "select",
		ShortDesc: "Choose the films to browse",
		LongDesc:  "Switches between the whole catalog and the user's lists. The current filter, search and sorts are applied to the new list.",
		Syntax:    "list select <all|to_watch|watched>",
		Examples:  []string{"list select to_watch", "list select all"},
	},
	{
		Scope:     "list",
		Operation: "add",
		ShortDesc: "Add a film to a list",
		LongDesc:  "Adds a film to the to-watch or watched list. A film can be in only one of the two lists.",
		Syntax:    "list add <to_watch|watched> <index>",
		Arguments: []string{"index: The film's original index"},
		Examples:  []string{"list add to_watch 12", "list add watched 7"},
	},
	{
		Scope:     "list",
		Operation: "remove",
		ShortDesc: "Remove a film from a list",
		LongDesc:  "Removes a film from the to-watch or watched list.",
		Syntax:    "list remove <to_watch|watched> <index>",
		Examples:  []string{"list remove to_watch 12"},
	},
	{
		Scope:     "list",
		Operation: "move",
		ShortDesc: "Move a film between lists",
		LongDesc:  "Moves a film from the other list to the named list, appending it at the end.",
		Syntax:    "list move <index> <to_watch|watched>",
		Examples:  []string{"list move 12 watched"},
	},
	{
		Scope:     "film",
		Operation: "show",
		ShortDesc: "Show the current films",
		LongDesc:  "Shows the selected list after the current filter, search and sorts.",
		Syntax:    "film show",
		Examples:  []string{"film show"},
	},
	{
		Scope:     "film",
		Operation: "get",
		ShortDesc: "Show one film",
		LongDesc:  "Shows every field of the film with the given original index.",
		Syntax:    "film get <index>",
		Examples:  []string{"film get 3"},
	},
	{
		Scope:     "film",
		Operation: "filter",
		ShortDesc: "Filter the current list",
		LongDesc:  "Replaces the filter. Bounds are inclusive and text values match case-insensitively. Without arguments the filter is cleared.",
		Syntax:    "film filter [key=value]...",
		Arguments: []string{
			"date_from, date_to: YYYY-MM-DD",
			"runtime_from, runtime_to: e.g. 90, \"1 h 30 min\", 1h30m",
			"rating_from, rating_to: 0 to 10",
			"genre, language, type: a value present in the catalog",
		},
		Examples: []string{"film filter genre=Drama rating_from=7", "film filter \"runtime_to=2 h\"", "film filter"},
	},
	{
		Scope:     "film",
		Operation: "search",
		ShortDesc: "Search titles and genres",
		LongDesc:  "Keeps films whose title and genre contain the given text. Matching is case-sensitive. Without arguments the search is cleared.",
		Syntax:    "film search [title=<text>] [genre=<text>]",
		Examples:  []string{"film search Irish", "film search \"title=Night on\" genre=Doc"},
	},
	{
		Scope:     "film",
		Operation: "sort",
		ShortDesc: "Sort by a column",
		LongDesc:  "Sorts by a column, ascending first. Sorting the same column again reverses it. Films missing the value stay last.",
		Syntax:    "film sort <column>",
		Arguments: []string{"column: index, release_date, title, genre, runtime, language, type or rating"},
		Examples:  []string{"film sort rating", "film sort release_date"},
	},
	{
		Scope:     "film",
		Operation: "reset",
		ShortDesc: "Clear filter, search and sorts",
		LongDesc:  "Clears the filter, search and sorts and shows the selected list as stored.",
		Syntax:    "film reset",
		Examples:  []string{"film reset"},
	},
	{
		Scope:     "film",
		Operation: "values",
		ShortDesc: "List filter values",
		LongDesc:  "Lists every genre, language or type present in the catalog. These are the values 'film filter' accepts.",
		Syntax:    "film values <genre|language|type>",
		Examples:  []string{"film values genre"},
	},
	{
		Scope:     "film",
		Operation: "export",
		ShortDesc: "Export the current films",
		LongDesc:  "Writes the current films to a file. The format defaults to the file extension, or json.",
		Syntax:    "film export <filename> [json|xml|csv]",
		Examples:  []string{"film export dramas.csv", "film export picks xml"},
	},
	{
		Scope:     "system",
		Operation: "exit",
		ShortDesc: "Exit the program",
		LongDesc:  "Exits Filmscape. Lists are saved after every change.",
		Syntax:    "system exit",
		Examples:  []string{"system exit", "exit"},
	},
	{
		Scope:     "system",
		Operation: "quit",
		ShortDesc: "Quit the program",
		LongDesc:  "Equivalent to 'system exit'.",
		Syntax:    "system quit",
		Examples:  []string{"system quit", "quit"},
	},
}
