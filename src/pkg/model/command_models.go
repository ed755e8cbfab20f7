package model

// Scope groups related command operations.
type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeList   Scope = "list"
	ScopeFilm   Scope = "film"
	ScopeSystem Scope = "system"
)

// Operation names a single command within its scope.
type Operation string

const (
	OpRegister Operation = "register"
	OpLogin    Operation = "login"
	OpLogout   Operation = "logout"
	OpDelete   Operation = "delete"
	OpLists    Operation = "lists"
	OpList     Operation = "list"

	OpSelect Operation = "select"
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
	OpMove   Operation = "move"

	OpShow   Operation = "show"
	OpGet    Operation = "get"
	OpFilter Operation = "filter"
	OpSearch Operation = "search"
	OpSort   Operation = "sort"
	OpReset  Operation = "reset"
	OpExport Operation = "export"
	OpValues Operation = "values"

	OpExit Operation = "exit"
	OpQuit Operation = "quit"
)

// Command is a parsed request from an adapter to a session.
type Command struct {
	Scope     Scope
	Operation Operation
	Args      []string
}
