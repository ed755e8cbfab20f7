package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

const (
	UsernameMinLength = 4
	UsernameMaxLength = 32
	PasswordMinLength = 4
	PasswordMaxLength = 32
)

// User represents a registered user and the two film lists they curate.
// Password holds the stored form, which depends on the active password policy.
type User struct {
	Username string `json:"username" validate:"required,min=4,max=32"`
	Password string `json:"password" validate:"max=128"`
	ToWatch  []int  `json:"to_watch" validate:"dive,min=0"`
	Watched  []int  `json:"watched" validate:"dive,min=0"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	return &User{
		Username: u.Username,
		Password: u.Password,
		ToWatch:  append([]int{}, u.ToWatch...),
		Watched:  append([]int{}, u.Watched...),
	}
}

// List returns the indexes of the given list. ListAll has no per-user list.
func (u *User) List(kind ListKind) []int {
	switch kind {
	case ListToWatch:
		return u.ToWatch
	case ListWatched:
		return u.Watched
	default:
		return nil
	}
}

// ListHolding reports which list holds index, or ListAll when neither does.
func (u *User) ListHolding(index int) ListKind {
	if slices.Contains(u.ToWatch, index) {
		return ListToWatch
	}
	if slices.Contains(u.Watched, index) {
		return ListWatched
	}
	return ListAll
}

// credentials carries the raw username and password as typed by the user.
type credentials struct {
	Username string `validate:"min=4,max=32"`
	Password string `validate:"min=4,max=32"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// UsernameValidate checks the length bounds of a username.
func UsernameValidate(username string) error {
	return translate(validate.StructPartial(credentials{Username: username}, "Username"))
}

// CredentialsValidate checks the length bounds of a username and a raw password.
func CredentialsValidate(username, password string) error {
	return translate(validate.Struct(credentials{Username: username, Password: password}))
}

// IndexValidate checks that a film index is usable as a list entry.
func IndexValidate(index int) error {
	if index < 0 {
		return &InputError{Field: "index", Constraint: "must not be negative"}
	}
	return nil
}

// UserValidate checks a stored user record: field constraints, duplicate-free
// lists and disjoint lists.
func UserValidate(u *User) error {
	if u == nil {
		return &InputError{Field: "user", Constraint: "record is empty"}
	}
	if err := translate(validate.Struct(u)); err != nil {
		return fmt.Errorf("user record '%s': %w", u.Username, err)
	}
	seen := make(map[int]ListKind, len(u.ToWatch)+len(u.Watched))
	for _, pair := range []struct {
		kind    ListKind
		indexes []int
	}{{ListToWatch, u.ToWatch}, {ListWatched, u.Watched}} {
		for _, idx := range pair.indexes {
			if prev, ok := seen[idx]; ok {
				constraint := fmt.Sprintf("%d listed in both %s and %s", idx, prev, pair.kind)
				if prev == pair.kind {
					constraint = fmt.Sprintf("%d listed twice in %s", idx, prev)
				}
				return fmt.Errorf("user record '%s': %w", u.Username, &InputError{Field: "index", Constraint: constraint})
			}
			seen[idx] = pair.kind
		}
	}
	return nil
}

// translate turns validator output into an InputError naming the first violated constraint.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InputError{Field: "input", Constraint: err.Error()}
	}
	fe := verrs[0]
	field := fieldName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return &InputError{Field: field, Constraint: "is required"}
	case "min", "max":
		switch field {
		case "username":
			return &InputError{Field: field, Constraint: fmt.Sprintf("length must be between %d and %d", UsernameMinLength, UsernameMaxLength)}
		case "password":
			if fe.Param() == "128" {
				return &InputError{Field: field, Constraint: "stored form is too long"}
			}
			return &InputError{Field: field, Constraint: fmt.Sprintf("length must be between %d and %d", PasswordMinLength, PasswordMaxLength)}
		default:
			return &InputError{Field: "index", Constraint: "must not be negative"}
		}
	default:
		return &InputError{Field: field, Constraint: fmt.Sprintf("failed '%s' check", fe.Tag())}
	}
}

func fieldName(structField string) string {
	switch structField {
	case "Username":
		return "username"
	case "Password":
		return "password"
	case "ToWatch":
		return "to_watch"
	case "Watched":
		return "watched"
	default:
		return structField
	}
}
