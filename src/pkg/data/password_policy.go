package data

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPolicy decides how passwords are stored and compared.
type PasswordPolicy interface {
	Name() string
	Seal(raw string) (string, error)
	Match(stored, raw string) bool
}

// NewPasswordPolicy returns the policy configured by name.
func NewPasswordPolicy(name string) (PasswordPolicy, error) {
	switch name {
	case "", "plain":
		return PlainPolicy{}, nil
	case "bcrypt":
		return BcryptPolicy{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password policy: %s", name)
	}
}

// PlainPolicy stores passwords as given and compares them exactly.
type PlainPolicy struct{}

func (PlainPolicy) Name() string { return "plain" }

func (PlainPolicy) Seal(raw string) (string, error) { return raw, nil }

func (PlainPolicy) Match(stored, raw string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) == 1
}

// BcryptPolicy stores bcrypt hashes.
type BcryptPolicy struct {
	Cost int
}

func (BcryptPolicy) Name() string { return "bcrypt" }

func (p BcryptPolicy) Seal(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), p.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPolicy) Match(stored, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}
