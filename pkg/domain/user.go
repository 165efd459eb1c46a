package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PasswordMin is the shortest password the backend accepts.
const PasswordMin = 8

// User is a registered blog author ("usuario"). Email is the login name.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"nome"`
	Email    string `json:"usuario"`
	Password string `json:"senha,omitempty"`
	Photo    string `json:"foto,omitempty"`
	Posts    []Post `json:"postagem,omitempty"`
}

// Validate checks the fields required for registration and profile updates.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: nome is required", ErrInvalid)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: usuario must be an email address", ErrInvalid)
	}
	if utf8.RuneCountInString(u.Password) < PasswordMin {
		return fmt.Errorf("%w: senha must have at least %d characters", ErrInvalid, PasswordMin)
	}
	return nil
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"usuario"`
	Password string `json:"senha"`
}
