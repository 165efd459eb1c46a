package domain

import (
	"fmt"
	"strings"
)

// Theme groups posts under a description ("tema").
type Theme struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"descricao"`
	Posts       []Post `json:"postagem,omitempty"`
}

// Validate reports whether the theme can be stored.
func (t Theme) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: descricao is required", ErrInvalid)
	}
	return nil
}
