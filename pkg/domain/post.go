package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Post is a blog entry ("postagem") as exchanged with the backend.
type Post struct {
	ID     int64     `json:"id,omitempty"`
	Title  string    `json:"titulo"`
	Text   string    `json:"texto"`
	Date   time.Time `json:"data"`
	Theme  *Theme    `json:"tema,omitempty"`
	Author *User     `json:"usuario,omitempty"`
}

// Post field bounds enforced by the backend.
const (
	PostTitleMin = 5
	PostTitleMax = 100
	PostTextMin  = 10
	PostTextMax  = 1000
)

// Validate checks the post the way the backend does before accepting it.
func (p Post) Validate() error {
	title := strings.TrimSpace(p.Title)
	if n := utf8.RuneCountInString(title); n < PostTitleMin || n > PostTitleMax {
		return fmt.Errorf("%w: titulo must have between %d and %d characters", ErrInvalid, PostTitleMin, PostTitleMax)
	}
	text := strings.TrimSpace(p.Text)
	if n := utf8.RuneCountInString(text); n < PostTextMin || n > PostTextMax {
		return fmt.Errorf("%w: texto must have between %d and %d characters", ErrInvalid, PostTextMin, PostTextMax)
	}
	if p.Theme == nil || p.Theme.ID == 0 {
		return fmt.Errorf("%w: tema is required", ErrInvalid)
	}
	return nil
}

// ThemeDescription returns the theme label or "" when the post has none.
func (p Post) ThemeDescription() string {
	if p.Theme == nil {
		return ""
	}
	return p.Theme.Description
}

// AuthorName returns the author's display name or "" when unknown.
func (p Post) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Name
}
