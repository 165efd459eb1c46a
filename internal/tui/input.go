package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// namedKeys are bubbletea key names that never insert text.
var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "backspace": true, "delete": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true, "insert": true,
}

// isNamedKey reports whether key is a key name such as "enter", "ctrl+s" or "f1"
// rather than typed text.
func isNamedKey(key string) bool {
	if namedKeys[key] {
		return true
	}
	for _, mod := range []string{"ctrl+", "alt+", "shift+"} {
		if strings.HasPrefix(key, mod) && len(key) > len(mod) {
			return true
		}
	}
	if len(key) >= 2 && key[0] == 'f' {
		if _, err := strconv.Atoi(key[1:]); err == nil {
			return true
		}
	}
	return false
}

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware), typed characters and pasted text.
// Returns the text unchanged for named keys (enter, esc, ctrl+c, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	if key == "backspace" {
		return dropLastRune(text)
	}
	if utf8.RuneCountInString(key) != 1 && isNamedKey(key) {
		return text
	}
	return appendClamped(text, key)
}

// editKey applies msg to text. Rune input, including a bracketed paste, is
// inserted as typed; its String form is not a key name.
func editKey(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return appendClamped(text, string(msg.Runes))
	case tea.KeySpace:
		return appendClamped(text, " ")
	case tea.KeyBackspace:
		return dropLastRune(text)
	}
	return text
}

func dropLastRune(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	return string(runes[:len(runes)-1])
}

func appendClamped(text, add string) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 || add == "" {
		return text
	}
	if utf8.RuneCountInString(add) > room {
		add = string([]rune(add)[:room])
	}
	return text + add
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders one labeled form input. Masked fields show bullets.
func renderField(label, value, placeholder string, focused, masked bool) string {
	cursor := " "
	style := labelStyle
	if focused {
		cursor = inputPromptStyle.Render(">")
		style = selectedStyle
	}
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	switch {
	case shown == "" && !focused:
		shown = inputPlaceholderStyle.Render(placeholder)
	case focused:
		shown += accentStyle.Render("█")
	}
	return cursor + " " + style.Render(label+":") + " " + shown
}
