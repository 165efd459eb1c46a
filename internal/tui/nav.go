package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type navItem struct {
	key  string
	name string
	v    view
}

var navItems = []navItem{
	{"1", "Postagens", viewPosts},
	{"2", "Temas", viewThemes},
	{"3", "Cadastrar tema", viewThemeForm},
	{"4", "Perfil", viewProfile},
	{"x", "Sair", viewLogin},
}

// renderNavbar lays the navigation items out in equal columns.
func renderNavbar(current view, width int) string {
	if width <= 0 {
		width = 80
	}
	colWidth := width / len(navItems)
	var b strings.Builder
	for _, it := range navItems {
		var label string
		if it.v == current {
			label = accentStyle.Render(it.key) + " " + selectedStyle.Underline(true).Render(it.name)
		} else {
			label = metaStyle.Render(it.key) + " " + dimStyle.Render(it.name)
		}
		w := lipgloss.Width(label)
		left := (colWidth - w) / 2
		if left < 0 {
			left = 0
		}
		right := colWidth - w - left
		if right < 0 {
			right = 0
		}
		b.WriteString(strings.Repeat(" ", left) + label + strings.Repeat(" ", right))
	}
	return b.String()
}

// renderFooter renders the copyright line for the given year.
func renderFooter(year, width int) string {
	s := "Blog pessoal | Copyright: " + strconv.Itoa(year)
	return center(dimStyle.Render(s), len(s), width)
}

func currentYear() int {
	return time.Now().Year()
}
