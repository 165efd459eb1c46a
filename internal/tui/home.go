package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// homeBanner renders the welcome block shown above the post list.
func homeBanner(width int) string {
	title := bannerTitleStyle.Render("Seja bem vindo!")
	sub := normalStyle.Render("O que voce gostaria de criar?")
	action := accentStyle.Render("[n]") + " " + selectedStyle.Render("Nova postagem")

	lines := []string{title, sub, "", action}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(center(l, lipgloss.Width(l), width) + "\n")
	}
	return b.String()
}
