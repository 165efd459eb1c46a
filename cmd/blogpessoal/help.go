package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("B L O G   P E S S O A L")

	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Postagens e temas direto do terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"blogpessoal", "Abrir o blog (TUI interativa)"},
		{"blogpessoal login <usuario>", "Conferir credenciais (senha via stdin)"},
		{"blogpessoal --version", "Mostrar a versão"},
		{"blogpessoal help", "Esta ajuda"},
	}
	env := []struct{ key, desc string }{
		{"BLOG_API_URL", "URL do backend (padrão http://localhost:8080)"},
		{"BLOG_TIMEOUT_SECONDS", "Tempo limite por requisição, 0 = sem limite"},
		{"BLOG_LOG_LEVEL", "debug, info, warn, error"},
		{"BLOG_LOG_FILE", "Arquivo de log, - para stdout"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Comandos:\n", title, sub)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-28s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprint(w, "\n  Ambiente (também lido de .env):\n")
	for _, e := range env {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-28s", e.key)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}
