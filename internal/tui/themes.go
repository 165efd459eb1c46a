package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type themesLoadedMsg struct {
	themes []domain.Theme
	err    error
}

// editThemeMsg opens the theme form for an existing theme.
type editThemeMsg struct {
	theme domain.Theme
}

type themeListModel struct {
	client  *client.Client
	themes  []domain.Theme
	cursor  int
	loading bool
	err     string
}

func newThemeListModel(c *client.Client) themeListModel {
	return themeListModel{client: c}
}

func (m themeListModel) Init() tea.Cmd {
	return m.load()
}

func (m themeListModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		themes, err := c.ListThemes(context.Background())
		return themesLoadedMsg{themes: themes, err: err}
	}
}

func (m themeListModel) Update(msg tea.Msg) (themeListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case themesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.themes = msg.themes
		m.err = ""
		if m.cursor >= len(m.themes) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.themes)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		case "e":
			if m.cursor < len(m.themes) {
				t := m.themes[m.cursor]
				return m, func() tea.Msg { return editThemeMsg{theme: t} }
			}
		case "d":
			if m.cursor < len(m.themes) {
				t := m.themes[m.cursor]
				return m, func() tea.Msg {
					return confirmDeleteMsg{kind: deleteTheme, id: t.ID, label: t.Description}
				}
			}
		}
	}
	return m, nil
}

func (m themeListModel) View() string {
	if m.loading && len(m.themes) == 0 {
		return " " + dimStyle.Render("carregando temas...")
	}
	if m.err != "" {
		return " " + errorStyle.Render("erro: "+m.err)
	}
	if len(m.themes) == 0 {
		return " " + dimStyle.Render("nenhum tema cadastrado. aperte 3 para cadastrar")
	}

	var b strings.Builder
	for i, t := range m.themes {
		cursor := " "
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
		}
		count := metaStyle.Render(fmt.Sprintf("%d postagens", len(t.Posts)))
		fmt.Fprintf(&b, " %s %s  %s\n", cursor, ThemeStyle(t.Description).Render(fmt.Sprintf("%-30s", truncStr(t.Description, 30))), count)
	}
	return b.String()
}

func (m themeListModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("e", "editar") + "  " + helpEntry("d", "deletar") + "  " + helpEntry("r", "recarregar")
}
