package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type themeSavedMsg struct {
	theme  *domain.Theme
	edited bool
	err    error
}

// themeFormModel creates a theme, or edits one when editingID is set.
type themeFormModel struct {
	client      *client.Client
	editingID   int64
	description string
	statusMsg   string
	submitted   bool
}

func newThemeFormModel(c *client.Client) themeFormModel {
	return themeFormModel{client: c}
}

func editThemeForm(c *client.Client, t domain.Theme) themeFormModel {
	return themeFormModel{client: c, editingID: t.ID, description: t.Description}
}

func (m themeFormModel) Update(msg tea.Msg) (themeFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case themeSavedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = "Erro ao salvar o tema: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitted {
			return m, nil
		}
		m.statusMsg = ""
		switch msg.String() {
		case "enter", "ctrl+s":
			return m.submit()
		default:
			m.description = editKey(m.description, msg)
		}
	}
	return m, nil
}

func (m themeFormModel) submit() (themeFormModel, tea.Cmd) {
	t := domain.Theme{ID: m.editingID, Description: strings.TrimSpace(m.description)}
	if err := t.Validate(); err != nil {
		m.statusMsg = "A descrição do tema é obrigatória"
		return m, nil
	}

	m.submitted = true
	c := m.client
	edited := m.editingID != 0
	return m, func() tea.Msg {
		var saved *domain.Theme
		var err error
		if edited {
			saved, err = c.UpdateTheme(context.Background(), t)
		} else {
			saved, err = c.CreateTheme(context.Background(), t)
		}
		return themeSavedMsg{theme: saved, edited: edited, err: err}
	}
}

func (m themeFormModel) View() string {
	var b strings.Builder

	heading := "Cadastrar tema"
	if m.editingID != 0 {
		heading = "Editar tema"
	}
	b.WriteString(" " + bannerTitleStyle.Render(heading) + "\n\n")
	b.WriteString(" " + renderField("Descrição", m.description, "descreva aqui seu tema", true, false) + "\n\n")

	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("salvando..."))
	case m.statusMsg != "":
		b.WriteString(" " + errorStyle.Render(m.statusMsg))
	}
	return b.String()
}
