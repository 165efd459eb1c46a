package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/pkg/client"
)

type deleteKind int

const (
	deletePost deleteKind = iota
	deleteTheme
)

func (k deleteKind) String() string {
	if k == deleteTheme {
		return "tema"
	}
	return "postagem"
}

// withArticle returns the kind with its definite article, e.g. "a postagem".
func (k deleteKind) withArticle() string {
	if k == deleteTheme {
		return "o tema"
	}
	return "a postagem"
}

type deletedMsg struct {
	kind deleteKind
	err  error
}

// confirmModel asks before deleting a post or theme.
type confirmModel struct {
	client    *client.Client
	kind      deleteKind
	id        int64
	label     string
	submitted bool
	cancelled bool
}

func newConfirmModel(c *client.Client, msg confirmDeleteMsg) confirmModel {
	return confirmModel{client: c, kind: msg.kind, id: msg.id, label: msg.label}
}

func (m confirmModel) Update(msg tea.Msg) (confirmModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.submitted {
		return m, nil
	}
	switch key.String() {
	case "y", "s", "enter":
		m.submitted = true
		c, kind, id := m.client, m.kind, m.id
		return m, func() tea.Msg {
			var err error
			if kind == deleteTheme {
				err = c.DeleteTheme(context.Background(), id)
			} else {
				err = c.DeletePost(context.Background(), id)
			}
			return deletedMsg{kind: kind, err: err}
		}
	case "n", "esc":
		m.cancelled = true
	}
	return m, nil
}

func (m confirmModel) View() string {
	var b strings.Builder
	b.WriteString(" " + bannerTitleStyle.Render("Deletar "+m.kind.String()) + "\n\n")
	b.WriteString(" " + normalStyle.Render("Você tem certeza de que deseja apagar "+m.kind.withArticle()+" a seguir?") + "\n\n")
	b.WriteString(" " + selectedStyle.Render(truncStr(oneLine(m.label), 70)) + "\n\n")
	if m.submitted {
		b.WriteString(" " + dimStyle.Render("apagando..."))
	} else {
		b.WriteString(" " + dangerStyle.Render("[s] Sim") + "   " + accentStyle.Render("[n] Não"))
	}
	return b.String()
}
