package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// -- messages --

type postsLoadedMsg struct {
	posts []domain.Post
	err   error
}

type postCopiedMsg struct {
	err error
}

// editPostMsg opens the post form for an existing post.
type editPostMsg struct {
	post domain.Post
}

// confirmDeleteMsg opens the delete confirmation for a post or theme.
type confirmDeleteMsg struct {
	kind  deleteKind
	id    int64
	label string
}

// -- model --

type postListModel struct {
	client  *client.Client
	posts   []domain.Post
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newPostListModel(c *client.Client) postListModel {
	return postListModel{client: c}
}

func (m postListModel) Init() tea.Cmd {
	return m.load()
}

func (m postListModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		posts, err := c.ListPosts(context.Background())
		return postsLoadedMsg{posts: posts, err: err}
	}
}

func (m postListModel) selected() (domain.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return domain.Post{}, false
	}
	return m.posts[m.cursor], true
}

func (m postListModel) Update(msg tea.Msg) (postListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case postsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.posts = msg.posts
		m.err = ""
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m postListModel) handleKey(msg tea.KeyMsg) (postListModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.posts)-1 {
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
		if p, ok := m.selected(); ok {
			return m, func() tea.Msg { return editPostMsg{post: p} }
		}
	case "d":
		if p, ok := m.selected(); ok {
			return m, func() tea.Msg {
				return confirmDeleteMsg{kind: deletePost, id: p.ID, label: p.Title}
			}
		}
	case "c":
		if p, ok := m.selected(); ok {
			text := p.Text
			return m, func() tea.Msg {
				return postCopiedMsg{err: clipboard.WriteAll(text)}
			}
		}
	}
	return m, nil
}

func (m postListModel) View() string {
	if m.loading && len(m.posts) == 0 {
		return " " + dimStyle.Render("carregando postagens...")
	}
	if m.err != "" {
		return " " + errorStyle.Render("erro: "+m.err)
	}
	if len(m.posts) == 0 {
		return " " + dimStyle.Render("nenhuma postagem ainda. aperte n para criar a primeira")
	}

	width := m.width - 2
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	for i, p := range m.posts {
		b.WriteString(renderPostCard(p, i == m.cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPostCard renders one post the way the web card lays it out: author
// header, title, text, theme and date, then the edit/delete actions.
func renderPostCard(p domain.Post, active bool, width int) string {
	border := lipgloss.Color("#334155")
	if active {
		border = lipgloss.Color("#1d4ed8")
	}

	author := p.AuthorName()
	if author == "" {
		author = "anônimo"
	}

	inner := width - 4
	var b strings.Builder
	b.WriteString(authorStyle.Render(strings.ToUpper(truncStr(author, inner))) + "\n")
	b.WriteString(postTitleStyle.Render(strings.ToUpper(truncStr(oneLine(p.Title), inner))) + "\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(normalStyle.Render(p.Text)) + "\n")
	b.WriteString(labelStyle.Render("Tema:") + " " + ThemeStyle(p.ThemeDescription()).Render(p.ThemeDescription()) + "\n")
	b.WriteString(labelStyle.Render("Data:") + " " + dimStyle.Render(formatDate(p.Date)))
	if active {
		b.WriteString("\n" + accentStyle.Render("[e] Editar") + "  " + dangerStyle.Render("[d] Deletar") + "  " + dimStyle.Render("[c] copiar"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width-2).
		Padding(0, 1).
		Render(b.String())
}

func (m postListModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "nova") + "  " + helpEntry("e", "editar") + "  " +
		helpEntry("d", "deletar") + "  " + helpEntry("c", "copiar") + "  " + helpEntry("r", "recarregar")
}
