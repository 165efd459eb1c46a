package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type postField int

const (
	fieldPostTitle postField = iota
	fieldPostText
	fieldPostTheme
	numPostFields
)

type postSavedMsg struct {
	post   *domain.Post
	edited bool
	err    error
}

// postFormModel is the new/edit post modal.
type postFormModel struct {
	client    *client.Client
	editingID int64
	title     string
	text      string
	themes    []domain.Theme
	themeID   int64  // selected theme; 0 when none
	themeDesc string // description of themeID, kept when the list lacks it
	focus     postField
	statusMsg string
	submitted bool
	done      bool // set once the post was saved; the app then closes the modal
}

func newPostFormModel(c *client.Client, themes []domain.Theme) postFormModel {
	return postFormModel{client: c, themes: themes}
}

// editPostForm prefills the form with p.
func editPostForm(c *client.Client, themes []domain.Theme, p domain.Post) postFormModel {
	m := newPostFormModel(c, themes)
	m.editingID = p.ID
	m.title = p.Title
	m.text = p.Text
	if p.Theme != nil {
		m.themeID = p.Theme.ID
		m.themeDesc = p.Theme.Description
	}
	return m
}

func (m postFormModel) editing() bool {
	return m.editingID != 0
}

// setThemes swaps in a freshly loaded theme list. The selection is kept by
// ID, even when the new list does not contain it.
func (m postFormModel) setThemes(themes []domain.Theme) postFormModel {
	m.themes = themes
	if i := m.themeIndex(); i >= 0 {
		m.themeDesc = themes[i].Description
	}
	return m
}

// themeIndex returns the position of the selected theme in m.themes, or -1.
func (m postFormModel) themeIndex() int {
	if m.themeID == 0 {
		return -1
	}
	for i, t := range m.themes {
		if t.ID == m.themeID {
			return i
		}
	}
	return -1
}

func (m postFormModel) Update(msg tea.Msg) (postFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postSavedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = "Erro ao salvar a postagem: " + msg.err.Error()
			return m, nil
		}
		m.done = true
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m postFormModel) updateKeys(msg tea.KeyMsg) (postFormModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.statusMsg = ""

	switch key := msg.String(); key {
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numPostFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numPostFields) % numPostFields
	case "enter":
		switch m.focus {
		case fieldPostText:
			m.text = editRune(m.text, "\n")
		case fieldPostTheme:
			return m.submit()
		default:
			m.focus++
		}
	case "left", "right":
		if m.focus == fieldPostTheme {
			m.cycleTheme(key == "right")
		}
	default:
		switch m.focus {
		case fieldPostTitle:
			m.title = editKey(m.title, msg)
		case fieldPostText:
			m.text = editKey(m.text, msg)
		case fieldPostTheme:
			switch key {
			case "h":
				m.cycleTheme(false)
			case "l", " ":
				m.cycleTheme(true)
			}
		}
	}
	return m, nil
}

func (m *postFormModel) cycleTheme(forward bool) {
	n := len(m.themes)
	if n == 0 {
		return
	}
	i := m.themeIndex()
	switch {
	case i < 0 && forward:
		i = 0
	case i < 0:
		i = n - 1
	case forward:
		i = (i + 1) % n
	default:
		i = (i - 1 + n) % n
	}
	m.themeID = m.themes[i].ID
	m.themeDesc = m.themes[i].Description
}

// post builds the record the form currently describes.
func (m postFormModel) post() domain.Post {
	p := domain.Post{
		ID:    m.editingID,
		Title: strings.TrimSpace(m.title),
		Text:  strings.TrimSpace(m.text),
	}
	if m.themeID != 0 {
		p.Theme = &domain.Theme{ID: m.themeID, Description: m.themeDesc}
	}
	return p
}

func (m postFormModel) submit() (postFormModel, tea.Cmd) {
	p := m.post()
	if err := p.Validate(); err != nil {
		m.statusMsg = strings.TrimPrefix(err.Error(), domain.ErrInvalid.Error()+": ")
		return m, nil
	}

	m.submitted = true
	c := m.client
	edited := m.editing()
	return m, func() tea.Msg {
		var saved *domain.Post
		var err error
		if edited {
			saved, err = c.UpdatePost(context.Background(), p)
		} else {
			saved, err = c.CreatePost(context.Background(), p)
		}
		return postSavedMsg{post: saved, edited: edited, err: err}
	}
}

func (m postFormModel) View() string {
	var b strings.Builder

	heading := "Nova postagem"
	if m.editing() {
		heading = "Editar postagem"
	}
	b.WriteString(bannerTitleStyle.Render(heading) + "\n\n")

	b.WriteString(renderField("Título", m.title, "título da postagem", m.focus == fieldPostTitle, false) + "\n")
	b.WriteString(renderField("Texto", m.text, "texto da postagem", m.focus == fieldPostText, false) + "\n")

	theme := inputPlaceholderStyle.Render("selecione um tema")
	switch {
	case m.themeID != 0:
		theme = ThemeStyle(m.themeDesc).Render(m.themeDesc)
	case len(m.themes) == 0:
		theme = inputPlaceholderStyle.Render("nenhum tema cadastrado")
	}
	cursor := " "
	style := labelStyle
	if m.focus == fieldPostTheme {
		cursor = inputPromptStyle.Render(">")
		style = selectedStyle
	}
	fmt.Fprintf(&b, "%s %s %s  %s\n", cursor, style.Render("Tema:"), theme, dimStyle.Render("(h/l para trocar)"))

	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(dimStyle.Render("salvando..."))
	case m.statusMsg != "":
		b.WriteString(errorStyle.Render(m.statusMsg))
	default:
		b.WriteString(helpEntry("tab", "próximo") + "  " + helpEntry("ctrl+s", "salvar") + "  " + helpEntry("esc", "fechar"))
	}

	return modalStyle.Render(b.String())
}
