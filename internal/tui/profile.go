package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/internal/browser"
	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type profileLoadedMsg struct {
	user *domain.User
	err  error
}

type photoOpenedMsg struct {
	err error
}

// openURL is swapped out in tests.
var openURL = browser.Open

type profileModel struct {
	client  *client.Client
	session domain.Session
	user    *domain.User
	loading bool
	err     string
}

func newProfileModel(c *client.Client) profileModel {
	return profileModel{client: c}
}

// load fetches the full user record for s; the session only carries the
// identity, not the user's posts.
func (m profileModel) load(s domain.Session) (profileModel, tea.Cmd) {
	m.session = s
	m.loading = true
	c, id := m.client, s.ID
	return m, func() tea.Msg {
		u, err := c.GetUser(context.Background(), id)
		return profileLoadedMsg{user: u, err: err}
	}
}

// photo returns the best known photo URL.
func (m profileModel) photo() string {
	if m.user != nil && m.user.Photo != "" {
		return m.user.Photo
	}
	return m.session.Photo
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.err = ""

	case photoOpenedMsg:
		if msg.err != nil {
			m.err = "não foi possível abrir a foto: " + msg.err.Error()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "o":
			url := m.photo()
			if url == "" {
				return m, nil
			}
			return m, func() tea.Msg { return photoOpenedMsg{err: openURL(url)} }
		case "r":
			return m.load(m.session)
		}
	}
	return m, nil
}

func postCount(u *domain.User) int {
	if u == nil {
		return 0
	}
	return len(u.Posts)
}

func (m profileModel) View() string {
	name, email := m.session.Name, m.session.Email
	if m.user != nil {
		name, email = m.user.Name, m.user.Email
	}

	var b strings.Builder
	b.WriteString(" " + bannerTitleStyle.Render("Olá, "+name) + "\n\n")
	fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Usuário:"), normalStyle.Render(email))
	photo := m.photo()
	if photo == "" {
		photo = inputPlaceholderStyle.Render("sem foto")
	} else {
		photo = accentStyle.Render(photo)
	}
	fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Foto:"), photo)

	switch {
	case m.loading && m.user == nil:
		b.WriteString(" " + dimStyle.Render("carregando perfil...") + "\n")
	case m.user != nil:
		fmt.Fprintf(&b, " %s %s\n", labelStyle.Render("Postagens:"), normalStyle.Render(fmt.Sprintf("%d", postCount(m.user))))
		for _, p := range m.user.Posts {
			b.WriteString("   " + dimStyle.Render("· "+truncStr(oneLine(p.Title), 60)) + "\n")
		}
	}
	if m.err != "" {
		b.WriteString("\n " + errorStyle.Render("erro: "+m.err) + "\n")
	}
	return b.String()
}

func (m profileModel) helpKeys() string {
	return helpEntry("o", "abrir foto") + "  " + helpEntry("r", "recarregar")
}
