package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type loginField int

const (
	fieldLoginEmail loginField = iota
	fieldLoginPassword
	numLoginFields
)

type loginDoneMsg struct {
	session *domain.Session
	err     error
}

// showRegisterMsg switches from login to the registration form.
type showRegisterMsg struct{}

type loginModel struct {
	client    *client.Client
	email     string
	password  string
	focus     loginField
	statusMsg string
	submitted bool
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = "Dados do usuário inconsistentes. Erro ao logar!"
			m.password = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitted {
			return m, nil
		}
		m.statusMsg = ""
		switch key := msg.String(); key {
		case "tab", "down", "shift+tab", "up":
			m.focus = (m.focus + 1) % numLoginFields
		case "enter":
			if m.focus == fieldLoginEmail {
				m.focus = fieldLoginPassword
				return m, nil
			}
			return m.submit()
		case "ctrl+r":
			return m, func() tea.Msg { return showRegisterMsg{} }
		default:
			if m.focus == fieldLoginEmail {
				m.email = editKey(m.email, msg)
			} else {
				m.password = editKey(m.password, msg)
			}
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	creds := domain.Credentials{Email: strings.TrimSpace(m.email), Password: m.password}
	if creds.Email == "" || creds.Password == "" {
		m.statusMsg = "Informe usuário e senha"
		return m, nil
	}
	m.submitted = true
	c := m.client
	return m, func() tea.Msg {
		s, err := c.Login(context.Background(), creds)
		return loginDoneMsg{session: s, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(" " + bannerTitleStyle.Render("Entrar") + "\n\n")
	b.WriteString(" " + renderField("Usuário", m.email, "email@exemplo.com", m.focus == fieldLoginEmail, false) + "\n")
	b.WriteString(" " + renderField("Senha", m.password, "senha", m.focus == fieldLoginPassword, true) + "\n\n")

	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("entrando..."))
	case m.statusMsg != "":
		b.WriteString(" " + errorStyle.Render(m.statusMsg))
	default:
		b.WriteString(" " + dimStyle.Render("Ainda não tem uma conta? ") + accentStyle.Render("ctrl+r") + dimStyle.Render(" para cadastrar"))
	}
	return b.String()
}
