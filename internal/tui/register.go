package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type registerField int

const (
	fieldRegName registerField = iota
	fieldRegEmail
	fieldRegPhoto
	fieldRegPassword
	fieldRegConfirm
	numRegisterFields
)

type registeredMsg struct {
	user *domain.User
	err  error
}

type registerModel struct {
	client    *client.Client
	fields    [numRegisterFields]string
	focus     registerField
	statusMsg string
	submitted bool
}

func newRegisterModel(c *client.Client) registerModel {
	return registerModel{client: c}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = "Erro ao cadastrar o usuário: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitted {
			return m, nil
		}
		m.statusMsg = ""
		switch key := msg.String(); key {
		case "tab", "down":
			m.focus = (m.focus + 1) % numRegisterFields
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + numRegisterFields) % numRegisterFields
		case "enter":
			if m.focus < fieldRegConfirm {
				m.focus++
				return m, nil
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		default:
			f := &m.fields[m.focus]
			*f = editKey(*f, msg)
		}
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	u := domain.User{
		Name:     strings.TrimSpace(m.fields[fieldRegName]),
		Email:    strings.TrimSpace(m.fields[fieldRegEmail]),
		Photo:    strings.TrimSpace(m.fields[fieldRegPhoto]),
		Password: m.fields[fieldRegPassword],
	}
	if m.fields[fieldRegPassword] != m.fields[fieldRegConfirm] {
		m.statusMsg = "As senhas não conferem"
		return m, nil
	}
	if err := u.Validate(); err != nil {
		m.statusMsg = strings.TrimPrefix(err.Error(), domain.ErrInvalid.Error()+": ")
		return m, nil
	}

	m.submitted = true
	c := m.client
	return m, func() tea.Msg {
		created, err := c.Register(context.Background(), u)
		return registeredMsg{user: created, err: err}
	}
}

func (m registerModel) View() string {
	labels := [numRegisterFields]string{"Nome", "Usuário", "Foto", "Senha", "Confirmar senha"}
	placeholders := [numRegisterFields]string{"seu nome", "email@exemplo.com", "url da foto (opcional)", "mínimo 8 caracteres", "repita a senha"}

	var b strings.Builder
	b.WriteString(" " + bannerTitleStyle.Render("Cadastrar") + "\n\n")
	for i := registerField(0); i < numRegisterFields; i++ {
		masked := i == fieldRegPassword || i == fieldRegConfirm
		b.WriteString(" " + renderField(labels[i], m.fields[i], placeholders[i], i == m.focus, masked) + "\n")
	}
	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("cadastrando..."))
	case m.statusMsg != "":
		b.WriteString(" " + errorStyle.Render(m.statusMsg))
	}
	return b.String()
}
