package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blogpessoal/blogpessoal/internal/session"
	"github.com/blogpessoal/blogpessoal/pkg/client"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewHome
	viewPosts
	viewThemes
	viewThemeForm
	viewProfile
	viewConfirm
)

// App is the root Bubbletea model.
type App struct {
	client    *client.Client
	sessions  *session.Store
	view      view
	prevView  view // where the delete confirmation returns to
	login     loginModel
	register  registerModel
	posts     postListModel
	themes    themeListModel
	themeForm themeFormModel
	profile   profileModel
	confirm   confirmModel
	postForm  postFormModel
	modalOpen bool
	helpOpen  bool
	status    string
	statusErr bool
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates the TUI application. Requests made through c read the token
// from sessions, which the app fills on login and clears on logout.
func NewApp(c *client.Client, sessions *session.Store) App {
	a := App{
		client:    c,
		sessions:  sessions,
		login:     newLoginModel(c),
		register:  newRegisterModel(c),
		posts:     newPostListModel(c),
		themes:    newThemeListModel(c),
		themeForm: newThemeFormModel(c),
		profile:   newProfileModel(c),
	}
	if sessions.Authenticated() {
		a.view = viewHome
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.sessions.Authenticated() {
		return tea.Batch(shimmerTickCmd(), a.posts.Init(), a.themes.Init())
	}
	return shimmerTickCmd()
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

// logout drops the session and every model holding data fetched with it.
func (a App) logout(status string, isErr bool) App {
	a.sessions.Clear()
	a.view = viewLogin
	a.modalOpen = false
	a.helpOpen = false
	a.login = newLoginModel(a.client)
	a.posts = newPostListModel(a.client)
	a.posts.width, a.posts.height = a.width, a.bodyHeight()
	a.themes = newThemeListModel(a.client)
	a.profile = newProfileModel(a.client)
	a.setStatus(status, isErr)
	return a
}

// expired reports whether err means the backend no longer accepts the token,
// in which case the app has already been logged out.
func (a *App) expired(err error) bool {
	if err == nil || !client.IsUnauthorized(err) {
		return false
	}
	*a = a.logout("O token expirou, favor logar novamente", true)
	return true
}

func (a App) bodyHeight() int {
	// header(2) + nav(1) + status(1) + help(1) + footer(1)
	return a.height - 6
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.posts, _ = a.posts.Update(tea.WindowSizeMsg{Width: msg.Width, Height: a.bodyHeight()})
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	// -- auth --

	case loginDoneMsg:
		a.login, _ = a.login.Update(msg)
		if msg.err != nil || msg.session == nil {
			return a, nil
		}
		a.sessions.Set(*msg.session)
		a.view = viewHome
		a.setStatus("Usuário logado com sucesso!", false)
		return a, tea.Batch(a.posts.load(), a.themes.load())

	case showRegisterMsg:
		a.register = newRegisterModel(a.client)
		a.view = viewRegister
		a.status = ""
		return a, nil

	case registeredMsg:
		a.register, _ = a.register.Update(msg)
		if msg.err != nil {
			return a, nil
		}
		a.login = newLoginModel(a.client)
		if msg.user != nil {
			a.login.email = msg.user.Email
			a.login.focus = fieldLoginPassword
		}
		a.view = viewLogin
		a.setStatus("Usuário cadastrado com sucesso!", false)
		return a, nil

	// -- data, routed to the owning model whatever the current view --

	case postsLoadedMsg:
		if a.expired(msg.err) {
			return a, nil
		}
		a.posts, _ = a.posts.Update(msg)
		return a, nil

	case themesLoadedMsg:
		if a.expired(msg.err) {
			return a, nil
		}
		a.themes, _ = a.themes.Update(msg)
		if msg.err == nil && a.modalOpen {
			a.postForm = a.postForm.setThemes(msg.themes)
		}
		return a, nil

	case profileLoadedMsg:
		if a.expired(msg.err) {
			return a, nil
		}
		a.profile, _ = a.profile.Update(msg)
		return a, nil

	case photoOpenedMsg:
		a.profile, _ = a.profile.Update(msg)
		return a, nil

	case postCopiedMsg:
		if msg.err != nil {
			a.setStatus("não foi possível copiar: "+msg.err.Error(), true)
		} else {
			a.setStatus("texto copiado", false)
		}
		return a, nil

	case postSavedMsg:
		if a.expired(msg.err) {
			return a, nil
		}
		a.postForm, _ = a.postForm.Update(msg)
		if !a.postForm.done {
			return a, nil
		}
		a.modalOpen = false
		if msg.edited {
			a.setStatus("Postagem atualizada com sucesso", false)
		} else {
			a.setStatus("Postagem cadastrada com sucesso", false)
		}
		return a, a.posts.load()

	case themeSavedMsg:
		if a.expired(msg.err) {
			return a, nil
		}
		a.themeForm, _ = a.themeForm.Update(msg)
		if msg.err != nil {
			return a, nil
		}
		if msg.edited {
			a.setStatus("Tema atualizado com sucesso", false)
		} else {
			a.setStatus("Tema cadastrado com sucesso", false)
		}
		a.themeForm = newThemeFormModel(a.client)
		a.view = viewThemes
		return a, a.themes.load()

	case deletedMsg:
		if a.expired(msg.err) {
			return a, nil
		}
		a.view = a.prevView
		if msg.err != nil {
			a.setStatus("Erro ao apagar "+msg.kind.withArticle()+": "+msg.err.Error(), true)
			return a, nil
		}
		if msg.kind == deleteTheme {
			a.setStatus("Tema apagado com sucesso", false)
			// posts of the theme go with it
			return a, tea.Batch(a.themes.load(), a.posts.load())
		}
		a.setStatus("Postagem apagada com sucesso", false)
		return a, a.posts.load()

	// -- navigation requests from child models --

	case editPostMsg:
		a.postForm = editPostForm(a.client, a.themes.themes, msg.post)
		a.modalOpen = true
		return a, a.themes.load()

	case editThemeMsg:
		a.themeForm = editThemeForm(a.client, msg.theme)
		a.view = viewThemeForm
		return a, nil

	case confirmDeleteMsg:
		a.confirm = newConfirmModel(a.client, msg)
		a.prevView = a.view
		a.view = viewConfirm
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Logged out: only the login and register forms take input.
	if !a.sessions.Authenticated() {
		var cmd tea.Cmd
		switch a.view {
		case viewRegister:
			if key == "esc" {
				a.view = viewLogin
				return a, nil
			}
			a.register, cmd = a.register.Update(msg)
		default:
			a.view = viewLogin
			a.login, cmd = a.login.Update(msg)
		}
		return a, cmd
	}

	if a.helpOpen {
		switch key {
		case "h", "esc":
			a.helpOpen = false
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.modalOpen {
		if key == "esc" {
			a.modalOpen = false
			return a, nil
		}
		var cmd tea.Cmd
		a.postForm, cmd = a.postForm.Update(msg)
		return a, cmd
	}

	if a.view == viewConfirm {
		var cmd tea.Cmd
		a.confirm, cmd = a.confirm.Update(msg)
		if a.confirm.cancelled {
			a.view = a.prevView
		}
		return a, cmd
	}

	a.status = ""

	if !a.isEditing() {
		switch key {
		case "h":
			a.helpOpen = true
			return a, nil
		case "q":
			return a, tea.Quit
		case "x":
			a = a.logout("Usuário deslogado com sucesso", false)
			return a, nil
		case "0":
			if a.view != viewHome {
				a.view = viewHome
				return a, a.posts.load()
			}
			return a, nil
		case "1":
			if a.view != viewPosts {
				a.view = viewPosts
				return a, a.posts.load()
			}
			return a, nil
		case "2":
			if a.view != viewThemes {
				a.view = viewThemes
				return a, a.themes.load()
			}
			return a, nil
		case "3":
			a.themeForm = newThemeFormModel(a.client)
			a.view = viewThemeForm
			return a, nil
		case "4":
			var cmd tea.Cmd
			a.profile, cmd = a.profile.load(a.sessions.Get())
			a.view = viewProfile
			return a, cmd
		case "n":
			a.postForm = newPostFormModel(a.client, a.themes.themes)
			a.modalOpen = true
			return a, a.themes.load()
		}
	} else if key == "esc" && a.view == viewThemeForm {
		a.view = viewThemes
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case viewHome, viewPosts:
		a.posts, cmd = a.posts.Update(msg)
	case viewThemes:
		a.themes, cmd = a.themes.Update(msg)
	case viewThemeForm:
		a.themeForm, cmd = a.themeForm.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	if a.modalOpen {
		return true
	}
	switch a.view {
	case viewLogin, viewRegister, viewThemeForm:
		return true
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := center(logo, lipgloss.Width(logo), a.width) + "\n"

	authed := a.sessions.Authenticated()

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "próximo") + "  " + helpEntry("enter", "entrar") + "  " + helpEntry("ctrl+r", "cadastrar") + "  " + helpEntry("ctrl+c", "sair")
	case viewRegister:
		body = a.register.View()
		help = " " + helpEntry("tab", "próximo") + "  " + helpEntry("ctrl+s", "cadastrar") + "  " + helpEntry("esc", "voltar")
	case viewHome:
		body = homeBanner(a.width) + "\n" + a.posts.View()
		help = " " + helpEntry("0-4", "menu") + "  " + a.posts.helpKeys() + "  " + helpEntry("h", "ajuda") + "  " + helpEntry("q", "sair")
	case viewPosts:
		body = a.posts.View()
		help = " " + helpEntry("0-4", "menu") + "  " + a.posts.helpKeys() + "  " + helpEntry("h", "ajuda") + "  " + helpEntry("q", "sair")
	case viewThemes:
		body = a.themes.View()
		help = " " + helpEntry("0-4", "menu") + "  " + a.themes.helpKeys() + "  " + helpEntry("h", "ajuda") + "  " + helpEntry("q", "sair")
	case viewThemeForm:
		body = a.themeForm.View()
		help = " " + helpEntry("enter", "salvar") + "  " + helpEntry("esc", "cancelar")
	case viewProfile:
		body = a.profile.View()
		help = " " + helpEntry("0-4", "menu") + "  " + a.profile.helpKeys() + "  " + helpEntry("h", "ajuda") + "  " + helpEntry("q", "sair")
	case viewConfirm:
		body = a.confirm.View()
		help = " " + helpEntry("s", "sim") + "  " + helpEntry("n", "não")
	}

	if a.modalOpen {
		body = lipgloss.Place(a.width, max(a.bodyHeight(), 1), lipgloss.Center, lipgloss.Center, a.postForm.View())
		help = ""
	}
	if a.helpOpen {
		body = helpView()
		help = " " + helpEntry("esc", "fechar")
	}

	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = " " + errorStyle.Render(a.status)
		} else {
			status = " " + successStyle.Render(a.status)
		}
	}

	if !authed {
		return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, status, help)
	}
	nav := renderNavbar(a.view, a.width)
	footer := renderFooter(currentYear(), a.width)
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s", header, nav, body, status, help, footer)
}
