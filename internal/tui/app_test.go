package tui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/blogpessoal/blogpessoal/internal/fakeapi"
	"github.com/blogpessoal/blogpessoal/internal/session"
	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a App, keys ...string) (App, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = a.Update(keyMsg(k))
		a = m.(App)
	}
	return a, cmd
}

func typeText(a App, text string) App {
	for _, r := range text {
		m, _ := a.Update(keyMsg(string(r)))
		a = m.(App)
	}
	return a
}

func send(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

// drain runs cmd and feeds every resulting message back into the app until
// no commands are left.
func drain(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("drain: too many commands")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case nil:
		default:
			var next tea.Cmd
			a, next = send(a, msg)
			queue = append(queue, next)
		}
	}
	return a
}

func newTestApp(authed bool) App {
	store := session.New()
	if authed {
		store.Set(domain.Session{ID: 1, Name: "Maria", Email: "maria@blog.com", Token: "Bearer tok"})
	}
	a := NewApp(nil, store)
	a.width = 100
	a.height = 40
	return a
}

func TestAppStartsAtLoginWithoutSession(t *testing.T) {
	a := newTestApp(false)
	if a.view != viewLogin {
		t.Fatalf("view = %d, want viewLogin", a.view)
	}
	if strings.Contains(a.View(), "Copyright") {
		t.Error("footer rendered without a session")
	}
	if strings.Contains(a.View(), "Cadastrar tema") {
		t.Error("navbar rendered without a session")
	}
}

func TestAppStartsAtHomeWithSession(t *testing.T) {
	a := newTestApp(true)
	if a.view != viewHome {
		t.Fatalf("view = %d, want viewHome", a.view)
	}
	v := a.View()
	for _, want := range []string{"Seja bem vindo!", "Perfil", "Blog pessoal | Copyright:"} {
		if !strings.Contains(v, want) {
			t.Errorf("home view missing %q", want)
		}
	}
}

func TestAppNavigationKeys(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"1", viewPosts},
		{"2", viewThemes},
		{"3", viewThemeForm},
		{"4", viewProfile},
		{"0", viewHome},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a := newTestApp(true)
			if tc.key == "0" {
				a.view = viewThemes
			}
			a, _ = press(a, tc.key)
			if a.view != tc.wantView {
				t.Errorf("after key %q: got view %d, want %d", tc.key, a.view, tc.wantView)
			}
		})
	}
}

func TestAppNavigationGatedWithoutSession(t *testing.T) {
	a := newTestApp(false)
	a, _ = press(a, "2")
	if a.view != viewLogin {
		t.Errorf("got view %d, want viewLogin", a.view)
	}
	if a.login.email != "2" {
		t.Errorf("login email = %q, want key typed into the form", a.login.email)
	}
}

func TestAppLogout(t *testing.T) {
	a := newTestApp(true)
	a.posts.posts = []domain.Post{{ID: 1, Title: "antiga"}}
	a, _ = press(a, "x")
	if a.sessions.Authenticated() {
		t.Fatal("session still authenticated after logout")
	}
	if a.sessions.Get().Token != "" {
		t.Errorf("token = %q, want empty", a.sessions.Get().Token)
	}
	if a.view != viewLogin {
		t.Errorf("got view %d, want viewLogin", a.view)
	}
	if a.status != "Usuário deslogado com sucesso" {
		t.Errorf("status = %q", a.status)
	}
	if len(a.posts.posts) != 0 {
		t.Errorf("posts kept after logout: %d", len(a.posts.posts))
	}
}

func TestAppQuitOnQ(t *testing.T) {
	a := newTestApp(true)
	_, cmd := press(a, "q")
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppQTypedIntoThemeForm(t *testing.T) {
	a := newTestApp(true)
	a, _ = press(a, "3", "q")
	if a.themeForm.description != "q" {
		t.Errorf("description = %q, want %q", a.themeForm.description, "q")
	}
	a, _ = press(a, "esc")
	if a.view != viewThemes {
		t.Errorf("esc from theme form: got view %d, want viewThemes", a.view)
	}
}

func TestAppPostModalOpenAndClose(t *testing.T) {
	a := newTestApp(true)
	a, _ = press(a, "n")
	if !a.modalOpen {
		t.Fatal("modal not open after 'n'")
	}
	if !a.isEditing() {
		t.Error("isEditing() = false with modal open")
	}
	a, _ = press(a, "x")
	if !a.sessions.Authenticated() {
		t.Fatal("'x' inside the modal logged out")
	}
	if a.postForm.title != "x" {
		t.Errorf("title = %q, want %q", a.postForm.title, "x")
	}
	a, _ = press(a, "esc")
	if a.modalOpen {
		t.Error("modal still open after esc")
	}
}

func TestAppLoginDone(t *testing.T) {
	a := newTestApp(false)
	s := &domain.Session{ID: 3, Name: "Ana", Token: "Bearer abc"}
	a, cmd := send(a, loginDoneMsg{session: s})
	if cmd == nil {
		t.Error("expected initial loads after login")
	}
	if got := a.sessions.Get(); got.Token != "Bearer abc" || got.Name != "Ana" {
		t.Errorf("session = %+v", got)
	}
	if a.view != viewHome {
		t.Errorf("got view %d, want viewHome", a.view)
	}
}

func TestAppLoginFailedKeepsSessionEmpty(t *testing.T) {
	a := newTestApp(false)
	a, _ = send(a, loginDoneMsg{err: &client.HTTPError{StatusCode: http.StatusUnauthorized}})
	if a.sessions.Authenticated() {
		t.Error("failed login stored a session")
	}
	if a.login.statusMsg == "" {
		t.Error("failed login shows no message")
	}
}

func TestAppExpiredTokenLogsOut(t *testing.T) {
	a := newTestApp(true)
	a.view = viewThemes
	a, _ = send(a, postsLoadedMsg{err: &client.HTTPError{StatusCode: http.StatusUnauthorized}})
	if a.sessions.Authenticated() {
		t.Fatal("session kept after 401")
	}
	if a.view != viewLogin {
		t.Errorf("got view %d, want viewLogin", a.view)
	}
	if a.status != "O token expirou, favor logar novamente" {
		t.Errorf("status = %q", a.status)
	}
}

func TestAppRoutesDataToOwnerInAnyView(t *testing.T) {
	a := newTestApp(true)
	a.view = viewProfile
	a, _ = send(a, postsLoadedMsg{posts: []domain.Post{{ID: 7, Title: "oculta"}}})
	if len(a.posts.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(a.posts.posts))
	}
	a, _ = send(a, themesLoadedMsg{themes: []domain.Theme{{ID: 1, Description: "Go"}}})
	if len(a.themes.themes) != 1 {
		t.Fatalf("themes = %d, want 1", len(a.themes.themes))
	}
}

func TestAppLastLoadWins(t *testing.T) {
	a := newTestApp(true)
	a, _ = send(a, postsLoadedMsg{posts: []domain.Post{{ID: 1}, {ID: 2}}})
	a, _ = send(a, postsLoadedMsg{posts: []domain.Post{{ID: 3}}})
	if len(a.posts.posts) != 1 || a.posts.posts[0].ID != 3 {
		t.Errorf("posts = %+v, want only the last loaded list", a.posts.posts)
	}
}

func TestAppDeleteConfirmation(t *testing.T) {
	a := newTestApp(true)
	a.view = viewPosts
	a, _ = send(a, confirmDeleteMsg{kind: deletePost, id: 4, label: "Minha postagem"})
	if a.view != viewConfirm {
		t.Fatalf("got view %d, want viewConfirm", a.view)
	}
	if !strings.Contains(a.View(), "Minha postagem") {
		t.Error("confirmation does not show the post title")
	}

	a, _ = press(a, "n")
	if a.view != viewPosts {
		t.Errorf("cancel: got view %d, want viewPosts", a.view)
	}

	a, _ = send(a, confirmDeleteMsg{kind: deletePost, id: 4, label: "Minha postagem"})
	a, _ = send(a, deletedMsg{kind: deletePost})
	if a.view != viewPosts {
		t.Errorf("after delete: got view %d, want viewPosts", a.view)
	}
	if a.status != "Postagem apagada com sucesso" {
		t.Errorf("status = %q", a.status)
	}
}

func TestAppRegisteredGoesToLogin(t *testing.T) {
	a := newTestApp(false)
	a, _ = send(a, showRegisterMsg{})
	if a.view != viewRegister {
		t.Fatalf("got view %d, want viewRegister", a.view)
	}
	a, _ = send(a, registeredMsg{user: &domain.User{ID: 9, Email: "novo@blog.com"}})
	if a.view != viewLogin {
		t.Errorf("got view %d, want viewLogin", a.view)
	}
	if a.login.email != "novo@blog.com" {
		t.Errorf("login email = %q, want prefilled", a.login.email)
	}
	if a.status != "Usuário cadastrado com sucesso!" {
		t.Errorf("status = %q", a.status)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(true)
	a, _ = press(a, "h")
	if !a.helpOpen {
		t.Fatal("help not open")
	}
	a, _ = press(a, "1")
	if a.view != viewHome {
		t.Error("help overlay let a navigation key through")
	}
	a, _ = press(a, "esc")
	if a.helpOpen {
		t.Error("help still open after esc")
	}
}

func TestAppEndToEndWithBackend(t *testing.T) {
	backend := fakeapi.New(zap.NewNop())
	if _, err := backend.SeedUser(domain.User{Name: "Maria", Email: "maria@blog.com", Password: "segredo123"}); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}
	srv := httptest.NewServer(backend.Handler())
	defer srv.Close()

	store := session.New()
	c := client.New(client.NewGateway(srv.URL), store)
	a := NewApp(c, store)
	a.width, a.height = 100, 40

	// login
	a = typeText(a, "maria@blog.com")
	a, _ = press(a, "tab")
	a = typeText(a, "segredo123")
	a, cmd := press(a, "enter")
	a = drain(t, a, cmd)
	if !store.Authenticated() {
		t.Fatalf("not logged in, login status %q", a.login.statusMsg)
	}
	if !strings.HasPrefix(store.Get().Token, "Bearer ") {
		t.Errorf("token = %q, want Bearer scheme", store.Get().Token)
	}

	// create a theme
	a, _ = press(a, "3")
	a = typeText(a, "Golang")
	a, cmd = press(a, "enter")
	a = drain(t, a, cmd)
	if a.view != viewThemes {
		t.Fatalf("after saving theme: view %d, status %q, form %q", a.view, a.status, a.themeForm.statusMsg)
	}
	if len(a.themes.themes) != 1 {
		t.Fatalf("themes = %d, want 1", len(a.themes.themes))
	}

	// create a post through the modal
	a, cmd = press(a, "n")
	a = drain(t, a, cmd)
	a = typeText(a, "Primeiro post")
	a, _ = press(a, "tab")
	a = typeText(a, "Texto da primeira postagem")
	a, _ = press(a, "tab", "l")
	a, cmd = press(a, "ctrl+s")
	a = drain(t, a, cmd)
	if a.modalOpen {
		t.Fatalf("modal still open, form status %q", a.postForm.statusMsg)
	}
	if len(a.posts.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(a.posts.posts))
	}
	p := a.posts.posts[0]
	if p.Title != "Primeiro post" || p.ThemeDescription() != "Golang" || p.AuthorName() != "Maria" {
		t.Errorf("post = %+v", p)
	}

	// profile counts it
	a, cmd = press(a, "4")
	a = drain(t, a, cmd)
	if got := postCount(a.profile.user); got != 1 {
		t.Errorf("profile post count = %d, want 1", got)
	}

	// delete it
	a, _ = press(a, "1")
	a, cmd = press(a, "d")
	a = drain(t, a, cmd)
	a, cmd = press(a, "s")
	a = drain(t, a, cmd)
	if len(a.posts.posts) != 0 {
		t.Errorf("posts after delete = %d, want 0", len(a.posts.posts))
	}

	// logout drops the token for subsequent requests
	a, _ = press(a, "x")
	if _, err := c.ListPosts(t.Context()); !client.IsUnauthorized(err) {
		t.Errorf("ListPosts after logout: got %v, want 401", err)
	}
}
