package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type testBackend struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	s := New(nil)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	if _, err := s.SeedUser(domain.User{Name: "Ana", Email: "a@b.com", Password: "12345678"}); err != nil {
		t.Fatalf("SeedUser() error: %v", err)
	}
	b := &testBackend{t: t, srv: srv}
	var sess domain.Session
	if code := b.do(http.MethodPost, "/usuarios/logar", domain.Credentials{Email: "a@b.com", Password: "12345678"}, &sess); code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", code)
	}
	b.token = sess.Token
	return b
}

func (b *testBackend) do(method, path string, body, out any) int {
	b.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			b.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, b.srv.URL+path, &buf)
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	if b.token != "" {
		req.Header.Set("Authorization", b.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		b.t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			b.t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestLoginIssuesBearerToken(t *testing.T) {
	b := newTestBackend(t)
	if len(b.token) <= len("Bearer ") || b.token[:7] != "Bearer " {
		t.Errorf("token = %q, want Bearer scheme", b.token)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	b := newTestBackend(t)
	b.token = ""
	code := b.do(http.MethodPost, "/usuarios/logar", domain.Credentials{Email: "a@b.com", Password: "wrong-pass"}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	b := newTestBackend(t)
	code := b.do(http.MethodPost, "/usuarios/cadastrar", domain.User{Name: "Other", Email: "A@b.com", Password: "12345678"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	b := newTestBackend(t)
	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"empty bearer", "Bearer "},
		{"unknown", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.token = tt.token
			if code := b.do(http.MethodGet, "/postagens", nil, nil); code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", code)
			}
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	b := newTestBackend(t)

	var theme domain.Theme
	if code := b.do(http.MethodPost, "/temas", domain.Theme{Description: "Go"}, &theme); code != http.StatusCreated {
		t.Fatalf("create theme status = %d, want 201", code)
	}

	var post domain.Post
	code := b.do(http.MethodPost, "/postagens", domain.Post{Title: "Hello", Text: "first post body", Theme: &domain.Theme{ID: theme.ID}}, &post)
	if code != http.StatusCreated {
		t.Fatalf("create post status = %d, want 201", code)
	}
	if post.AuthorName() != "Ana" {
		t.Errorf("author = %q, want %q", post.AuthorName(), "Ana")
	}
	if post.ThemeDescription() != "Go" {
		t.Errorf("theme = %q, want %q", post.ThemeDescription(), "Go")
	}
	if post.Date.IsZero() {
		t.Error("date not set on create")
	}

	var withPosts domain.Theme
	b.do(http.MethodGet, "/temas/"+itoa(theme.ID), nil, &withPosts)
	if len(withPosts.Posts) != 1 {
		t.Fatalf("theme posts = %d, want 1", len(withPosts.Posts))
	}

	var found []domain.Post
	b.do(http.MethodGet, "/postagens/titulo/hel", nil, &found)
	if len(found) != 1 {
		t.Errorf("search matches = %d, want 1", len(found))
	}

	if code := b.do(http.MethodDelete, "/postagens/"+itoa(post.ID), nil, nil); code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", code)
	}
	if code := b.do(http.MethodGet, "/postagens/"+itoa(post.ID), nil, nil); code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", code)
	}
}

func TestCreatePostUnknownTheme(t *testing.T) {
	b := newTestBackend(t)
	code := b.do(http.MethodPost, "/postagens", domain.Post{Title: "Hello", Text: "first post body", Theme: &domain.Theme{ID: 999}}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestDeleteThemeCascades(t *testing.T) {
	b := newTestBackend(t)
	var theme domain.Theme
	b.do(http.MethodPost, "/temas", domain.Theme{Description: "Go"}, &theme)
	b.do(http.MethodPost, "/postagens", domain.Post{Title: "Hello", Text: "first post body", Theme: &domain.Theme{ID: theme.ID}}, nil)

	if code := b.do(http.MethodDelete, "/temas/"+itoa(theme.ID), nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete theme status = %d, want 204", code)
	}
	var posts []domain.Post
	b.do(http.MethodGet, "/postagens", nil, &posts)
	if len(posts) != 0 {
		t.Errorf("posts after theme delete = %d, want 0", len(posts))
	}
}

func TestSearchDecodesEscapedSlash(t *testing.T) {
	b := newTestBackend(t)
	var theme domain.Theme
	b.do(http.MethodPost, "/temas", domain.Theme{Description: "Redes/TCP"}, &theme)
	b.do(http.MethodPost, "/postagens", domain.Post{Title: "TCP/IP na prática", Text: "camadas e protocolos", Theme: &domain.Theme{ID: theme.ID}}, nil)
	b.do(http.MethodPost, "/postagens", domain.Post{Title: "TCP puro", Text: "handshake de tres vias", Theme: &domain.Theme{ID: theme.ID}}, nil)

	tests := []struct {
		path string
		want int
	}{
		{"/postagens/titulo/TCP%2FIP", 1},
		{"/postagens/titulo/tcp", 2},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var found []domain.Post
			if code := b.do(http.MethodGet, tt.path, nil, &found); code != http.StatusOK {
				t.Fatalf("status = %d, want 200", code)
			}
			if len(found) != tt.want {
				t.Errorf("got %d posts, want %d", len(found), tt.want)
			}
		})
	}

	var themes []domain.Theme
	b.do(http.MethodGet, "/temas/descricao/redes%2Ftcp", nil, &themes)
	if len(themes) != 1 {
		t.Errorf("got %d themes, want 1", len(themes))
	}
}

func TestUpdateUserOnlySelf(t *testing.T) {
	b := newTestBackend(t)
	var other domain.User
	if code := b.do(http.MethodPost, "/usuarios/cadastrar", domain.User{Name: "Bia", Email: "bia@b.com", Password: "12345678"}, &other); code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", code)
	}

	hijack := domain.User{ID: other.ID, Name: "Ana", Email: "bia@b.com", Password: "87654321"}
	if code := b.do(http.MethodPut, "/usuarios/atualizar", hijack, nil); code != http.StatusForbidden {
		t.Errorf("update other user status = %d, want 403", code)
	}

	var me []domain.User
	b.do(http.MethodGet, "/usuarios/all", nil, &me)
	var anaID int64
	for _, u := range me {
		if u.Email == "a@b.com" {
			anaID = u.ID
		}
	}
	self := domain.User{ID: anaID, Name: "Ana Maria", Email: "a@b.com", Password: "12345678"}
	var updated domain.User
	if code := b.do(http.MethodPut, "/usuarios/atualizar", self, &updated); code != http.StatusOK {
		t.Fatalf("update self status = %d, want 200", code)
	}
	if updated.Name != "Ana Maria" {
		t.Errorf("name = %q, want %q", updated.Name, "Ana Maria")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
