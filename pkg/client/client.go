package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// Backend resource paths.
const (
	PathRegister   = "/usuarios/cadastrar"
	PathLogin      = "/usuarios/logar"
	PathUsers      = "/usuarios"
	PathUserUpdate = "/usuarios/atualizar"
	PathPosts      = "/postagens"
	PathThemes     = "/temas"
)

// SessionSource supplies the session whose token is attached to requests.
type SessionSource interface {
	Get() domain.Session
}

// Client is the typed blog API client. It reads the bearer token from its
// SessionSource on every call and never writes to it.
type Client struct {
	gw       *Gateway
	sessions SessionSource
}

// New creates a Client over gw. sessions may be nil for anonymous use.
func New(gw *Gateway, sessions SessionSource) *Client {
	return &Client{gw: gw, sessions: sessions}
}

// Gateway returns the underlying request gateway.
func (c *Client) Gateway() *Gateway {
	return c.gw
}

func (c *Client) auth() Headers {
	var s domain.Session
	if c.sessions != nil {
		s = c.sessions.Get()
	}
	return Headers{"Authorization": s.AuthHeader()}
}

// --- Users ---

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, u domain.User) (*domain.User, error) {
	created, err := Create[domain.User](ctx, c.gw, PathRegister, u, nil)
	if err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &created, nil
}

// Login exchanges credentials for a session. The caller decides where to keep it.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	s, err := Authenticate(ctx, c.gw, PathLogin, creds)
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &s, nil
}

// GetUser fetches a user, including their posts, by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := Read[domain.User](ctx, c.gw, PathUsers+"/"+idPath(id), c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &u, nil
}

// UpdateUser replaces the stored user record.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	updated, err := Update[domain.User](ctx, c.gw, PathUserUpdate, u, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.UpdateUser: %w", err)
	}
	return &updated, nil
}

// --- Posts ---

// ListPosts fetches every post.
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := Read[[]domain.Post](ctx, c.gw, PathPosts, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.ListPosts: %w", err)
	}
	return posts, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := Read[domain.Post](ctx, c.gw, PathPosts+"/"+idPath(id), c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.GetPost: %w", err)
	}
	return &p, nil
}

// SearchPosts fetches posts whose title contains title.
func (c *Client) SearchPosts(ctx context.Context, title string) ([]domain.Post, error) {
	posts, err := Read[[]domain.Post](ctx, c.gw, PathPosts+"/titulo/"+url.PathEscape(title), c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.SearchPosts: %w", err)
	}
	return posts, nil
}

// CreatePost creates a new post.
func (c *Client) CreatePost(ctx context.Context, p domain.Post) (*domain.Post, error) {
	created, err := Create[domain.Post](ctx, c.gw, PathPosts, p, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.CreatePost: %w", err)
	}
	return &created, nil
}

// UpdatePost replaces the post identified by p.ID.
func (c *Client) UpdatePost(ctx context.Context, p domain.Post) (*domain.Post, error) {
	updated, err := Update[domain.Post](ctx, c.gw, PathPosts, p, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.UpdatePost: %w", err)
	}
	return &updated, nil
}

// DeletePost deletes a post by ID.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	if err := c.gw.Remove(ctx, PathPosts+"/"+idPath(id), c.auth()); err != nil {
		return fmt.Errorf("client.DeletePost: %w", err)
	}
	return nil
}

// --- Themes ---

// ListThemes fetches every theme.
func (c *Client) ListThemes(ctx context.Context) ([]domain.Theme, error) {
	themes, err := Read[[]domain.Theme](ctx, c.gw, PathThemes, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.ListThemes: %w", err)
	}
	return themes, nil
}

// GetTheme fetches a single theme by ID.
func (c *Client) GetTheme(ctx context.Context, id int64) (*domain.Theme, error) {
	t, err := Read[domain.Theme](ctx, c.gw, PathThemes+"/"+idPath(id), c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.GetTheme: %w", err)
	}
	return &t, nil
}

// SearchThemes fetches themes whose description contains desc.
func (c *Client) SearchThemes(ctx context.Context, desc string) ([]domain.Theme, error) {
	themes, err := Read[[]domain.Theme](ctx, c.gw, PathThemes+"/descricao/"+url.PathEscape(desc), c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.SearchThemes: %w", err)
	}
	return themes, nil
}

// CreateTheme creates a new theme.
func (c *Client) CreateTheme(ctx context.Context, t domain.Theme) (*domain.Theme, error) {
	created, err := Create[domain.Theme](ctx, c.gw, PathThemes, t, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.CreateTheme: %w", err)
	}
	return &created, nil
}

// UpdateTheme replaces the theme identified by t.ID.
func (c *Client) UpdateTheme(ctx context.Context, t domain.Theme) (*domain.Theme, error) {
	updated, err := Update[domain.Theme](ctx, c.gw, PathThemes, t, c.auth())
	if err != nil {
		return nil, fmt.Errorf("client.UpdateTheme: %w", err)
	}
	return &updated, nil
}

// DeleteTheme deletes a theme by ID.
func (c *Client) DeleteTheme(ctx context.Context, id int64) error {
	if err := c.gw.Remove(ctx, PathThemes+"/"+idPath(id), c.auth()); err != nil {
		return fmt.Errorf("client.DeleteTheme: %w", err)
	}
	return nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}
