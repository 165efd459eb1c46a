// Package fakeapi is an in-memory implementation of the blog backend's REST
// contract. It backs the client tests and cmd/blogmock.
package fakeapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

type ctxKey struct{}

type storedUser struct {
	domain.User
	hash []byte
}

// Server holds users, tokens, posts and themes in memory.
type Server struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]*storedUser
	tokens   map[string]int64
	posts    map[int64]domain.Post
	themes   map[int64]domain.Theme
	log      *zap.Logger
	now      func() time.Time
	hashCost int
}

// New creates an empty backend. log may be nil.
func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		users:    make(map[int64]*storedUser),
		tokens:   make(map[string]int64),
		posts:    make(map[int64]domain.Post),
		themes:   make(map[int64]domain.Theme),
		log:      log,
		now:      time.Now,
		hashCost: defaultHashCost,
	}
}

// Handler returns the chi router serving the backend routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/usuarios/cadastrar", s.handleRegister)
	r.Post("/usuarios/logar", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/usuarios/all", s.handleListUsers)
		r.Get("/usuarios/{id}", s.handleGetUser)
		r.Put("/usuarios/atualizar", s.handleUpdateUser)

		r.Route("/postagens", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Post("/", s.handleCreatePost)
			r.Put("/", s.handleUpdatePost)
			r.Get("/titulo/{titulo}", s.handleSearchPosts)
			r.Get("/{id}", s.handleGetPost)
			r.Delete("/{id}", s.handleDeletePost)
		})

		r.Route("/temas", func(r chi.Router) {
			r.Get("/", s.handleListThemes)
			r.Post("/", s.handleCreateTheme)
			r.Put("/", s.handleUpdateTheme)
			r.Get("/descricao/{descricao}", s.handleSearchThemes)
			r.Get("/{id}", s.handleGetTheme)
			r.Delete("/{id}", s.handleDeleteTheme)
		})
	})

	return r
}

// nextID must be called with mu held.
func (s *Server) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.mu.Lock()
		userID, ok := s.tokens[header]
		s.mu.Unlock()
		if !ok {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("client_request_id", r.Header.Get("X-Request-ID")),
		)
	})
}

func callerID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxKey{}).(int64)
	return id
}
