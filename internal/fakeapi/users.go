package fakeapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// defaultHashCost keeps bcrypt fast enough for tests while still exercising it.
const defaultHashCost = bcrypt.MinCost

var errEmailTaken = errors.New("usuario already exists")

// SeedUser registers u directly, bypassing HTTP. It returns the stored user without password.
func (s *Server) SeedUser(u domain.User) (domain.User, error) {
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.hashCost)
	if err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByEmail(u.Email) != nil {
		return domain.User{}, errEmailTaken
	}
	u.ID = s.nextID()
	u.Password = ""
	u.Posts = nil
	s.users[u.ID] = &storedUser{User: u, hash: hash}
	return u, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decode(w, r, &u) {
		return
	}
	created, err := s.SeedUser(u)
	switch {
	case errors.Is(err, domain.ErrInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errEmailTaken):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decode(w, r, &creds) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmail(creds.Email)
	if u == nil || bcrypt.CompareHashAndPassword(u.hash, []byte(creds.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token := "Bearer " + uuid.NewString()
	s.tokens[token] = u.ID
	respondJSON(w, http.StatusOK, domain.Session{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
		Token: token,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, s.userView(u, true))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.users[id]
	if !found {
		respondError(w, http.StatusNotFound, "usuario not found")
		return
	}
	respondJSON(w, http.StatusOK, s.userView(u, true))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decode(w, r, &u) {
		return
	}
	if err := u.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.hashCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.users[u.ID]; !found {
		respondError(w, http.StatusNotFound, "usuario not found")
		return
	}
	if callerID(r) != u.ID {
		respondError(w, http.StatusForbidden, "cannot update another usuario")
		return
	}
	if other := s.userByEmail(u.Email); other != nil && other.ID != u.ID {
		respondError(w, http.StatusBadRequest, errEmailTaken.Error())
		return
	}
	u.Password = ""
	u.Posts = nil
	stored := &storedUser{User: u, hash: hash}
	s.users[u.ID] = stored
	respondJSON(w, http.StatusOK, s.userView(stored, false))
}

// userByEmail must be called with mu held.
func (s *Server) userByEmail(email string) *storedUser {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// userView builds the wire form of u, optionally with its posts. mu must be held.
func (s *Server) userView(u *storedUser, withPosts bool) domain.User {
	out := u.User
	out.Password = ""
	if withPosts {
		for _, p := range s.sortedPosts() {
			if p.Author != nil && p.Author.ID == u.ID {
				p.Author = nil
				out.Posts = append(out.Posts, p)
			}
		}
	}
	return out
}

// authorRef returns the post-embedded form of a user. mu must be held.
func (s *Server) authorRef(id int64) *domain.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	ref := s.userView(u, false)
	return &ref
}
