package fakeapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// sortedPosts returns every post rendered for the wire, ordered by ID. mu must be held.
func (s *Server) sortedPosts() []domain.Post {
	posts := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, s.postView(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

// postView resolves the stored theme and author references. mu must be held.
func (s *Server) postView(p domain.Post) domain.Post {
	if p.Theme != nil {
		if t, ok := s.themes[p.Theme.ID]; ok {
			t.Posts = nil
			p.Theme = &t
		}
	}
	if p.Author != nil {
		p.Author = s.authorRef(p.Author.ID)
	}
	return p
}

func (s *Server) handleListPosts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.sortedPosts())
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.posts[id]
	if !found {
		respondError(w, http.StatusNotFound, "postagem not found")
		return
	}
	respondJSON(w, http.StatusOK, s.postView(p))
}

func (s *Server) handleSearchPosts(w http.ResponseWriter, r *http.Request) {
	title, ok := pathText(w, r, "titulo")
	if !ok {
		return
	}
	title = strings.ToLower(title)
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := []domain.Post{}
	for _, p := range s.sortedPosts() {
		if strings.Contains(strings.ToLower(p.Title), title) {
			matches = append(matches, p)
		}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var p domain.Post
	if !decode(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.themes[p.Theme.ID]; !ok {
		respondError(w, http.StatusBadRequest, "tema does not exist")
		return
	}
	p.ID = s.nextID()
	p.Date = s.now().UTC()
	p.Theme = &domain.Theme{ID: p.Theme.ID}
	p.Author = &domain.User{ID: callerID(r)}
	s.posts[p.ID] = p
	respondJSON(w, http.StatusCreated, s.postView(p))
}

// handleUpdatePost replaces title, text and theme. Date and author stay, so
// repeating the same PUT leaves the stored post unchanged.
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var p domain.Post
	if !decode(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.posts[p.ID]
	if !found {
		respondError(w, http.StatusNotFound, "postagem not found")
		return
	}
	if _, ok := s.themes[p.Theme.ID]; !ok {
		respondError(w, http.StatusBadRequest, "tema does not exist")
		return
	}
	existing.Title = p.Title
	existing.Text = p.Text
	existing.Theme = &domain.Theme{ID: p.Theme.ID}
	s.posts[p.ID] = existing
	respondJSON(w, http.StatusOK, s.postView(existing))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.posts[id]; !found {
		respondError(w, http.StatusNotFound, "postagem not found")
		return
	}
	delete(s.posts, id)
	w.WriteHeader(http.StatusNoContent)
}
