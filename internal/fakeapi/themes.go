package fakeapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// themeView attaches the theme's posts. mu must be held.
func (s *Server) themeView(t domain.Theme) domain.Theme {
	t.Posts = nil
	for _, p := range s.sortedPosts() {
		if p.Theme != nil && p.Theme.ID == t.ID {
			p.Theme = nil
			t.Posts = append(t.Posts, p)
		}
	}
	return t
}

func (s *Server) sortedThemes() []domain.Theme {
	themes := make([]domain.Theme, 0, len(s.themes))
	for _, t := range s.themes {
		themes = append(themes, s.themeView(t))
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].ID < themes[j].ID })
	return themes
}

func (s *Server) handleListThemes(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.sortedThemes())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, found := s.themes[id]
	if !found {
		respondError(w, http.StatusNotFound, "tema not found")
		return
	}
	respondJSON(w, http.StatusOK, s.themeView(t))
}

func (s *Server) handleSearchThemes(w http.ResponseWriter, r *http.Request) {
	desc, ok := pathText(w, r, "descricao")
	if !ok {
		return
	}
	desc = strings.ToLower(desc)
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := []domain.Theme{}
	for _, t := range s.sortedThemes() {
		if strings.Contains(strings.ToLower(t.Description), desc) {
			matches = append(matches, t)
		}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleCreateTheme(w http.ResponseWriter, r *http.Request) {
	var t domain.Theme
	if !decode(w, r, &t) {
		return
	}
	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID()
	t.Posts = nil
	s.themes[t.ID] = t
	respondJSON(w, http.StatusCreated, s.themeView(t))
}

func (s *Server) handleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	var t domain.Theme
	if !decode(w, r, &t) {
		return
	}
	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.themes[t.ID]; !found {
		respondError(w, http.StatusNotFound, "tema not found")
		return
	}
	t.Posts = nil
	s.themes[t.ID] = t
	respondJSON(w, http.StatusOK, s.themeView(t))
}

// handleDeleteTheme removes the theme together with its posts.
func (s *Server) handleDeleteTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.themes[id]; !found {
		respondError(w, http.StatusNotFound, "tema not found")
		return
	}
	delete(s.themes, id)
	for pid, p := range s.posts {
		if p.Theme != nil && p.Theme.ID == id {
			delete(s.posts, pid)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
