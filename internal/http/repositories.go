package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mentorhub-backend-go/internal/services"
)

func (s *Server) ListRepositories(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Repositories.List(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"repositories": entries})
}

func (s *Server) GetRepository(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Repositories.Get(r.Context(), chi.URLParam(r, "repositoryId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

func (s *Server) CreateRepository(w http.ResponseWriter, r *http.Request) {
	var req services.RepositoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	repo, err := s.Repositories.Create(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, repo)
}

func (s *Server) UpdateRepository(w http.ResponseWriter, r *http.Request) {
	var req services.RepositoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	repo, err := s.Repositories.Update(r.Context(), chi.URLParam(r, "repositoryId"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, repo)
}

func (s *Server) DeleteRepository(w http.ResponseWriter, r *http.Request) {
	if err := s.Repositories.Delete(r.Context(), chi.URLParam(r, "repositoryId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) ListRepositoryMentors(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Repositories.Get(r.Context(), chi.URLParam(r, "repositoryId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"mentors": entry.Mentors})
}

// AttachMentor registers the calling mentor on the repository.
func (s *Server) AttachMentor(w http.ResponseWriter, r *http.Request) {
	if err := s.Repositories.Attach(r.Context(), CurrentUserID(r), chi.URLParam(r, "repositoryId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "attached"})
}

func (s *Server) DetachMentor(w http.ResponseWriter, r *http.Request) {
	if err := s.Repositories.Detach(r.Context(), CurrentUserID(r), chi.URLParam(r, "repositoryId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "detached"})
}
