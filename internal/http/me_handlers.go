package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mentorhub-backend-go/internal/services"
)

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := s.Profiles.Get(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	profile, err := s.Profiles.Update(r.Context(), CurrentUserID(r), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

func (s *Server) MentorDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Profiles.MentorDetail(r.Context(), chi.URLParam(r, "mentorId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}
