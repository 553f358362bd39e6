package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mentorhub-backend-go/internal/store"
)

type RequestSessionPayload struct {
	MentorID        string `json:"mentorId"`
	RepositoryID    string `json:"repositoryId"`
	ScheduledAt     string `json:"scheduledAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Notes           string `json:"notes"`
}

func (s *Server) RequestSession(w http.ResponseWriter, r *http.Request) {
	var req RequestSessionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "scheduledAt must be RFC 3339")
		return
	}
	session, err := s.Sessions.RequestSession(r.Context(), CurrentUserID(r), req.MentorID, req.RepositoryID, scheduledAt, req.DurationMinutes, req.Notes)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, session)
}

func (s *Server) ApproveSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.Sessions.Approve(r.Context(), CurrentUserID(r), chi.URLParam(r, "sessionId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

func (s *Server) RejectSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Reject(r.Context(), CurrentUserID(r), chi.URLParam(r, "sessionId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (s *Server) StudentSessions(w http.ResponseWriter, r *http.Request) {
	items, err := s.Sessions.ListForStudent(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"sessions": filterSessions(items, r.URL.Query().Get("status"))})
}

func (s *Server) MentorSessions(w http.ResponseWriter, r *http.Request) {
	items, err := s.Sessions.ListForMentor(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"sessions": filterSessions(items, r.URL.Query().Get("status"))})
}

func filterSessions(items []store.SessionDetail, status string) []store.SessionDetail {
	if status == "" {
		return items
	}
	filtered := make([]store.SessionDetail, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (s *Server) SubmitSessionFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	fb, err := s.Feedback.SubmitSessionFeedback(r.Context(), CurrentUserID(r), chi.URLParam(r, "sessionId"), req.Rating, req.FeedbackText)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, fb)
}

func (s *Server) MentorFeedback(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Feedback.ListForMentor(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
