package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mentorhub-backend-go/internal/store"
)

type CreateMentorshipRequestPayload struct {
	MentorID     string `json:"mentorId"`
	RepositoryID string `json:"repositoryId"`
	Message      string `json:"message"`
}

type MentorshipStatusPayload struct {
	Status string `json:"status"`
}

type FeedbackPayload struct {
	Rating       int    `json:"rating"`
	FeedbackText string `json:"feedbackText"`
}

func (s *Server) CreateMentorshipRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateMentorshipRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	created, err := s.Mentorships.CreateRequest(r.Context(), CurrentUserID(r), req.MentorID, req.RepositoryID, req.Message)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) RespondMentorshipRequest(w http.ResponseWriter, r *http.Request) {
	var req MentorshipStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := s.Mentorships.Respond(r.Context(), CurrentUserID(r), chi.URLParam(r, "requestId"), req.Status); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (s *Server) StudentMentorships(w http.ResponseWriter, r *http.Request) {
	items, err := s.Mentorships.ListForStudent(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": filterRequests(items, r.URL.Query().Get("status"))})
}

func (s *Server) MentorMentorships(w http.ResponseWriter, r *http.Request) {
	items, err := s.Mentorships.ListForMentor(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": filterRequests(items, r.URL.Query().Get("status"))})
}

func filterRequests(items []store.MentorshipRequestDetail, status string) []store.MentorshipRequestDetail {
	if status == "" {
		return items
	}
	filtered := make([]store.MentorshipRequestDetail, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (s *Server) SubmitMentorshipFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	fb, err := s.Feedback.SubmitMentorshipFeedback(r.Context(), CurrentUserID(r), chi.URLParam(r, "requestId"), req.Rating, req.FeedbackText)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, fb)
}
