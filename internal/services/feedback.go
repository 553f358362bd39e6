package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// FeedbackService records ratings and closes out the parent mentorship or
// session. Each submission is transactional with the parent's terminal
// transition.
type FeedbackService struct {
	Feedback store.FeedbackStore
	Requests store.MentorshipStore
	Sessions store.SessionStore
}

func NewFeedbackService(feedback store.FeedbackStore, requests store.MentorshipStore, sessions store.SessionStore) *FeedbackService {
	return &FeedbackService{Feedback: feedback, Requests: requests, Sessions: sessions}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *FeedbackService) SubmitMentorshipFeedback(ctx context.Context, studentID, requestID string, rating int, text string) (*models.MentorshipFeedback, error) {
	if !validRating(rating) {
		return nil, ErrBadRequest("Rating must be between 1 and 5")
	}
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Request not found")
		}
		return nil, err
	}
	if req.StudentID != studentID {
		return nil, ErrForbidden("Not allowed")
	}
	fb := &models.MentorshipFeedback{
		ID:                  uuid.NewString(),
		MentorshipRequestID: requestID,
		StudentID:           studentID,
		MentorID:            req.MentorID,
		Rating:              rating,
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		fb.FeedbackText = &trimmed
	}
	if err := s.Feedback.SubmitMentorshipFeedback(ctx, fb); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrConflict("Mentorship is not accepted")
		}
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) SubmitSessionFeedback(ctx context.Context, studentID, sessionID string, rating int, text string) (*models.SessionFeedback, error) {
	if !validRating(rating) {
		return nil, ErrBadRequest("Rating must be between 1 and 5")
	}
	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Session not found")
		}
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, ErrForbidden("Not allowed")
	}
	fb := &models.SessionFeedback{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		StudentID: studentID,
		MentorID:  session.MentorID,
		Rating:    rating,
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		fb.FeedbackText = &trimmed
	}
	if err := s.Feedback.SubmitSessionFeedback(ctx, fb); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrConflict("Session is not approved")
		}
		return nil, err
	}
	return fb, nil
}

// FeedbackSummary aggregates a mentor's received ratings.
type FeedbackSummary struct {
	Mentorships   []store.MentorshipFeedbackDetail `json:"mentorships"`
	Sessions      []store.SessionFeedbackDetail    `json:"sessions"`
	TotalCount    int                              `json:"totalCount"`
	AverageRating float64                          `json:"averageRating"`
}

func (s *FeedbackService) ListForMentor(ctx context.Context, mentorID string) (*FeedbackSummary, error) {
	mentorships, err := s.Feedback.ListMentorshipFeedbackForMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.Feedback.ListSessionFeedbackForMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	summary := &FeedbackSummary{
		Mentorships: mentorships,
		Sessions:    sessions,
	}
	sum := 0
	for _, fb := range mentorships {
		sum += fb.Rating
	}
	for _, fb := range sessions {
		sum += fb.Rating
	}
	summary.TotalCount = len(mentorships) + len(sessions)
	if summary.TotalCount > 0 {
		summary.AverageRating = float64(sum) / float64(summary.TotalCount)
	}
	return summary, nil
}
