package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentorhub-backend-go/internal/meetings"
	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

const (
	minSessionMinutes = 15
	maxSessionMinutes = 240
)

// SessionService drives the session lifecycle:
// pending -> approved | rejected, approved -> completed (feedback only).
// Approval provisions a meeting room synchronously.
type SessionService struct {
	Sessions    store.SessionStore
	Profiles    store.ProfileStore
	Repos       store.RepositoryStore
	Provisioner meetings.Provisioner
}

func NewSessionService(sessions store.SessionStore, profiles store.ProfileStore, repos store.RepositoryStore, provisioner meetings.Provisioner) *SessionService {
	return &SessionService{Sessions: sessions, Profiles: profiles, Repos: repos, Provisioner: provisioner}
}

func (s *SessionService) RequestSession(ctx context.Context, studentID, mentorID, repositoryID string, scheduledAt time.Time, durationMinutes int, notes string) (*models.Session, error) {
	if mentorID == "" || repositoryID == "" {
		return nil, ErrBadRequest("Mentor and repository are required")
	}
	if scheduledAt.Before(time.Now()) {
		return nil, ErrBadRequest("Session must be scheduled in the future")
	}
	if durationMinutes < minSessionMinutes || durationMinutes > maxSessionMinutes {
		return nil, ErrBadRequest("Duration must be between 15 and 240 minutes")
	}
	mentor, err := s.Profiles.GetProfile(ctx, mentorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Mentor not found")
		}
		return nil, err
	}
	if mentor.Role != models.RoleMentor {
		return nil, ErrBadRequest("Selected user is not a mentor")
	}
	if _, err := s.Repos.GetRepository(ctx, repositoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Repository not found")
		}
		return nil, err
	}
	session := &models.Session{
		ID:              uuid.NewString(),
		StudentID:       studentID,
		MentorID:        mentorID,
		RepositoryID:    repositoryID,
		ScheduledAt:     scheduledAt.UTC(),
		DurationMinutes: durationMinutes,
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		session.Notes = &trimmed
	}
	if err := s.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Approve claims the pending session, provisions the meeting, and writes the
// meeting details. Exactly one caller wins the claim; a provisioner failure
// releases the claim so the session stays retryable in pending.
func (s *SessionService) Approve(ctx context.Context, mentorID, sessionID string) (*models.Session, error) {
	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Session not found")
		}
		return nil, err
	}
	if session.MentorID != mentorID {
		return nil, ErrForbidden("Not allowed")
	}
	if err := s.Sessions.SetSessionStatus(ctx, sessionID, models.SessionPending, models.SessionApproving); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrConflict("Session is no longer pending")
		}
		return nil, err
	}
	meeting, err := s.Provisioner.CreateMeeting(ctx, meetings.MeetingRequest{
		Topic:           "Mentorship Session",
		StartTime:       session.ScheduledAt,
		DurationMinutes: session.DurationMinutes,
	})
	if err != nil {
		// Compensating action: hand the claim back so approve can be retried.
		if releaseErr := s.Sessions.SetSessionStatus(ctx, sessionID, models.SessionApproving, models.SessionPending); releaseErr != nil {
			return nil, WrapError(releaseErr, "release approval claim")
		}
		return nil, ServiceError{Status: 502, Message: "Failed to create meeting"}
	}
	if err := s.Sessions.MarkSessionApproved(ctx, sessionID, meeting.MeetingID, meeting.JoinURL, meeting.StartURL); err != nil {
		return nil, err
	}
	return s.Sessions.GetSession(ctx, sessionID)
}

func (s *SessionService) Reject(ctx context.Context, mentorID, sessionID string) error {
	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Session not found")
		}
		return err
	}
	if session.MentorID != mentorID {
		return ErrForbidden("Not allowed")
	}
	if err := s.Sessions.SetSessionStatus(ctx, sessionID, models.SessionPending, models.SessionRejected); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrConflict("Session is no longer pending")
		}
		return err
	}
	return nil
}

func (s *SessionService) ListForStudent(ctx context.Context, studentID string) ([]store.SessionDetail, error) {
	return s.Sessions.ListSessionsByStudent(ctx, studentID)
}

func (s *SessionService) ListForMentor(ctx context.Context, mentorID string) ([]store.SessionDetail, error) {
	return s.Sessions.ListSessionsByMentor(ctx, mentorID)
}
