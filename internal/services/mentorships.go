package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// MentorshipService drives the mentorship request lifecycle:
// pending -> accepted | rejected, accepted -> completed (feedback only).
type MentorshipService struct {
	Requests store.MentorshipStore
	Profiles store.ProfileStore
	Repos    store.RepositoryStore
}

func NewMentorshipService(requests store.MentorshipStore, profiles store.ProfileStore, repos store.RepositoryStore) *MentorshipService {
	return &MentorshipService{Requests: requests, Profiles: profiles, Repos: repos}
}

func (s *MentorshipService) CreateRequest(ctx context.Context, studentID, mentorID, repositoryID, message string) (*models.MentorshipRequest, error) {
	if mentorID == "" || repositoryID == "" {
		return nil, ErrBadRequest("Mentor and repository are required")
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
	req := &models.MentorshipRequest{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		MentorID:     mentorID,
		RepositoryID: repositoryID,
	}
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		req.Message = &trimmed
	}
	if err := s.Requests.CreateRequest(ctx, req); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrConflict("You already have an active request for this mentor and repository")
		}
		return nil, err
	}
	return req, nil
}

// Respond lets the owning mentor accept or reject a pending request.
func (s *MentorshipService) Respond(ctx context.Context, mentorID, requestID, status string) error {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return ErrBadRequest("Status must be accepted or rejected")
	}
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Request not found")
		}
		return err
	}
	if req.MentorID != mentorID {
		return ErrForbidden("Not allowed")
	}
	if err := s.Requests.SetRequestStatus(ctx, requestID, models.RequestPending, status); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrConflict("Request is no longer pending")
		}
		return err
	}
	return nil
}

func (s *MentorshipService) ListForStudent(ctx context.Context, studentID string) ([]store.MentorshipRequestDetail, error) {
	return s.Requests.ListRequestsByStudent(ctx, studentID)
}

func (s *MentorshipService) ListForMentor(ctx context.Context, mentorID string) ([]store.MentorshipRequestDetail, error) {
	return s.Requests.ListRequestsByMentor(ctx, mentorID)
}
