package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// ProfileView is the JSON shape of a profile with decoded skill lists.
type ProfileView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Bio        *string  `json:"bio,omitempty"`
	ProfilePic *string  `json:"profilePic,omitempty"`
	Skills     []string `json:"skills"`
	Interests  []string `json:"interests"`
}

type ProfileUpdate struct {
	Name       *string   `json:"name"`
	Bio        *string   `json:"bio"`
	ProfilePic *string   `json:"profilePic"`
	Skills     *[]string `json:"skills"`
	Interests  *[]string `json:"interests"`
}

// MentorDetail pairs a mentor profile with the repositories they mentor.
type MentorDetail struct {
	Profile      ProfileView         `json:"profile"`
	Repositories []models.Repository `json:"repositories"`
}

type ProfileService struct {
	Profiles store.ProfileStore
	Repos    store.RepositoryStore
}

func NewProfileService(profiles store.ProfileStore, repos store.RepositoryStore) *ProfileService {
	return &ProfileService{Profiles: profiles, Repos: repos}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	profile, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Profile not found")
		}
		return nil, err
	}
	return toProfileView(profile), nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*ProfileView, error) {
	profile, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Profile not found")
		}
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrBadRequest("Name is required")
		}
		profile.Name = name
	}
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	if update.ProfilePic != nil {
		profile.ProfilePic = update.ProfilePic
	}
	if update.Skills != nil {
		encoded, err := json.Marshal(*update.Skills)
		if err != nil {
			return nil, err
		}
		profile.Skills = encoded
	}
	if update.Interests != nil {
		encoded, err := json.Marshal(*update.Interests)
		if err != nil {
			return nil, err
		}
		profile.Interests = encoded
	}
	if err := s.Profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return toProfileView(profile), nil
}

func (s *ProfileService) MentorDetail(ctx context.Context, mentorID string) (*MentorDetail, error) {
	profile, err := s.Profiles.GetProfile(ctx, mentorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Mentor not found")
		}
		return nil, err
	}
	if profile.Role != models.RoleMentor {
		return nil, ErrNotFound("Mentor not found")
	}
	repos, err := s.Repos.ListRepositoriesForMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return &MentorDetail{Profile: *toProfileView(profile), Repositories: repos}, nil
}

func toProfileView(p *models.Profile) *ProfileView {
	view := &ProfileView{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Role:       p.Role,
		Bio:        p.Bio,
		ProfilePic: p.ProfilePic,
		Skills:     []string{},
		Interests:  []string{},
	}
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &view.Skills)
	}
	if len(p.Interests) > 0 {
		_ = json.Unmarshal(p.Interests, &view.Interests)
	}
	return view
}
