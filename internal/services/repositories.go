package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// RepositoryInput carries the editable catalog fields.
type RepositoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	GithubURL   *string `json:"githubUrl"`
	Language    *string `json:"language"`
	Stars       int     `json:"stars"`
}

// CatalogEntry is a repository with its attached mentors.
type CatalogEntry struct {
	Repository models.Repository `json:"repository"`
	Mentors    []ProfileView     `json:"mentors"`
}

// RepositoryService manages the mentor-curated project catalog. Any mentor
// may edit any entry; the catalog has no per-row ownership.
type RepositoryService struct {
	Repos    store.RepositoryStore
	Profiles store.ProfileStore
}

func NewRepositoryService(repos store.RepositoryStore, profiles store.ProfileStore) *RepositoryService {
	return &RepositoryService{Repos: repos, Profiles: profiles}
}

func (s *RepositoryService) Create(ctx context.Context, input RepositoryInput) (*models.Repository, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBadRequest("Repository name is required")
	}
	repo := &models.Repository{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		GithubURL:   input.GithubURL,
		Language:    input.Language,
		Stars:       input.Stars,
	}
	if err := s.Repos.CreateRepository(ctx, repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *RepositoryService) Update(ctx context.Context, id string, input RepositoryInput) (*models.Repository, error) {
	repo, err := s.Repos.GetRepository(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Repository not found")
		}
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBadRequest("Repository name is required")
	}
	repo.Name = name
	repo.Description = input.Description
	repo.GithubURL = input.GithubURL
	repo.Language = input.Language
	repo.Stars = input.Stars
	if err := s.Repos.UpdateRepository(ctx, repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *RepositoryService) Delete(ctx context.Context, id string) error {
	if err := s.Repos.DeleteRepository(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Repository not found")
		}
		return err
	}
	return nil
}

func (s *RepositoryService) Get(ctx context.Context, id string) (*CatalogEntry, error) {
	repo, err := s.Repos.GetRepository(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Repository not found")
		}
		return nil, err
	}
	mentors, err := s.Profiles.ListMentorsForRepository(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CatalogEntry{Repository: *repo, Mentors: toProfileViews(mentors)}, nil
}

func (s *RepositoryService) List(ctx context.Context) ([]CatalogEntry, error) {
	repos, err := s.Repos.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]CatalogEntry, 0, len(repos))
	for _, repo := range repos {
		mentors, err := s.Profiles.ListMentorsForRepository(ctx, repo.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, CatalogEntry{Repository: repo, Mentors: toProfileViews(mentors)})
	}
	return entries, nil
}

// Attach declares the mentor's willingness to mentor the repository.
// Idempotent.
func (s *RepositoryService) Attach(ctx context.Context, mentorID, repositoryID string) error {
	if _, err := s.Repos.GetRepository(ctx, repositoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Repository not found")
		}
		return err
	}
	return s.Repos.AttachMentor(ctx, mentorID, repositoryID)
}

func (s *RepositoryService) Detach(ctx context.Context, mentorID, repositoryID string) error {
	return s.Repos.DetachMentor(ctx, mentorID, repositoryID)
}

func (s *RepositoryService) ListForMentor(ctx context.Context, mentorID string) ([]models.Repository, error) {
	return s.Repos.ListRepositoriesForMentor(ctx, mentorID)
}

func toProfileViews(profiles []models.Profile) []ProfileView {
	views := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *toProfileView(&profiles[i]))
	}
	return views
}
