package services

import (
	"context"
	"encoding/json"
	"errors"

	"mentorhub-backend-go/internal/ai"
	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// Recommender abstracts the AI gateway client so discovery can be tested
// without network calls.
type Recommender interface {
	Recommend(ctx context.Context, systemPrompt, userPrompt string) (*ai.Recommendation, error)
}

type DiscoveryRequest struct {
	Level       string `json:"level"`
	Interests   string `json:"interests"`
	CareerGoals string `json:"careerGoals"`
	Preferences string `json:"preferences"`
}

type RecommendedRepository struct {
	Repository models.Repository `json:"repository"`
	Mentors    []models.Profile  `json:"mentors"`
}

type DiscoveryResult struct {
	Repositories []RecommendedRepository `json:"repositories"`
	Reasoning    string                  `json:"reasoning"`
}

// DiscoveryService matches the catalog against a student's preferences using
// the AI gateway.
type DiscoveryService struct {
	Repos       store.RepositoryStore
	Profiles    store.ProfileStore
	Recommender Recommender
}

func NewDiscoveryService(repos store.RepositoryStore, profiles store.ProfileStore, recommender Recommender) *DiscoveryService {
	return &DiscoveryService{Repos: repos, Profiles: profiles, Recommender: recommender}
}

const discoverySystemPrompt = `You are an expert career advisor helping developers find the right open source projects to contribute to.
Analyze the user's preferences, skill level, career goals, and interests to recommend the most suitable repositories from the provided list.
Consider:
- Their current skill level and how it matches the project complexity
- Their career goals and how contributing to specific projects can help
- Their interests and passions
- The availability of mentors for the projects

Return 3-5 recommended repository names in order of relevance (most relevant first).`

type repoContext struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	Stars       int      `json:"stars"`
	Mentors     []string `json:"mentors"`
}

func (s *DiscoveryService) Discover(ctx context.Context, req DiscoveryRequest) (*DiscoveryResult, error) {
	repos, err := s.Repos.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	mentorsByRepo := make(map[string][]models.Profile, len(repos))
	contexts := make([]repoContext, 0, len(repos))
	for _, repo := range repos {
		mentors, err := s.Profiles.ListMentorsForRepository(ctx, repo.ID)
		if err != nil {
			return nil, err
		}
		mentorsByRepo[repo.ID] = mentors
		names := make([]string, 0, len(mentors))
		for _, mentor := range mentors {
			names = append(names, mentor.Name)
		}
		contexts = append(contexts, repoContext{
			Name:        repo.Name,
			Description: repo.Description,
			Language:    repo.Language,
			Stars:       repo.Stars,
			Mentors:     names,
		})
	}

	catalog, err := json.MarshalIndent(contexts, "", "  ")
	if err != nil {
		return nil, err
	}
	userPrompt := "User Profile:\n" +
		"- Skill Level: " + req.Level + "\n" +
		"- Career Goals: " + req.CareerGoals + "\n" +
		"- Interests: " + req.Interests + "\n" +
		"- Additional Preferences: " + req.Preferences + "\n\n" +
		"Available Repositories:\n" + string(catalog) + "\n\n" +
		"Based on this information, recommend the most suitable repositories for this user."

	rec, err := s.Recommender.Recommend(ctx, discoverySystemPrompt, userPrompt)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrRateLimited):
			return nil, ServiceError{Status: 429, Message: "Rate limit exceeded. Please try again in a moment."}
		case errors.Is(err, ai.ErrQuotaExhausted):
			return nil, ServiceError{Status: 402, Message: "AI credits exhausted."}
		default:
			return nil, ServiceError{Status: 502, Message: "Recommendation service unavailable"}
		}
	}

	recommended := make(map[string]bool, len(rec.Repositories))
	for _, name := range rec.Repositories {
		recommended[name] = true
	}
	result := &DiscoveryResult{Reasoning: rec.Reasoning, Repositories: []RecommendedRepository{}}
	for _, repo := range repos {
		if recommended[repo.Name] {
			result.Repositories = append(result.Repositories, RecommendedRepository{
				Repository: repo,
				Mentors:    mentorsByRepo[repo.ID],
			})
		}
	}
	return result, nil
}
