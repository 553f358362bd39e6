package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub-backend-go/internal/ai"
)

type fakeRecommender struct {
	rec        *ai.Recommendation
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeRecommender) Recommend(ctx context.Context, systemPrompt, userPrompt string) (*ai.Recommendation, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

func TestDiscoverFiltersByRecommendedNames(t *testing.T) {
	st := newMemStore()
	st.addRepository("kubernetes")
	st.addRepository("terraform")
	st.addRepository("react")
	recommender := &fakeRecommender{rec: &ai.Recommendation{
		Repositories: []string{"kubernetes", "react", "nonexistent"},
		Reasoning:    "infra plus frontend exposure",
	}}
	svc := NewDiscoveryService(st, st, recommender)

	result, err := svc.Discover(context.Background(), DiscoveryRequest{
		Level:       "intermediate",
		Interests:   "cloud native",
		CareerGoals: "platform engineering",
	})
	require.NoError(t, err)
	assert.Equal(t, "infra plus frontend exposure", result.Reasoning)
	require.Len(t, result.Repositories, 2)
	names := []string{result.Repositories[0].Repository.Name, result.Repositories[1].Repository.Name}
	assert.ElementsMatch(t, []string{"kubernetes", "react"}, names)

	assert.True(t, strings.Contains(recommender.lastUser, "Skill Level: intermediate"))
	assert.True(t, strings.Contains(recommender.lastUser, "kubernetes"))
}

func TestDiscoverRateLimited(t *testing.T) {
	st := newMemStore()
	st.addRepository("kubernetes")
	svc := NewDiscoveryService(st, st, &fakeRecommender{err: ai.ErrRateLimited})

	_, err := svc.Discover(context.Background(), DiscoveryRequest{Level: "beginner"})
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 429, svcErr.Status)
}

func TestDiscoverQuotaExhausted(t *testing.T) {
	st := newMemStore()
	st.addRepository("kubernetes")
	svc := NewDiscoveryService(st, st, &fakeRecommender{err: ai.ErrQuotaExhausted})

	_, err := svc.Discover(context.Background(), DiscoveryRequest{Level: "beginner"})
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 402, svcErr.Status)
}

func TestDiscoverGatewayUnavailable(t *testing.T) {
	st := newMemStore()
	st.addRepository("kubernetes")
	svc := NewDiscoveryService(st, st, &fakeRecommender{err: ai.ErrTransient})

	_, err := svc.Discover(context.Background(), DiscoveryRequest{Level: "beginner"})
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 502, svcErr.Status)
}

func TestDiscoverEmptyCatalog(t *testing.T) {
	st := newMemStore()
	svc := NewDiscoveryService(st, st, &fakeRecommender{rec: &ai.Recommendation{
		Repositories: []string{"anything"},
		Reasoning:    "nothing to match",
	}})

	result, err := svc.Discover(context.Background(), DiscoveryRequest{Level: "beginner"})
	require.NoError(t, err)
	assert.Empty(t, result.Repositories)
}
