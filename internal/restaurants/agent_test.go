package restaurants

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/llm"
	"github.com/team4/foodflow/internal/types"
)

type stubClient struct {
	jsonResponse string
	jsonErr      error
	lastPrompt   string
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier, _ float32) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier, _ float32) (string, error) {
	s.lastPrompt = prompt
	return s.jsonResponse, s.jsonErr
}

func (s *stubClient) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClient) Close() error { return nil }

func manyRestaurants(n int) []types.NearbyRestaurant {
	out := make([]types.NearbyRestaurant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.NearbyRestaurant{
			Name:       fmt.Sprintf("Restaurant %03d", i),
			Cuisine:    "mediterranean",
			DistanceKm: float64(i) * 0.1,
		})
	}
	return out
}

func TestShortlist_CapsAtTwentyClosest(t *testing.T) {
	restaurants := manyRestaurants(120)
	shortlist := Shortlist(restaurants, allocation.NewRand(5))

	require.Len(t, shortlist, 20)
	for i := 1; i < len(shortlist); i++ {
		assert.LessOrEqual(t, shortlist[i-1].DistanceKm, shortlist[i].DistanceKm)
	}
}

func TestShortlist_SmallInputKeptWhole(t *testing.T) {
	restaurants := manyRestaurants(7)
	shortlist := Shortlist(restaurants, allocation.NewRand(5))
	assert.Len(t, shortlist, 7)
}

func TestShortlist_SamplingRotates(t *testing.T) {
	restaurants := manyRestaurants(200)

	first := Shortlist(restaurants, allocation.NewRand(1))
	second := Shortlist(restaurants, allocation.NewRand(2))
	assert.NotEqual(t, first, second, "different seeds should sample different shortlists")
}

func TestShortlist_DoesNotMutateInput(t *testing.T) {
	restaurants := manyRestaurants(60)
	original := make([]types.NearbyRestaurant, len(restaurants))
	copy(original, restaurants)

	Shortlist(restaurants, allocation.NewRand(9))
	assert.Equal(t, original, restaurants)
}

func TestRankBuyers(t *testing.T) {
	client := &stubClient{
		jsonResponse: `Here are the matches:
[
  {"name": "Bistro X", "matched_ingredients": ["yogurt", "mint"], "reason": "Mezze menu uses both daily."}
]`,
	}
	agent := NewAgent(client)

	expiring := []types.Ingredient{{Name: "Yogurt"}, {Name: "Mint"}}
	shortlist := []types.NearbyRestaurant{
		{Name: "Bistro X", Cuisine: "mediterranean", DistanceKm: 1.2},
	}

	scores, err := agent.RankBuyers(context.Background(), expiring, shortlist)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Bistro X", scores[0].Name)
	assert.Equal(t, []string{"yogurt", "mint"}, scores[0].MatchedIngredients)

	// Prompt carries both the ingredient JSON and the shortlist lines.
	assert.Contains(t, client.lastPrompt, "Yogurt")
	assert.Contains(t, client.lastPrompt, "- Bistro X: mediterranean (distance: 1.20 km)")
}

func TestRankBuyers_EmptyShortlist(t *testing.T) {
	agent := NewAgent(&stubClient{})
	scores, err := agent.RankBuyers(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, scores)
}

func TestRankBuyers_BadJSON(t *testing.T) {
	agent := NewAgent(&stubClient{jsonResponse: "nothing structured here"})
	_, err := agent.RankBuyers(context.Background(), nil, manyRestaurants(3))
	assert.Error(t, err)
}

func TestRankBuyers_LLMError(t *testing.T) {
	agent := NewAgent(&stubClient{jsonErr: errors.New("rate limited")})
	_, err := agent.RankBuyers(context.Background(), nil, manyRestaurants(3))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "restaurant scoring failed")
}
