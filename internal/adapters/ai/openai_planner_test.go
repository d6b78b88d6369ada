package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptailor/triptailor/internal/adapters/ai"
	"github.com/triptailor/triptailor/internal/core/domain"
)

func testInput() domain.ItineraryInput {
	return domain.ItineraryInput{
		Destination: "Kyoto",
		StartDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		Preferences: []string{"temples", "food"},
	}
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func newTestPlanner(serverURL string) *ai.OpenAIPlanner {
	planner := ai.NewOpenAIPlanner("test-key", "test-model")
	planner.BaseURL = serverURL
	return planner
}

func TestOpenAIPlanner_GenerateItinerary(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Parses the plan out of the chat content", func(t *testing.T) {
		planJSON := `{"itinerary":[{"day":1,"title":"Fushimi Inari","activities":["Hike the gates"],"mealSuggestions":"Street food at Nishiki"}],"packingList":["Walking shoes"],"localTips":["Carry cash"]}`

		var gotAuth string
		var gotReq struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.Write([]byte(chatReply(planJSON)))
		}))
		defer server.Close()

		plan, err := newTestPlanner(server.URL).GenerateItinerary(ctx, testInput())

		require.NoError(t, err)
		require.Len(t, plan.Itinerary, 1)
		assert.Equal(t, "Fushimi Inari", plan.Itinerary[0].Title)
		assert.Equal(t, []string{"Walking shoes"}, plan.PackingList)

		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "test-model", gotReq.Model)
		assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Contains(t, gotReq.Messages[1].Content, "destination: Kyoto")
		assert.Contains(t, gotReq.Messages[1].Content, "preferences: temples, food")
	})

	t.Run("Error: API error surfaces status and message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
		}))
		defer server.Close()

		_, err := newTestPlanner(server.URL).GenerateItinerary(ctx, testInput())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "Incorrect API key")
	})

	t.Run("Error: Empty itinerary in content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(chatReply(`{"itinerary":[],"packingList":[],"localTips":[]}`)))
		}))
		defer server.Close()

		_, err := newTestPlanner(server.URL).GenerateItinerary(ctx, testInput())
		assert.ErrorIs(t, err, domain.ErrEmptyItinerary)
	})

	t.Run("Error: Content is not JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(chatReply("Sure! Here is your trip plan: ...")))
		}))
		defer server.Close()

		_, err := newTestPlanner(server.URL).GenerateItinerary(ctx, testInput())
		assert.Error(t, err)
	})

	t.Run("Error: No choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := newTestPlanner(server.URL).GenerateItinerary(ctx, testInput())
		assert.Error(t, err)
	})

	t.Run("Error: Unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestPlanner(server.URL).GenerateItinerary(ctx, testInput())
		assert.Error(t, err)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	t.Run("Includes all fields", func(t *testing.T) {
		prompt := ai.BuildUserPrompt(testInput())

		assert.Contains(t, prompt, "destination: Kyoto")
		assert.Contains(t, prompt, "start_date: 2024-04-01")
		assert.Contains(t, prompt, "end_date: 2024-04-03")
		assert.Contains(t, prompt, "preferences: temples, food")
	})

	t.Run("Omits empty preferences", func(t *testing.T) {
		in := testInput()
		in.Preferences = nil

		prompt := ai.BuildUserPrompt(in)
		assert.NotContains(t, prompt, "preferences")
	})
}
