package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpclabs/research-assistant/internal/models"
)

// fakeCompletions serves an OpenAI-compatible /chat/completions endpoint
// returning the given content, capturing the requested model.
func fakeCompletions(t *testing.T, content string, gotModel *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func TestRefineUsesFastModel(t *testing.T) {
	var gotModel string
	srv := fakeCompletions(t, "  quantum computing breakthroughs 2024  ", &gotModel)
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	refined, err := client.Refine(context.Background(), "sk-test", "quantum computing")
	require.NoError(t, err)
	assert.Equal(t, "quantum computing breakthroughs 2024", refined)
	assert.Equal(t, refineModel, gotModel)
}

func TestGenerateBlogPostUsesContentModel(t *testing.T) {
	var gotModel string
	srv := fakeCompletions(t, "# Post", &gotModel)
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	out, err := client.GenerateBlogPost(context.Background(), "sk-test", models.ResearchContext{
		OriginalQuery: "topic",
		RefinedQuery:  "topic",
	})
	require.NoError(t, err)
	assert.Equal(t, "# Post", out)
	assert.Equal(t, contentModel, gotModel)
}

func TestChatPropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.Refine(context.Background(), "sk-bad", "topic")
	require.Error(t, err)
}
