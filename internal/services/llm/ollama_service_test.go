package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/interfaces"
)

func newOllamaTestService(t *testing.T, handler http.Handler) *OllamaService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewOllamaService(&common.OllamaConfig{
		URL:     server.URL,
		Model:   "llama3.2:1b",
		Timeout: "5s",
	}, arbor.NewLogger())
	require.NoError(t, err)
	return service
}

func TestOllamaChat(t *testing.T) {
	var captured ollamaGenerateRequest
	service := newOllamaTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "generated text", Done: true})
	}))

	response, err := service.Chat(context.Background(), []interfaces.Message{
		{Role: "system", Content: "you are a CISO"},
		{Role: "user", Content: "summarize this"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", response)
	assert.Equal(t, "llama3.2:1b", captured.Model)
	assert.Equal(t, "you are a CISO", captured.System)
	assert.Equal(t, "summarize this", captured.Prompt)
	assert.False(t, captured.Stream)
}

func TestOllamaChatErrorStatus(t *testing.T) {
	service := newOllamaTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))

	_, err := service.Chat(context.Background(), []interfaces.Message{
		{Role: "user", Content: "hello"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestOllamaChatEmptyMessages(t *testing.T) {
	service := newOllamaTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := service.Chat(context.Background(), nil)
	assert.Error(t, err)
}

func TestOllamaHealthCheck(t *testing.T) {
	service := newOllamaTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	assert.NoError(t, service.HealthCheck(context.Background()))
	assert.Equal(t, interfaces.LLMModeOffline, service.GetMode())
}

func TestFactoryModeValidation(t *testing.T) {
	logger := arbor.NewLogger()

	cfg := common.DefaultConfig()
	cfg.LLM.Mode = "invalid"
	_, err := NewLLMService(cfg, logger)
	assert.Error(t, err)

	cfg = common.DefaultConfig()
	cfg.LLM.Mode = "cloud"
	cfg.LLM.Provider = "unknown"
	_, err = NewLLMService(cfg, logger)
	assert.Error(t, err)

	// cloud claude without an API key fails clearly
	cfg = common.DefaultConfig()
	cfg.LLM.Mode = "cloud"
	cfg.LLM.Provider = "claude"
	cfg.LLM.Claude.APIKey = ""
	_, err = NewLLMService(cfg, logger)
	assert.Error(t, err)
}
