package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/interfaces"
)

// OllamaService implements the LLMService interface against a local
// Ollama HTTP endpoint. It is the offline-mode generation collaborator:
// no API key, no cloud dependency.
type OllamaService struct {
	config  *common.OllamaConfig
	logger  arbor.ILogger
	client  *http.Client
	baseURL string
}

type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaService creates a new Ollama LLM service instance.
func NewOllamaService(ollamaConfig *common.OllamaConfig, logger arbor.ILogger) (*OllamaService, error) {
	if ollamaConfig.URL == "" {
		return nil, fmt.Errorf("Ollama URL is required for offline mode (set via SECBRIEF_OLLAMA_URL or llm.ollama.url in config)")
	}
	if ollamaConfig.Model == "" {
		ollamaConfig.Model = "llama3.2:1b"
	}

	timeout, err := time.ParseDuration(ollamaConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", ollamaConfig.Timeout, err)
	}

	service := &OllamaService{
		config:  ollamaConfig,
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(ollamaConfig.URL, "/"),
	}

	logger.Debug().
		Str("url", service.baseURL).
		Str("model", ollamaConfig.Model).
		Dur("timeout", timeout).
		Msg("Ollama LLM service initialized successfully")

	return service, nil
}

// Chat generates a completion by flattening the conversation into a single
// prompt for the Ollama /api/generate endpoint. System messages become the
// request's system field.
func (s *OllamaService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	var systemText string
	var prompt strings.Builder
	for _, msg := range messages {
		if msg.Role == "system" {
			if systemText == "" {
				systemText = msg.Content
			}
			continue
		}
		if prompt.Len() > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(msg.Content)
	}
	if prompt.Len() == 0 {
		return "", fmt.Errorf("at least one message must have role 'user'")
	}

	options := map[string]interface{}{}
	if s.config.Temperature > 0 {
		options["temperature"] = s.config.Temperature
	}
	if s.config.MaxTokens > 0 {
		options["num_predict"] = s.config.MaxTokens
	}

	startTime := time.Now()
	s.logger.Debug().
		Str("model", s.config.Model).
		Int("prompt_length", prompt.Len()).
		Msg("Starting Ollama generation")

	response, err := s.generate(ctx, ollamaGenerateRequest{
		Model:   s.config.Model,
		Prompt:  prompt.String(),
		System:  systemText,
		Stream:  false,
		Options: options,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("model", s.config.Model).
			Msg("Ollama generation failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	s.logger.Debug().
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Ollama generation completed successfully")

	return response, nil
}

// HealthCheck verifies the Ollama endpoint is reachable.
func (s *OllamaService) HealthCheck(ctx context.Context) error {
	healthCheckCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(healthCheckCtx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to build Ollama health check request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("Ollama endpoint unreachable at %s: %w", s.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama health check returned status %d", resp.StatusCode)
	}

	s.logger.Debug().
		Str("url", s.baseURL).
		Msg("Ollama LLM service health check passed")

	return nil
}

// GetMode returns the current operational mode of the LLM service.
func (s *OllamaService) GetMode() interfaces.LLMMode {
	return interfaces.LLMModeOffline
}

// Close releases resources and performs cleanup operations.
func (s *OllamaService) Close() error {
	s.logger.Debug().Msg("Closing Ollama LLM service")
	s.client.CloseIdleConnections()
	return nil
}

func (s *OllamaService) generate(ctx context.Context, request ollamaGenerateRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode Ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build Ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var generated ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("failed to decode Ollama response: %w", err)
	}

	if strings.TrimSpace(generated.Response) == "" {
		return "", fmt.Errorf("no response generated from Ollama")
	}

	return generated.Response, nil
}
