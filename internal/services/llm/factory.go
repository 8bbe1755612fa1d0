package llm

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/interfaces"
)

// NewLLMService creates the appropriate LLM service implementation based
// on configuration. Offline mode uses a local Ollama endpoint; cloud mode
// selects a provider by name.
func NewLLMService(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	if cfg.LLM.Mode != "offline" && cfg.LLM.Mode != "cloud" {
		return nil, fmt.Errorf("invalid LLM mode '%s': must be 'offline' or 'cloud'", cfg.LLM.Mode)
	}

	logger.Info().Str("mode", cfg.LLM.Mode).Msg("Initializing LLM service")

	switch cfg.LLM.Mode {
	case "offline":
		return NewOllamaService(&cfg.LLM.Ollama, logger)

	case "cloud":
		switch strings.ToLower(cfg.LLM.Provider) {
		case "claude":
			return NewClaudeService(&cfg.LLM.Claude, logger)
		case "gemini":
			return NewGeminiService(&cfg.LLM.Gemini, logger)
		default:
			return nil, fmt.Errorf("unsupported cloud LLM provider '%s': must be 'claude' or 'gemini'", cfg.LLM.Provider)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM mode: %s", cfg.LLM.Mode)
	}
}
