// Package ai selects the configured text-generation provider
package ai

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/infrastructure/ai/ollama"
	"github.com/mealsmith/v1/internal/infrastructure/ai/openai"
	"github.com/mealsmith/v1/internal/infrastructure/config"
	"github.com/mealsmith/v1/internal/ports/outbound"
)

// NewTextService returns the provider named in config. When AI is disabled
// the returned service fails health checks, which routes every request to
// the deterministic assembler.
func NewTextService(cfg config.AIConfig, logger *zap.Logger) outbound.AIService {
	if !cfg.Enabled {
		return disabledService{}
	}
	switch cfg.Provider {
	case "openai":
		return openai.NewClient(cfg, logger)
	default:
		return ollama.NewClient(cfg, logger)
	}
}

var errDisabled = errors.New("text-generation service disabled by configuration")

type disabledService struct{}

func (disabledService) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return "", errDisabled
}

func (disabledService) HealthCheck(ctx context.Context) error {
	return errDisabled
}
