package outbound

import "context"

// AIService is the black-box generative text collaborator. The engine
// treats any error, timeout or empty response identically: fall back to
// the deterministic assembler, single attempt per request.
type AIService interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
	HealthCheck(ctx context.Context) error
}
