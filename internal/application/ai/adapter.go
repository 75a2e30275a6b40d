package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mealsmith/v1/internal/domain/nutrition"
	"github.com/mealsmith/v1/internal/domain/plan"
	"github.com/mealsmith/v1/internal/domain/profile"
	"github.com/mealsmith/v1/internal/domain/recipe"
	"github.com/mealsmith/v1/internal/ports/outbound"
)

// ErrUnusableResponse signals that the text service answered but nothing
// in its output could be parsed into a plan
var ErrUnusableResponse = errors.New("generative response yielded no usable days")

// ExampleProvider supplies anchor recipes for the prompt. The recipe
// selector satisfies it.
type ExampleProvider interface {
	Select(ctx context.Context, slot nutrition.Slot, p profile.Profile, sel *plan.SelectionContext) (*recipe.Recipe, error)
}

// Options tunes one adapter instance
type Options struct {
	MaxTokens   int
	Temperature float64
	CacheTTL    time.Duration
}

// DefaultOptions returns the adapter defaults used when config leaves the
// values unset
func DefaultOptions() Options {
	return Options{
		MaxTokens:   2048,
		Temperature: 0.7,
		CacheTTL:    15 * time.Minute,
	}
}

// Adapter turns the external text-generation collaborator into a plan
// producer. One attempt per request, no retries: the deterministic
// assembler is always available and equally valid.
type Adapter struct {
	textService outbound.AIService
	examples    ExampleProvider
	cache       outbound.CacheRepository
	opts        Options
	logger      *zap.Logger
}

// NewAdapter creates a generative plan adapter. The cache is optional; a
// nil cache disables response caching.
func NewAdapter(textService outbound.AIService, examples ExampleProvider, cache outbound.CacheRepository, opts Options, logger *zap.Logger) *Adapter {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultOptions().MaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultOptions().Temperature
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultOptions().CacheTTL
	}
	return &Adapter{
		textService: textService,
		examples:    examples,
		cache:       cache,
		opts:        opts,
		logger:      logger.Named("ai-adapter"),
	}
}

// Generate builds the prompt, invokes the text service once and parses the
// response. Any returned error means the caller should use the
// deterministic assembler; the error itself is never user-visible.
func (a *Adapter) Generate(ctx context.Context, p profile.Profile, calc nutrition.Calculation) (*plan.Plan, error) {
	if a.textService == nil {
		return nil, errors.New("text-generation service not configured")
	}
	if err := a.textService.HealthCheck(ctx); err != nil {
		return nil, err
	}

	prompt := BuildPlanPrompt(p, calc, a.collectExamples(ctx, p))

	text, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text-generation service returned an empty response")
	}

	result, report := ParsePlan(text, p, calc)
	if result == nil {
		a.logger.Info("generative response discarded",
			zap.Int("unmatched_lines", len(report.Unmatched)))
		return nil, ErrUnusableResponse
	}

	a.logger.Info("generative plan parsed",
		zap.Int("days", report.DaysParsed),
		zap.Int("meals", report.MealsParsed),
		zap.Int("unmatched_lines", len(report.Unmatched)))

	return result, nil
}

// collectExamples draws one anchor recipe per configured slot, capped at
// three. Example lookup failures are ignored: the prompt works without
// anchors, just less reliably.
func (a *Adapter) collectExamples(ctx context.Context, p profile.Profile) []recipe.Recipe {
	if a.examples == nil {
		return nil
	}
	sel := plan.NewSelectionContext()
	var out []recipe.Recipe
	for _, slot := range nutrition.SlotsFor(p.MealsPerDay) {
		if len(out) == 3 {
			break
		}
		r, err := a.examples.Select(ctx, slot, p, sel)
		if err != nil || r == nil {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func (a *Adapter) complete(ctx context.Context, prompt string) (string, error) {
	cacheKey := ""
	if a.cache != nil {
		sum := sha256.Sum256([]byte(prompt))
		cacheKey = "ai:completion:" + hex.EncodeToString(sum[:])
		if cached, err := a.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			a.logger.Debug("completion served from cache")
			return string(cached), nil
		}
	}

	text, err := a.textService.Complete(ctx, prompt, a.opts.MaxTokens, a.opts.Temperature)
	if err != nil {
		return "", err
	}

	if a.cache != nil && strings.TrimSpace(text) != "" {
		if err := a.cache.Set(ctx, cacheKey, []byte(text), a.opts.CacheTTL); err != nil {
			a.logger.Debug("completion cache write failed", zap.Error(err))
		}
	}

	return text, nil
}
