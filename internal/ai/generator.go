// Package ai orchestrates site generation: it walks an ordered list of
// model candidates with bounded retries, then pushes the raw model text
// through the recovery pipeline (extract, repair, validate) with a single
// remote-repair fallback.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"site_ai_server/internal/ai/prompts"
	"site_ai_server/internal/extract"
	"site_ai_server/internal/gemini"
	"site_ai_server/internal/repair"
	"site_ai_server/internal/schema"
	"site_ai_server/internal/types"
)

// ContentGenerator is the upstream model call the orchestrator depends on.
// *gemini.Client satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, p gemini.GenerateParams) (string, error)
}

// ModelCandidate is one entry of the ordered failover list. The orchestrator
// makes at most MaxRetries+1 attempts against it, sleeping
// attemptIndex*BaseDelay before each retry.
type ModelCandidate struct {
	Model      string
	MaxRetries int
	BaseDelay  time.Duration
}

// AttemptRecord captures one model attempt for the aggregated failure
// report.
type AttemptRecord struct {
	Model     string
	Attempt   int
	Transient bool
	Err       string
}

// GenerateError is the aggregated terminal failure after every
// model/attempt combination was exhausted.
type GenerateError struct {
	Attempts []AttemptRecord
	Last     error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("all model candidates exhausted after %d attempts, last error: %v",
		len(e.Attempts), e.Last)
}

func (e *GenerateError) Unwrap() error { return e.Last }

// ErrNotRecovered is wrapped into the terminal error when a payload failed
// the recovery pipeline even after the remote repair call.
var ErrNotRecovered = errors.New("model output failed recovery")

const (
	defaultTemperature     = 0.8
	defaultMaxOutputTokens = 8192
	repairMaxOutputTokens  = 4096
)

// Generator runs the generation flow. All per-invocation state (raw text,
// extracted substring, in-progress project) is local to one Generate call,
// so concurrent invocations never interfere.
type Generator struct {
	client     ContentGenerator
	candidates []ModelCandidate
	logger     *zap.Logger
}

func NewGenerator(client ContentGenerator, candidates []ModelCandidate, logger *zap.Logger) *Generator {
	return &Generator{
		client:     client,
		candidates: candidates,
		logger:     logger,
	}
}

// workItem is one (candidate, attempt) pair of the precomputed bounded work
// list. Total attempts never exceed |candidates| * (MaxRetries+1).
type workItem struct {
	candidate ModelCandidate
	attempt   int
}

func (g *Generator) workList() []workItem {
	var items []workItem
	for _, cand := range g.candidates {
		for attempt := 0; attempt <= cand.MaxRetries; attempt++ {
			items = append(items, workItem{candidate: cand, attempt: attempt})
		}
	}
	return items
}

// Generate issues the request against the candidate list and returns the
// first payload that survives the full recovery pipeline.
//
// HTTP-level failures (transient overload, hard upstream errors, empty
// payloads) consume retry slots and advance through the work list. A payload
// that parses but cannot be recovered, even by the remote repairer, is
// terminal: retrying other models on a semantic failure would burn the whole
// budget on an input problem, not an upstream one.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (*types.Project, error) {
	requestID := uuid.New().String()
	log := g.logger.With(zap.String("requestId", requestID))

	sysPrompt := prompts.SiteGenerationSystemPrompt(req.Kind != types.KindPreview)
	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := req.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxOutputTokens
	}

	var records []AttemptRecord
	var lastErr error
	for _, item := range g.workList() {
		if item.attempt > 0 {
			delay := time.Duration(item.attempt) * item.candidate.BaseDelay
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		log.Info("calling model",
			zap.String("model", item.candidate.Model),
			zap.Int("attempt", item.attempt+1))

		text, err := g.client.GenerateContent(ctx, gemini.GenerateParams{
			Model:           item.candidate.Model,
			SystemPrompt:    sysPrompt,
			UserPrompt:      req.Prompt,
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			records = append(records, AttemptRecord{
				Model:     item.candidate.Model,
				Attempt:   item.attempt,
				Transient: gemini.IsTransient(err),
				Err:       err.Error(),
			})
			log.Warn("model attempt failed",
				zap.String("model", item.candidate.Model),
				zap.Int("attempt", item.attempt+1),
				zap.Bool("transient", gemini.IsTransient(err)),
				zap.Error(err))
			continue
		}

		project, err := g.recover(ctx, item.candidate.Model, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotRecovered, err)
		}
		log.Info("site generated",
			zap.String("model", item.candidate.Model),
			zap.String("siteName", project.SiteName),
			zap.Int("pages", len(project.Pages)))
		return project, nil
	}

	return nil, &GenerateError{Attempts: records, Last: lastErr}
}

// recover runs extract -> repair -> validate over raw model text. On any
// failure it makes exactly one remote repair call and re-runs the pipeline
// on that output; a second failure is final.
func (g *Generator) recover(ctx context.Context, model, text string) (*types.Project, error) {
	project, err := recoverOnce(text)
	if err == nil {
		return project, nil
	}

	diagnostic := ""
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		diagnostic = verr.Diagnostic()
	}
	g.logger.Warn("recovery failed, requesting remote repair",
		zap.String("model", model),
		zap.Error(err))

	repaired, repErr := g.client.GenerateContent(ctx, gemini.GenerateParams{
		Model:           model,
		SystemPrompt:    "You convert malformed output into valid JSON. Respond with JSON only.",
		UserPrompt:      prompts.RepairPrompt(text, diagnostic),
		Temperature:     0,
		MaxOutputTokens: repairMaxOutputTokens,
	})
	if repErr != nil {
		return nil, fmt.Errorf("remote repair call failed: %w", repErr)
	}

	project, err = recoverOnce(repaired)
	if err != nil {
		return nil, fmt.Errorf("remote repair output still invalid: %w", err)
	}
	return project, nil
}

func recoverOnce(text string) (*types.Project, error) {
	raw, err := repair.Parse(extract.JSON(text))
	if err != nil {
		return nil, err
	}
	return schema.Validate(raw)
}

// sleepCtx waits for d or until the context is cancelled. Cancellation is
// cooperative: in-flight requests are never aborted, but no further attempt
// is issued.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
