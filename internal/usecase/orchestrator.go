package usecase

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
	"sphere-core/internal/domain/repository"
	"sphere-core/internal/logger"
	"sphere-core/internal/metrics"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tier picks which configured model serves a tool.
type Tier int

const (
	TierStandard Tier = iota
	TierFast
)

// Models maps tiers to model identifiers.
type Models struct {
	Standard string
	Fast     string
}

// ToolSpec is the fixed parameterisation of one operation: who the model
// pretends to be and how it samples. None of it is caller-controlled.
type ToolSpec struct {
	Tool        string // identifier returned in the envelope
	Operation   string // unique per route
	Tier        Tier
	Persona     string
	Temperature float32
	MaxTokens   int
}

type Orchestrator struct {
	aiProvider repository.AIProvider
	recorders  []repository.UsageRecorder
	models     Models
	log        *zap.Logger
	now        func() time.Time
	bg         sync.WaitGroup
}

func NewOrchestrator(ai repository.AIProvider, models Models, log *zap.Logger, recorders ...repository.UsageRecorder) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		aiProvider: ai,
		recorders:  recorders,
		models:     models,
		log:        log,
		now:        time.Now,
	}
}

// Execute sends one rendered prompt under spec and returns the completion.
func (u *Orchestrator) Execute(ctx context.Context, spec ToolSpec, prompt string) (*entity.CompletionResult, error) {
	req := entity.CompletionRequest{
		Operation:   spec.Operation,
		Model:       u.model(spec.Tier),
		Persona:     spec.Persona,
		Prompt:      prompt,
		Temperature: spec.Temperature,
		MaxTokens:   spec.MaxTokens,
	}

	log := logger.FromContext(ctx, u.log)
	start := u.now()
	resp, err := u.aiProvider.Complete(ctx, req)
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = entity.E(entity.KindUpstreamUnavailable, spec.Operation, entity.ErrEmptyCompletion)
	}
	elapsed := u.now().Sub(start)
	metrics.CompletionDuration.WithLabelValues(spec.Operation).Observe(elapsed.Seconds())

	if err != nil {
		kind := entity.KindOf(err)
		metrics.CompletionCallsTotal.WithLabelValues(spec.Operation, u.aiProvider.Name(), kind.String()).Inc()
		log.Error("completion failed",
			zap.String("operation", spec.Operation),
			zap.String("model", req.Model),
			zap.String("kind", kind.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, &entity.Error{Kind: kind, Op: spec.Operation, Err: fmt.Errorf("completion failed: %w", err)}
	}

	resp.Latency = elapsed.Milliseconds()
	metrics.CompletionCallsTotal.WithLabelValues(spec.Operation, resp.Provider, "ok").Inc()
	metrics.CompletionTokens.WithLabelValues(spec.Operation, resp.Provider).Add(float64(resp.TokenCount))
	log.Info("completion served",
		zap.String("operation", spec.Operation),
		zap.String("provider", resp.Provider),
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokenCount),
		zap.Duration("elapsed", elapsed),
	)

	u.recordUsage(spec, resp)
	return resp, nil
}

// recordUsage writes usage in the background; failures never reach the caller.
func (u *Orchestrator) recordUsage(spec ToolSpec, resp *entity.CompletionResult) {
	if len(u.recorders) == 0 {
		return
	}
	fallback, _ := resp.Metadata["fallback_used"].(bool)
	ev := entity.UsageEvent{
		Tool:       spec.Tool,
		Operation:  spec.Operation,
		Model:      resp.Model,
		Provider:   resp.Provider,
		TokenCount: resp.TokenCount,
		Fallback:   fallback,
		At:         u.now().UTC(),
	}

	u.bg.Add(1)
	go func() {
		defer u.bg.Done()
		// The request context may already be gone.
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, r := range u.recorders {
			if err := r.RecordUsage(bgCtx, ev); err != nil {
				u.log.Warn("usage recording failed", zap.String("operation", ev.Operation), zap.Error(err))
			}
		}
	}()
}

// Wait blocks until background usage writes have finished.
func (u *Orchestrator) Wait() { u.bg.Wait() }

func (u *Orchestrator) model(t Tier) string {
	if t == TierFast && u.models.Fast != "" {
		return u.models.Fast
	}
	return u.models.Standard
}
