package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sphere-core/internal/domain/entity"
	"sphere-core/internal/domain/repository"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy bounds a single generation.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Timeout    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2, // Total 3 attempts for Primary
		BaseDelay:  500 * time.Millisecond,
		Timeout:    90 * time.Second,
	}
}

type ResilientProvider struct {
	primary  repository.AIProvider
	fallback repository.AIProvider // optional, nil disables the fallback tier
	policy   RetryPolicy
	log      *zap.Logger
}

func NewResilientProvider(primary, fallback repository.AIProvider, policy RetryPolicy, log *zap.Logger) *ResilientProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResilientProvider{
		primary:  primary,
		fallback: fallback,
		policy:   policy,
		log:      log,
	}
}

func (r *ResilientProvider) Name() string { return r.primary.Name() }

func (r *ResilientProvider) Complete(ctx context.Context, req entity.CompletionRequest) (*entity.CompletionResult, error) {
	// A scoped context so one slow vendor call cannot hang the request.
	resCtx, cancel := context.WithTimeout(ctx, r.policy.Timeout)
	defer cancel()

	resp, attempts, err := r.executeWithRetry(resCtx, r.primary, req)
	if err == nil {
		return annotate(resp, false, attempts-1), nil
	}

	// The caller went away; nothing left to fall back for.
	if ctx.Err() != nil {
		return nil, entity.E(entity.KindUpstreamUnavailable, "complete", ctx.Err())
	}
	if r.fallback == nil {
		return nil, err
	}

	r.log.Warn("primary provider exhausted, switching to fallback",
		zap.String("operation", req.Operation),
		zap.String("primary", r.primary.Name()),
		zap.String("fallback", r.fallback.Name()),
		zap.Error(err),
	)

	resp, ferr := r.fallback.Complete(resCtx, req)
	if ferr != nil {
		return nil, &entity.Error{
			Kind: entity.KindOf(ferr),
			Op:   "complete",
			Err:  fmt.Errorf("both primary and fallback failed: %w", errors.Join(err, ferr)),
		}
	}
	return annotate(resp, true, 0), nil
}

func (r *ResilientProvider) executeWithRetry(ctx context.Context, p repository.AIProvider, req entity.CompletionRequest) (*entity.CompletionResult, int, error) {
	var lastErr error
	attempt := 0
	for ; attempt <= r.policy.MaxRetries; attempt++ {
		resp, err := p.Complete(ctx, req)
		if err == nil {
			return resp, attempt + 1, nil
		}
		lastErr = err

		if !r.isRetryable(err) || attempt == r.policy.MaxRetries {
			break
		}

		wait := r.calculateBackoff(attempt)
		select {
		case <-time.After(wait):
			continue
		case <-ctx.Done():
			return nil, attempt + 1, entity.E(entity.KindUpstreamUnavailable, "complete", ctx.Err())
		}
	}
	return nil, attempt + 1, lastErr
}

func (r *ResilientProvider) isRetryable(err error) bool {
	if entity.IsRetryable(err) {
		return true
	}
	if entity.KindOf(err) != entity.KindInternal {
		return false
	}
	msg := strings.ToLower(err.Error())
	// Retry on Rate Limits (429) and Server Errors (5xx)
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "deadline")
}

func (r *ResilientProvider) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.policy.BaseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}

func annotate(resp *entity.CompletionResult, fallback bool, retries int) *entity.CompletionResult {
	if resp.Metadata == nil {
		resp.Metadata = make(map[string]any)
	}
	resp.Metadata["fallback_used"] = fallback
	resp.Metadata["retry_count"] = retries
	return resp
}
