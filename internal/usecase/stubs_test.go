package usecase

import (
	"context"
	"sphere-core/internal/domain/entity"
	"sync"
)

// stubProvider answers every completion with reply(req) and records what it
// was sent.
type stubProvider struct {
	name  string
	reply func(req entity.CompletionRequest) (*entity.CompletionResult, error)

	mu       sync.Mutex
	requests []entity.CompletionRequest
}

func fixedProvider(content string) *stubProvider {
	return &stubProvider{
		name: "stub",
		reply: func(req entity.CompletionRequest) (*entity.CompletionResult, error) {
			return &entity.CompletionResult{Content: content, Model: req.Model, Provider: "stub", TokenCount: 42}, nil
		},
	}
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(_ context.Context, req entity.CompletionRequest) (*entity.CompletionResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return s.reply(req)
}

func (s *stubProvider) sent() []entity.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.CompletionRequest(nil), s.requests...)
}

func (s *stubProvider) lastPrompt() string {
	reqs := s.sent()
	if len(reqs) == 0 {
		return ""
	}
	return reqs[len(reqs)-1].Prompt
}

type recorderFunc func(ctx context.Context, ev entity.UsageEvent) error

func (f recorderFunc) RecordUsage(ctx context.Context, ev entity.UsageEvent) error { return f(ctx, ev) }

// scriptedProvider returns the scripted errors in order, then succeeds.
type scriptedProvider struct {
	name    string
	errs    []error
	content string

	mu    sync.Mutex
	calls int
}

func (s *scriptedProvider) Name() string { return s.name }

func (s *scriptedProvider) Complete(_ context.Context, req entity.CompletionRequest) (*entity.CompletionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return &entity.CompletionResult{Content: s.content, Model: req.Model, Provider: s.name}, nil
}

func (s *scriptedProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func f64(v float64) *float64 { return &v }
