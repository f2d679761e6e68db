package entity

import "time"

// CompletionRequest is what the gateway sends to a completion service:
// one persona (system) message, one rendered prompt (user) message and
// fixed sampling parameters.
type CompletionRequest struct {
	Operation   string  `json:"operation"`
	Model       string  `json:"model"`
	Persona     string  `json:"persona"`
	Prompt      string  `json:"prompt"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type CompletionResult struct {
	Content    string         `json:"content"`
	Model      string         `json:"model"`    // Which model actually answered?
	Provider   string         `json:"provider"` // openai, gemini
	TokenCount int            `json:"token_count"`
	Latency    int64          `json:"latency_ms"`
	Metadata   map[string]any `json:"metadata"`
}

// UsageEvent is emitted once per successful completion.
type UsageEvent struct {
	Tool       string
	Operation  string
	Model      string
	Provider   string
	TokenCount int
	Fallback   bool
	At         time.Time
}
