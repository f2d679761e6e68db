package usecase

import "strings"

const (
	SentimentNegative = "negative"
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
)

// ClassifySentiment is a first-match keyword scan over the model's analysis.
// Negative wins over positive; absence of both is neutral.
func ClassifySentiment(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "negative"), strings.Contains(lower, "angry"):
		return SentimentNegative
	case strings.Contains(lower, "positive"):
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}
