package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"angry anywhere", "The customer seems angry about billing", SentimentNegative},
		{"upper case", "ANGRY customer", SentimentNegative},
		{"negative keyword", "Sentiment: Negative", SentimentNegative},
		{"negative beats positive", "positive start but negative overall", SentimentNegative},
		{"positive", "Overall tone is Positive.", SentimentPositive},
		{"neutral", "The customer asks about shipping times.", SentimentNeutral},
		{"empty", "", SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySentiment(tt.text))
		})
	}
}
