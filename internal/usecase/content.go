package usecase

import (
	"context"
	"fmt"
	"sphere-core/internal/domain/entity"
	"strings"
)

var lengthBuckets = map[string]string{
	"short":  "200-300 words",
	"medium": "500-700 words",
	"long":   "1000-1500 words",
}

var contentTypeDirectives = map[string][]string{
	"blog": {
		"Include catchy headline",
		"Add meta description",
		"Use H2/H3 headings",
		"Include introduction and conclusion",
	},
	"social": {
		"Keep it concise and engaging",
		"Include relevant hashtags",
		"Add emoji where appropriate",
		"End with strong CTA",
	},
	"email": {
		"Subject line",
		"Personalized greeting",
		"Clear value proposition",
		"Strong CTA",
		"Professional signature",
	},
	"product_description": {
		"Highlight key features and benefits",
		"Address pain points",
		"Include specifications",
		"Add compelling CTA",
	},
}

type GeneratedContent struct {
	Text        string
	WordCount   int
	ContentType string
}

func contentSpec(contentType string) ToolSpec {
	return ToolSpec{
		Tool:        ToolContent,
		Operation:   "generate_content",
		Persona:     fmt.Sprintf("You are a professional content writer skilled in creating %s content that engages and converts.", contentType),
		Temperature: 0.8,
		MaxTokens:   2000,
	}
}

func (t *Toolkit) GenerateContent(ctx context.Context, req entity.ContentRequest) (*GeneratedContent, error) {
	resp, err := t.orchestrator.Execute(ctx, contentSpec(req.ContentType), renderContent(req))
	if err != nil {
		return nil, err
	}
	return &GeneratedContent{
		Text:        resp.Content,
		WordCount:   wordCount(resp.Content),
		ContentType: req.ContentType,
	}, nil
}

func renderContent(req entity.ContentRequest) string {
	length, ok := lengthBuckets[req.Length]
	if !ok {
		length = lengthBuckets["medium"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Generate %s content with these specifications:

Topic: %s
Tone: %s
Length: %s
Keywords: %s
Target Audience: %s

Requirements:
- Write in %s tone
- Make it engaging and valuable
- Include relevant keywords naturally
- Optimize for SEO (if blog/website content)
- Add clear call-to-action at the end
- Use proper formatting (headings, bullets where appropriate)

Content Type Specific:
`,
		req.ContentType,
		req.Topic,
		req.Tone,
		length,
		orDefault(req.Keywords, "Not specified"),
		orDefault(req.TargetAudience, "General audience"),
		req.Tone,
	)
	for _, d := range contentTypeDirectives[req.ContentType] {
		b.WriteString("- ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}
