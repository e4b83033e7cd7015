package wordlist

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiRegion = "europe-west1"
	defaultGeminiModel  = "gemini-2.5-flash"
)

const themePrompt = `Generate a word list for a word-search puzzle.

Theme: %s
Language: %s
Count: %d words

Rules:
- Single words only, letters only, no spaces, hyphens or digits.
- Between 3 and %d letters long.
- No duplicates.
- Reply ONLY with JSON of the form {"words": ["...", "..."]}, no commentary or markdown.`

// GeminiSource generates a themed word list with Gemini on Vertex AI
type GeminiSource struct {
	client    *genai.Client
	modelName string

	Theme    string
	Language string
	Count    int
	MaxLen   int
}

// NewGeminiSource creates a source using Application Default Credentials
func NewGeminiSource(ctx context.Context, projectID, region, theme string) (*GeminiSource, error) {
	if region == "" {
		region = defaultGeminiRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiSource{
		client:    client,
		modelName: defaultGeminiModel,
		Theme:     theme,
		Language:  "German",
		Count:     60,
		MaxLen:    12,
	}, nil
}

// Prompt returns the request text sent to the model
func (g *GeminiSource) Prompt() string {
	return fmt.Sprintf(themePrompt, g.Theme, g.Language, g.Count, g.MaxLen)
}

// Words asks the model for a themed list
func (g *GeminiSource) Words(ctx context.Context) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: g.Prompt()}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseGeminiResponse(resp.Text())
}

func (g *GeminiSource) String() string {
	return "gemini:" + g.Theme
}

func parseGeminiResponse(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	words, err := Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parse gemini response: %w\nraw response: %s", err, text)
	}
	return words, nil
}
