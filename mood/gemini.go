package mood

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"mood-tagger/analysis"
	"mood-tagger/models"
)

// Client talks to the Gemini API to rate a track's mood from its feature
// vector. Errors here are fatal for the file being processed, never for
// the whole batch.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini client from the GEMINI_API_KEY environment
// variable.
func NewClient(ctx context.Context, model string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Model returns the configured model identifier, recorded alongside the
// stored ratings.
func (c *Client) Model() string {
	return c.model
}

// RateMood renders the feature vector into the prompt block, asks the
// model for per-dimension ratings and parses its response. The response
// always carries one rating per dimension; dimensions the model answered
// badly come back as 0.
func (c *Client) RateMood(ctx context.Context, fileKey string, v *analysis.FeatureVector) (*models.MoodTags, error) {
	prompt := BuildPrompt(fileKey, v)
	userContent := genai.NewContentFromText(prompt, genai.RoleUser)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.2)),
		MaxOutputTokens: int32(500),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{userContent}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model %s", c.model)
	}

	return &models.MoodTags{
		FileKey:    fileKey,
		Ratings:    ParseRatings(text),
		AnalyzedAt: time.Now().UTC(),
		Model:      c.model,
	}, nil
}
