// Package gemini wraps the Google GenAI SDK for vision-model calls.
package gemini

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client sends an instruction prompt plus image bytes to a vision-capable
// model and returns the raw text reply.
type Client interface {
	GenerateFromImage(ctx context.Context, prompt string, image []byte, mime string) (string, error)
}

type genaiClient struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. An empty model selects the default.
func NewClient(ctx context.Context, apiKey, model string) (Client, error) {
	if model == "" {
		model = defaultModel
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	return &genaiClient{client: c, model: model}, nil
}

// GenerateFromImage runs a deterministic (temperature 0) generation over the
// prompt and image.
func (c *genaiClient) GenerateFromImage(ctx context.Context, prompt string, image []byte, mime string) (string, error) {
	if mime == "" {
		mime = DetectMIME(image)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mime),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	text := resp.Text()
	if text == "" {
		return "", eris.New("gemini: empty response")
	}
	return text, nil
}

// DetectMIME sniffs the content type of raw image bytes.
func DetectMIME(data []byte) string {
	return http.DetectContentType(data)
}
