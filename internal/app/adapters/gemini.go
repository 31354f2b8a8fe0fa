package adapters

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/metrics"
)

const (
	geminiModel   = "gemini-2.0-flash"
	geminiTimeout = 30 * time.Second

	describePrompt = "You are an expert in giving information about places. Provide basic, concise information about the place."
)

// GeminiClient wraps the generative-AI inference endpoint. It serves both the
// place-description and the translation boundary; neither retries internally.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: geminiModel, logger: logger}, nil
}

// DescribePlace sends the fixed place-information prompt plus the user input
// to the model. Image bytes, when present, are attached as an inline JPEG
// part. Callers must guarantee at least one of freeText and image is set.
func (g *GeminiClient) DescribePlace(ctx context.Context, freeText string, image []byte) (string, error) {
	l := g.logger.With(zap.String("method", "DescribePlace"))

	parts := []*genai.Part{genai.NewPartFromText(describePrompt + "\n" + freeText)}
	if len(image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(image, "image/jpeg"))
	}

	text, err := g.generate(ctx, parts)
	metrics.ObserveAdapter("gemini_describe", err)
	if err != nil {
		l.Error("Inference failed", zap.Error(err))
		return "", err
	}
	return text, nil
}

// Translate renders text into the target language via the same model. The
// caller falls back to the untranslated text when this fails; Translate never
// needs to be retried here.
func (g *GeminiClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	l := g.logger.With(zap.String("method", "Translate"), zap.String("target", targetLanguage))

	prompt := fmt.Sprintf("Translate the following text to %s. Reply with the translation only.\n\n%s", targetLanguage, text)
	translated, err := g.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)})
	metrics.ObserveAdapter("gemini_translate", err)
	if err != nil {
		l.Warn("Translation failed", zap.Error(err))
		return "", fmt.Errorf("translation to %s failed: %w", targetLanguage, err)
	}
	return translated, nil
}

func (g *GeminiClient) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", models.ErrServiceUnavailable)
	}

	text := response.Text()
	if text == "" {
		return "", fmt.Errorf("no candidate text in response: %w", models.ErrEmptyResponse)
	}
	return text, nil
}
