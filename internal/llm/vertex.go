package llm

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// VertexClient implements Client for Gemini models served by Vertex AI.
type VertexClient struct {
	client *genai.Client
	config *Config
}

// NewVertexClient creates a Vertex AI client for config.ProjectID and config.Location.
func NewVertexClient(ctx context.Context, config *Config) (*VertexClient, error) {
	if config.ProjectID == "" {
		return nil, fmt.Errorf("vertex project ID is required")
	}
	location := config.Location
	if location == "" {
		location = "us-central1"
	}

	client, err := genai.NewClient(ctx, config.ProjectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexClient{client: client, config: config}, nil
}

func (v *VertexClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	modelName := v.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}
	model := v.client.GenerativeModel(modelName)
	model.SetTemperature(v.config.Temperature)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(8192)
	return model, nil
}

// GenerateContent sends prompt to the tier's model and returns the text answer.
func (v *VertexClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := v.model(tier)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return vertexText(resp)
}

// GenerateJSON asks for an application/json response and strips code fences.
func (v *VertexClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := v.model(tier)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text, err := vertexText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (v *VertexClient) GetModel(tier ModelTier) string {
	return v.config.GetModel(tier)
}

// Close closes the Vertex AI client
func (v *VertexClient) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

func vertexText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}
