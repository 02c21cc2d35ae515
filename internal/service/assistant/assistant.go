package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemInstruction = `You are a senior personal finance analyst.
Produce only structured financial insights based on the provided data:
a brief financial summary, key observations, potential issues, and clear
recommendations. Call out overspending and poor savings patterns. State any
assumptions made for missing data. Do not give legal or guaranteed
investment advice, do not lecture, no storytelling, no emojis.`

// Service is a stateless passthrough to the hosted model: the query and the
// caller-provided context go in, the generated commentary comes out.
type Service struct {
	client *genai.Client
}

func New(ctx context.Context, apiKey string) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Service{client: client}, nil
}

// FinanceInsights asks the model for commentary on the query, optionally
// grounded on the user's financial context (e.g. a dashboard snapshot).
func (s *Service) FinanceInsights(ctx context.Context, query string, userContext map[string]interface{}) (string, error) {
	ctxBlock := "none"
	if len(userContext) > 0 {
		data, err := json.MarshalIndent(userContext, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode user context: %w", err)
		}
		ctxBlock = string(data)
	}

	prompt := fmt.Sprintf("USER QUERY:\n%s\n\nUSER CONTEXT:\n%s", query, ctxBlock)

	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate insights: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
