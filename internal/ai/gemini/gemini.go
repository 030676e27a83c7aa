package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	Client     *genai.Client
	FlashModel *genai.GenerativeModel
}

func NewGenAIClient(apiKey, flashModelName string) (*GeminiClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	return &GeminiClient{
		Client:     client,
		FlashModel: client.GenerativeModel(flashModelName),
	}, nil
}

// NewGenAIClients builds one client per API key. Keys that fail to initialize
// are reported together; the clients that did start are still returned.
func NewGenAIClients(apiKeys []string, flashModelName string) ([]*GeminiClient, error) {
	clients := make([]*GeminiClient, 0, len(apiKeys))
	var errs []error
	for i, key := range apiKeys {
		client, err := NewGenAIClient(key, flashModelName)
		if err != nil {
			errs = append(errs, fmt.Errorf("key[%d]: %w", i, err))
			continue
		}
		clients = append(clients, client)
	}
	return clients, errors.Join(errs...)
}

// SendText sends a text prompt to the flash model and returns the plain text
// reply with all text parts joined.
func (g *GeminiClient) SendText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.FlashModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content returned from AI")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", fmt.Errorf("response has no text part, received %T", resp.Candidates[0].Content.Parts[0])
	}
	return answer, nil
}

func (g *GeminiClient) Close() error {
	return g.Client.Close()
}

// SendTextWithRetry sends prompt through the selector, failing over between clients.
func SendTextWithRetry(ctx context.Context, prompt string, selector *GeminiClientSelector) (string, error) {
	var result string

	err := selector.Call(func(client *GeminiClient, _ int) error {
		resp, err := client.SendText(ctx, prompt)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return "", err
	}

	return result, nil
}
