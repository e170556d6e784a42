package respond

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const completionTimeout = 10 * time.Second

// OpenRouterCompleter calls an OpenAI-compatible chat-completion endpoint
// (OpenRouter in production) to produce a free-text reply.
type OpenRouterCompleter struct {
	client        openaigo.Client
	model         string
	assistantName string
	businessName  string
}

func NewOpenRouterCompleter(baseURL, apiKey, model, assistantName, businessName string) (*OpenRouterCompleter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openrouter: api key is required")
	}
	client := openaigo.NewClient(
		option.WithBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")),
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithHTTPClient(&http.Client{Timeout: completionTimeout}),
		option.WithRequestTimeout(completionTimeout),
	)
	return &OpenRouterCompleter{
		client:        client,
		model:         model,
		assistantName: assistantName,
		businessName:  businessName,
	}, nil
}

func (o *OpenRouterCompleter) Complete(ctx context.Context, req Request) (string, error) {
	system := fmt.Sprintf("Tu es %s, employée digitale de %s à Paris.", o.assistantName, o.businessName)
	prompt := fmt.Sprintf(`
Tu es %s, l'employée digitale de %s, une boutique de vape à Paris.
Réponds de manière professionnelle, amicale et en français.

CONTEXTE: Client: %s
MESSAGE: %s
INTENTION: %s

Réponds comme %s, l'employée de %s. Sois professionnelle, amicale et utile.
`, o.assistantName, o.businessName, req.ContactName, req.Text, req.Intent, o.assistantName, o.businessName)

	resp, err := o.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(o.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(system),
			openaigo.UserMessage(prompt),
		},
		MaxTokens:   openaigo.Int(150),
		Temperature: openaigo.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openrouter completion: no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
