package llmservice

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"docqa/internal/apperr"
	"docqa/internal/config"
	"docqa/internal/models"
)

// Generator produces one grounded answer per question.
type Generator interface {
	Answer(ctx context.Context, question string, contexts []string) (string, error)
}

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	llm *openai.LLM
}

func NewClient(cfg *config.ProviderConfig) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.InferenceModel),
		openai.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
	)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm}, nil
}

// Answer builds the retrieval-grounded prompt and makes a single
// completion call. No retry on failure.
func (c *Client) Answer(ctx context.Context, question string, contexts []string) (string, error) {
	prompt := BuildAnswerPrompt(question, contexts)

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: models.AnswerSystemPrompt}},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", apperr.Wrap(apperr.KindGenerationProvider, "failed to generate answer", err)
	}
	if len(res.Choices) == 0 {
		return "", apperr.New(apperr.KindGenerationProvider, "completion returned no choices")
	}

	log.Debug().Str("question", question).Msg("Generated answer")
	return res.Choices[0].Content, nil
}

// BuildAnswerPrompt embeds the retrieved chunks as context and the
// question as the task.
func BuildAnswerPrompt(question string, contexts []string) string {
	var contextBlock strings.Builder
	for _, chunk := range contexts {
		contextBlock.WriteString(chunk)
		contextBlock.WriteString("\n\n")
	}
	return fmt.Sprintf(models.AnswerPromptTemplate, strings.TrimSpace(contextBlock.String()), question)
}
