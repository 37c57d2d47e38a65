package embedding

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"docqa/internal/apperr"
	"docqa/internal/config"
	"docqa/internal/models"
)

// Embedder produces fixed-dimension vectors for chunk and query text.
// Chunks and queries must share the same embedding space.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder creates an embedder backed by an OpenAI-compatible
// embeddings endpoint.
func NewEmbedder(cfg *config.ProviderConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedChunks generates one vector per chunk. Any provider failure
// aborts the whole batch so a partial result is never returned.
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []models.Chunk) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbeddingProvider, "failed to embed document chunks", err)
	}
	if len(vectors) != len(chunks) {
		return nil, apperr.New(apperr.KindEmbeddingProvider, "embedding provider returned a partial batch")
	}

	log.Debug().Int("chunks", len(chunks)).Msg("Embedded document chunks")
	return vectors, nil
}

// EmbedQuery generates the vector for one question.
func EmbedQuery(ctx context.Context, embedder Embedder, question string) ([]float32, error) {
	vector, err := embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbeddingProvider, "failed to embed question", err)
	}
	return vector, nil
}
