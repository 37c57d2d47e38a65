package rag

import (
	"context"

	"github.com/rs/zerolog/log"

	"docqa/internal/config"
	"docqa/internal/embedding"
	"docqa/internal/llmservice"
	"docqa/internal/models"
	"docqa/internal/parser"
	"docqa/internal/vectorstore"
)

// Pipeline drives one Q&A request: load and chunk the document, build
// the per-request vector index, then retrieve and generate per
// question in input order.
type Pipeline struct {
	embedder  embedding.Embedder
	generator llmservice.Generator
	cfg       *config.Config
}

func NewPipeline(embedder embedding.Embedder, generator llmservice.Generator, cfg *config.Config) *Pipeline {
	return &Pipeline{embedder: embedder, generator: generator, cfg: cfg}
}

// Run executes the pipeline for one document and its questions. The
// index it builds never escapes this call. The first error fails the
// whole request; no partial results are returned.
func (p *Pipeline) Run(ctx context.Context, document models.Upload, questions []string) ([]models.QAResult, error) {
	chunks, err := parser.LoadDocument(document, p.cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("document", document.Filename).Int("chunks", len(chunks)).Msg("Loaded document")

	results := make([]models.QAResult, 0, len(questions))
	if len(questions) == 0 {
		return results, nil
	}

	vectors, err := embedding.EmbedChunks(ctx, p.embedder, chunks)
	if err != nil {
		return nil, err
	}

	index, err := vectorstore.Build(ctx, chunks, vectors)
	if err != nil {
		return nil, err
	}
	log.Info().Int("entries", len(chunks)).Msg("Built vector index")

	for _, question := range questions {
		queryVector, err := embedding.EmbedQuery(ctx, p.embedder, question)
		if err != nil {
			return nil, err
		}

		hits, err := index.Search(ctx, queryVector, p.cfg.RAG.TopK)
		if err != nil {
			return nil, err
		}

		contexts := make([]string, len(hits))
		for i, hit := range hits {
			contexts[i] = hit.Chunk.Content
		}

		answer, err := p.generator.Answer(ctx, question, contexts)
		if err != nil {
			return nil, err
		}

		results = append(results, models.QAResult{Question: question, Answer: answer})
	}

	log.Info().Int("questions", len(questions)).Msg("Answered all questions")
	return results, nil
}
