package vectorstore

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"docqa/internal/models"
)

const collectionName = "document"

// Index is an in-memory nearest-neighbor index over one document's
// chunks. It is built once per request and discarded with it; nothing
// is persisted or shared across requests.
type Index struct {
	collection *chromem.Collection
}

// Result is one retrieved chunk with its similarity to the query.
type Result struct {
	Chunk      models.Chunk
	Similarity float32
}

// Build creates the index from chunks and their precomputed vectors.
// The build is atomic: on any error no index is returned.
func Build(ctx context.Context, chunks []models.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("cannot build an index without chunks")
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunk and vector counts differ: %d vs %d", len(chunks), len(vectors))
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, rejectEmbeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:      fmt.Sprintf("chunk-%d", i+1),
			Content: chunk.Content,
			Metadata: map[string]string{
				"page":  strconv.Itoa(chunk.PageNumber),
				"chunk": strconv.Itoa(chunk.ChunkID),
			},
			Embedding: vectors[i],
		}
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents to collection: %w", err)
	}

	return &Index{collection: collection}, nil
}

// Search returns the topK chunks nearest to the query vector, nearest
// first. When the index holds fewer than topK entries all of them are
// returned without error.
func (idx *Index) Search(ctx context.Context, queryVector []float32, topK int) ([]Result, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	if count := idx.collection.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}

	hits, err := idx.collection.QueryEmbedding(ctx, queryVector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]Result, len(hits))
	for i, hit := range hits {
		page, _ := strconv.Atoi(hit.Metadata["page"])
		chunkID, _ := strconv.Atoi(hit.Metadata["chunk"])
		results[i] = Result{
			Chunk: models.Chunk{
				Content:    hit.Content,
				PageNumber: page,
				ChunkID:    chunkID,
			},
			Similarity: hit.Similarity,
		}
	}
	return results, nil
}

// rejectEmbeddingFunc guards against the collection embedding text on
// its own; every document and query in this index carries a
// precomputed vector.
func rejectEmbeddingFunc(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("index only accepts precomputed embeddings")
}
