package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docqa/internal/apperr"
	"docqa/internal/config"
	"docqa/internal/models"
)

const defaultPageNumber = 1

// LoadDocument extracts text from the uploaded document bytes and
// splits it into ordered chunks. Only PDF and JSON are accepted.
func LoadDocument(doc models.Upload, cfg *config.Config) ([]models.Chunk, error) {
	if len(bytes.TrimSpace(doc.Data)) == 0 {
		return nil, apperr.New(apperr.KindEmptyDocument, "document file is empty")
	}

	ext := strings.ToLower(filepath.Ext(doc.Filename))
	switch ext {
	case ".pdf":
		return parsePDF(doc.Data, cfg)
	case ".json":
		return parseJSONDocument(doc.Data, cfg)
	default:
		return nil, apperr.New(apperr.KindUnsupportedFormat,
			fmt.Sprintf("unsupported document format: %q (expected .pdf or .json)", ext))
	}
}

func parsePDF(data []byte, cfg *config.Config) ([]models.Chunk, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindCorruptFile, "failed to parse PDF", err)
	}

	var chunks []models.Chunk
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindCorruptFile,
				fmt.Sprintf("failed to extract text from page %d", i), err)
		}
		chunks = append(chunks, chunksFromText(pageText, i, cfg)...)
	}

	if len(chunks) == 0 {
		return nil, apperr.New(apperr.KindEmptyDocument, "document contains no extractable text")
	}
	return chunks, nil
}

func parseJSONDocument(data []byte, cfg *config.Config) ([]models.Chunk, error) {
	text, err := renderJSONText(data)
	if err != nil {
		return nil, err
	}

	chunks := chunksFromText(text, defaultPageNumber, cfg)
	if len(chunks) == 0 {
		return nil, apperr.New(apperr.KindEmptyDocument, "document contains no extractable text")
	}
	return chunks, nil
}

// renderJSONText flattens a JSON document into one text blob: a list
// becomes its items joined by blank lines, an object is pretty-printed,
// a bare scalar becomes its string form.
func renderJSONText(data []byte) (string, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return "", apperr.Wrap(apperr.KindCorruptFile, "failed to parse JSON document", err)
	}

	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
				continue
			}
			rendered, err := json.MarshalIndent(item, "", "  ")
			if err != nil {
				return "", apperr.Wrap(apperr.KindCorruptFile, "failed to render JSON document", err)
			}
			parts = append(parts, string(rendered))
		}
		return strings.Join(parts, "\n\n"), nil
	case map[string]any:
		rendered, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", apperr.Wrap(apperr.KindCorruptFile, "failed to render JSON document", err)
		}
		return string(rendered), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// chunksFromText splits one page of text into chunks, numbering them
// in order of appearance.
func chunksFromText(text string, pageNumber int, cfg *config.Config) []models.Chunk {
	var chunks []models.Chunk
	for i, piece := range splitText(text, cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap) {
		chunks = append(chunks, models.Chunk{
			Content:    piece,
			PageNumber: pageNumber,
			ChunkID:    i + 1,
		})
	}
	return chunks
}
