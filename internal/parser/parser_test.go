package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"docqa/internal/apperr"
	"docqa/internal/config"
	"docqa/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		RAG: config.RAGConfig{ChunkSize: 1000, ChunkOverlap: 200, TopK: 5},
	}
}

func assertKind(t *testing.T, err error, want apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %s, got nil", want)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if appErr.Kind != want {
		t.Fatalf("expected kind %s, got %s", want, appErr.Kind)
	}
}

func TestLoadDocumentUnsupportedFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "plain text", filename: "notes.txt"},
		{name: "word document", filename: "report.docx"},
		{name: "no extension", filename: "document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDocument(models.Upload{Filename: tt.filename, Data: []byte("content")}, testConfig())
			assertKind(t, err, apperr.KindUnsupportedFormat)
		})
	}
}

func TestLoadDocumentEmptyFile(t *testing.T) {
	for _, filename := range []string{"doc.pdf", "doc.json", "doc.txt"} {
		t.Run(filename, func(t *testing.T) {
			_, err := LoadDocument(models.Upload{Filename: filename, Data: nil}, testConfig())
			assertKind(t, err, apperr.KindEmptyDocument)
		})
	}
}

// buildSinglePagePDF assembles a minimal one-page PDF with the given
// text, computing the cross-reference offsets as it writes.
func buildSinglePagePDF(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	offsets := make([]int, 6)

	buf.WriteString("%PDF-1.4\n")
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	writeObj(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(5, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes()
}

func TestLoadDocumentValidPDF(t *testing.T) {
	fact := "Effective Date: January 1, 2024"
	data := buildSinglePagePDF(t, fact)

	chunks, err := LoadDocument(models.Upload{Filename: "doc.pdf", Data: data}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks from a valid PDF")
	}
	if !strings.Contains(joinChunks(chunks), fact) {
		t.Errorf("chunks missing the page text: %q", joinChunks(chunks))
	}
	for i, chunk := range chunks {
		if chunk.PageNumber != 1 {
			t.Errorf("chunk %d has page %d, want 1", i, chunk.PageNumber)
		}
		if chunk.ChunkID != i+1 {
			t.Errorf("chunk %d has ID %d, want %d", i, chunk.ChunkID, i+1)
		}
	}
}

func TestLoadDocumentCorruptPDF(t *testing.T) {
	_, err := LoadDocument(models.Upload{Filename: "doc.pdf", Data: []byte("not a pdf at all")}, testConfig())
	assertKind(t, err, apperr.KindCorruptFile)
}

func TestLoadDocumentJSONListOfStrings(t *testing.T) {
	data := []byte(`["The contract starts in March.", "Payment is due in thirty days."]`)
	chunks, err := LoadDocument(models.Upload{Filename: "doc.json", Data: data}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	joined := joinChunks(chunks)
	for _, want := range []string{"The contract starts in March.", "Payment is due in thirty days."} {
		if !strings.Contains(joined, want) {
			t.Errorf("chunks missing %q", want)
		}
	}
}

func TestLoadDocumentJSONObject(t *testing.T) {
	data := []byte(`{"title": "Handbook", "body": "Employees accrue vacation monthly."}`)
	chunks, err := LoadDocument(models.Upload{Filename: "doc.json", Data: data}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := joinChunks(chunks)
	if !strings.Contains(joined, "Employees accrue vacation monthly.") {
		t.Errorf("chunks missing object field text: %q", joined)
	}
}

func TestLoadDocumentJSONListOfObjects(t *testing.T) {
	data := []byte(`[{"section": "1", "text": "First clause."}, {"section": "2", "text": "Second clause."}]`)
	chunks, err := LoadDocument(models.Upload{Filename: "doc.json", Data: data}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := joinChunks(chunks)
	if !strings.Contains(joined, "First clause.") || !strings.Contains(joined, "Second clause.") {
		t.Errorf("chunks missing list item text: %q", joined)
	}
}

func TestLoadDocumentInvalidJSON(t *testing.T) {
	_, err := LoadDocument(models.Upload{Filename: "doc.json", Data: []byte(`{"unclosed": `)}, testConfig())
	assertKind(t, err, apperr.KindCorruptFile)
}

func TestLoadDocumentJSONEmptyList(t *testing.T) {
	_, err := LoadDocument(models.Upload{Filename: "doc.json", Data: []byte(`[]`)}, testConfig())
	assertKind(t, err, apperr.KindEmptyDocument)
}

func TestLoadDocumentChunkOrdering(t *testing.T) {
	// A single long entry must split into multiple ordered chunks.
	data := []byte(`["` + strings.Repeat("clause text ", 500) + `"]`)
	cfg := testConfig()
	cfg.RAG.ChunkSize = 200
	cfg.RAG.ChunkOverlap = 40

	chunks, err := LoadDocument(models.Upload{Filename: "doc.json", Data: data}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkID != i+1 {
			t.Errorf("chunk %d has ID %d, want %d", i, chunk.ChunkID, i+1)
		}
		if chunk.PageNumber != 1 {
			t.Errorf("chunk %d has page %d, want 1", i, chunk.PageNumber)
		}
	}
}

func joinChunks(chunks []models.Chunk) string {
	var b strings.Builder
	for _, chunk := range chunks {
		b.WriteString(chunk.Content)
		b.WriteString("\n")
	}
	return b.String()
}
