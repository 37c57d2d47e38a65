package parser

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"docqa/internal/apperr"
	"docqa/internal/models"
)

// LoadQuestions parses the uploaded questions file: a JSON list of
// strings, or of objects carrying a "question" field. An empty list is
// valid and yields no questions.
func LoadQuestions(upload models.Upload) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if ext != ".json" {
		return nil, apperr.New(apperr.KindInvalidQuestions,
			fmt.Sprintf("questions file must be JSON, got %q", ext))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(upload.Data, &items); err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidQuestions,
			"questions file must contain a JSON list", err)
	}

	questions := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			questions = append(questions, s)
			continue
		}
		var obj struct {
			Question string `json:"question"`
		}
		if err := json.Unmarshal(item, &obj); err != nil || obj.Question == "" {
			return nil, apperr.New(apperr.KindInvalidQuestions,
				fmt.Sprintf("question %d is neither a string nor an object with a question field", i+1))
		}
		questions = append(questions, obj.Question)
	}
	return questions, nil
}
