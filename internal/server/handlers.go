package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docqa/internal/apperr"
	"docqa/internal/config"
	"docqa/internal/models"
	"docqa/internal/parser"
)

type handlers struct {
	cfg      *config.Config
	pipeline Runner
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "document Q&A service is running"})
}

// answerQuestions handles POST /qa: a questions file and a document
// file in one multipart request, an ordered list of question/answer
// pairs out.
func (h *handlers) answerQuestions(c *gin.Context) {
	results, err := h.process(c)
	if err != nil {
		kind := apperr.KindOf(err)
		log.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("kind", string(kind)).
			Msg("Q&A request failed")
		c.JSON(kind.HTTPStatus(), models.ErrorResponse{
			ErrorCode: string(kind),
			Message:   apperr.MessageOf(err),
		})
		return
	}
	c.JSON(http.StatusOK, results)
}

// process reads both uploads, parses the questions, and runs the
// pipeline. All input validation happens before any provider call.
func (h *handlers) process(c *gin.Context) ([]models.QAResult, error) {
	questionsUpload, err := h.readUpload(c, "questions_file")
	if err != nil {
		return nil, err
	}
	documentUpload, err := h.readUpload(c, "document_file")
	if err != nil {
		return nil, err
	}

	questions, err := parser.LoadQuestions(questionsUpload)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("request_id", GetRequestID(c)).
		Str("document", documentUpload.Filename).
		Int("questions", len(questions)).
		Msg("Starting Q&A processing")

	return h.pipeline.Run(c.Request.Context(), documentUpload, questions)
}

func (h *handlers) readUpload(c *gin.Context, field string) (models.Upload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return models.Upload{}, apperr.Wrap(apperr.KindMissingFile,
			fmt.Sprintf("missing upload field %q", field), err)
	}
	if fileHeader.Size > h.cfg.Server.MaxUploadBytes {
		return models.Upload{}, apperr.New(apperr.KindFileTooLarge,
			fmt.Sprintf("upload %q exceeds the %d byte limit", field, h.cfg.Server.MaxUploadBytes))
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return models.Upload{}, apperr.Wrap(apperr.KindCorruptFile,
			fmt.Sprintf("failed to read upload %q", field), err)
	}
	return models.Upload{Filename: fileHeader.Filename, Data: data}, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
