package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"docqa/internal/apperr"
)

// The form UI is a thin client of the same pipeline the /qa endpoint
// drives; it exists so the service can be exercised from a browser.

const uiTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Document Q&amp;A</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
fieldset { margin-bottom: 1rem; border: 1px solid #ccc; }
.error { color: #a00; border: 1px solid #a00; padding: 0.5rem 1rem; }
.qa { border: 1px solid #ddd; margin: 1rem 0; padding: 0.5rem 1rem; }
.qa h3 { margin: 0.25rem 0; }
</style>
</head>
<body>
<h1>Document Q&amp;A</h1>
<p>Upload a questions file (JSON) and a document file (PDF or JSON) to get answers.</p>
<form method="post" action="/ui" enctype="multipart/form-data">
<fieldset>
<legend>Questions file (JSON)</legend>
<input type="file" name="questions_file" accept=".json" required>
</fieldset>
<fieldset>
<legend>Document file (PDF or JSON)</legend>
<input type="file" name="document_file" accept=".pdf,.json" required>
</fieldset>
<button type="submit">Get answers</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{range .Results}}
<div class="qa">
<h3>{{.Question}}</h3>
<div>{{.AnswerHTML}}</div>
</div>
{{end}}
</body>
</html>`

type uiResult struct {
	Question   string
	AnswerHTML template.HTML
}

type uiPage struct {
	Error   string
	Results []uiResult
}

func (h *handlers) showForm(c *gin.Context) {
	c.HTML(http.StatusOK, "ui", uiPage{})
}

func (h *handlers) answerForm(c *gin.Context) {
	results, err := h.process(c)
	if err != nil {
		kind := apperr.KindOf(err)
		c.HTML(kind.HTTPStatus(), "ui", uiPage{Error: apperr.MessageOf(err)})
		return
	}

	page := uiPage{Results: make([]uiResult, len(results))}
	for i, result := range results {
		page.Results[i] = uiResult{
			Question:   result.Question,
			AnswerHTML: renderMarkdown(result.Answer),
		}
	}
	c.HTML(http.StatusOK, "ui", page)
}

// renderMarkdown converts an answer's markdown to HTML; on conversion
// failure the raw text is shown escaped instead.
func renderMarkdown(answer string) template.HTML {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(answer), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(answer))
	}
	return template.HTML(buf.String())
}
