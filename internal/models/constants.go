package models

const (
	AnswerSystemPrompt = `You are a question answering assistant. Use only the provided context to answer the question. If the context does not contain enough information to answer, say so explicitly. Be concise and specific.`

	AnswerPromptTemplate = `Context:
%s

Question: %s

Answer:`
)
