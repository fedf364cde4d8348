// internal/workers/conversation/build-answer/models.go
package buildanswer

import "shopfloor-workers/internal/models"

const (
	AnswerSourceClarification = "clarification"
	AnswerSourceKnowledge     = "knowledge"
	AnswerSourceFallback      = "fallback"
)

type Input struct {
	Question              string                 `json:"question"`
	IntentAnalysis        models.IntentAnalysis  `json:"intentAnalysis"`
	Entities              map[string]string      `json:"entities"`
	KnowledgeData         map[string]interface{} `json:"knowledgeData"`
	ClarificationNeeded   bool                   `json:"clarificationNeeded"`
	ClarificationQuestion string                 `json:"clarificationQuestion,omitempty"`
}

type Output struct {
	DraftAnswer  string `json:"draftAnswer"`
	AnswerSource string `json:"answerSource"`
	TemplateID   string `json:"templateId"`
}

// AnswerTemplate is a per-intent draft template. Placeholders refer to
// entities or flattened knowledge data keys.
type AnswerTemplate struct {
	ID       string
	Template string
}
