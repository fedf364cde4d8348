// internal/workers/conversation/check-response-safety/models.go
package checkresponsesafety

type Input struct {
	Question    string `json:"question"`
	DraftAnswer string `json:"draftAnswer"`
}

type Output struct {
	SafetyLevel       string `json:"safetyLevel"`
	SafetyExplanation string `json:"safetyExplanation"`
	Deliverable       bool   `json:"deliverable"`
}
