// internal/workers/conversation/sanitize-response/models.go
package sanitizeresponse

type Input struct {
	DraftAnswer string `json:"draftAnswer"`
	SafetyTopic string `json:"safetyTopic,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
}

type Output struct {
	FinalResponse   string `json:"finalResponse"`
	DisclaimerAdded bool   `json:"disclaimerAdded"`
	RespondedAt     string `json:"respondedAt"`
	ResponseVersion string `json:"responseVersion"`
}
