// internal/models/conversation.go
package models

// IntentAnalysis is the classification summary passed between the
// conversation workers as a process variable.
type IntentAnalysis struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
