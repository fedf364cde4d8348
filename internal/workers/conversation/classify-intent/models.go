// internal/workers/conversation/classify-intent/models.go
package classifyintent

import "shopfloor-workers/internal/models"

type Input struct {
	Question  string                 `json:"question"`
	SessionID string                 `json:"sessionId,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

type Output struct {
	IntentAnalysis        models.IntentAnalysis `json:"intentAnalysis"`
	Entities              map[string]string     `json:"entities"`
	ClarificationNeeded   bool                  `json:"clarificationNeeded"`
	ClarificationQuestion string                `json:"clarificationQuestion,omitempty"`
	DataSources           []string              `json:"dataSources"`
	SafetyTopic           string                `json:"safetyTopic,omitempty"`
}

// Data sources downstream workers fan out to
const (
	SourceMachineDB          = "machine_db"
	SourceDocumentIndex      = "document_index"
	SourceMaintenanceHistory = "maintenance_history"
)
