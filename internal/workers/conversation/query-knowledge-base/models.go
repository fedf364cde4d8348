// internal/workers/conversation/query-knowledge-base/models.go
package queryknowledgebase

import "shopfloor-workers/internal/models"

type Input struct {
	Question       string                `json:"question"`
	IntentAnalysis models.IntentAnalysis `json:"intentAnalysis"`
	Entities       map[string]string     `json:"entities"`
	DataSources    []string              `json:"dataSources"`
}

type Output struct {
	KnowledgeData  map[string]interface{} `json:"knowledgeData"`
	SourcesQueried []string               `json:"sourcesQueried"`
}

// Data sources this worker fans out to
const (
	SourceMachineDB          = "machine_db"
	SourceDocumentIndex      = "document_index"
	SourceMaintenanceHistory = "maintenance_history"
)
