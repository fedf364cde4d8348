// internal/models/maintenance.go
package models

type MaintenanceTicket struct {
	ID               string                 `json:"id"`
	MachineID        string                 `json:"machineId"`
	IssueDescription string                 `json:"issueDescription"`
	Priority         string                 `json:"priority"` // "low", "medium", "high"
	Status           string                 `json:"status"`   // "open", "in_progress", "closed"
	ReportedBy       string                 `json:"reportedBy,omitempty"`
	Details          map[string]interface{} `json:"details,omitempty"`
	CMMSReference    string                 `json:"cmmsReference,omitempty"`
	CreatedAt        string                 `json:"createdAt"`
	UpdatedAt        string                 `json:"updatedAt"`
}

type MaintenanceEvent struct {
	MachineID   string `json:"machineId"`
	EventType   string `json:"eventType"` // "repair", "inspection", "part_replacement"
	Description string `json:"description"`
	PerformedBy string `json:"performedBy,omitempty"`
	OccurredAt  string `json:"occurredAt"`
}
