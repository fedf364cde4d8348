// internal/models/notification.go
package models

type SafetyNotification struct {
	ID        string                 `json:"id"`
	EventType string                 `json:"eventType"` // "response_blocked", "confirmation_required", "ticket_created"
	Area      string                 `json:"area"`
	Severity  string                 `json:"severity"` // "low", "medium", "high"
	Channels  []string               `json:"channels"` // "email", "sms", "topic"
	Status    string                 `json:"status"`   // "sent", "failed", "disabled"
	Details   map[string]interface{} `json:"details,omitempty"`
	SentAt    string                 `json:"sentAt"`
}

type NotificationTemplate struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Version string `json:"version"`
}
