package notifysafetyevent

import (
	"database/sql"

	"shopfloor-workers/internal/common/logger"
)

// Safety events that trigger a notification.
const (
	EventResponseBlocked      = "response_blocked"
	EventConfirmationRequired = "confirmation_required"
	EventTicketCreated        = "ticket_created"
)

// Delivery states reported back to the process.
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

type Input struct {
	EventType string                 `json:"eventType"`
	Area      string                 `json:"area,omitempty"`
	Severity  string                 `json:"severity,omitempty"`
	MachineID string                 `json:"machineId,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"`
}

// ServiceDependencies carries the external clients the service needs.
// Nil SES or SNS clients are built from the AWS config at startup.
type ServiceDependencies struct {
	DB     *sql.DB
	SES    SESService
	SNS    SNSService
	Logger logger.Logger
}
