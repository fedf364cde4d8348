package createmaintenanceticket

import (
	"database/sql"
	"time"

	"shopfloor-workers/internal/common/cmms"
	"shopfloor-workers/internal/common/logger"
)

type Input struct {
	MachineID        string            `json:"machineId"`
	IssueDescription string            `json:"issueDescription"`
	ReportedBy       string            `json:"reportedBy,omitempty"`
	Priority         string            `json:"priority,omitempty"`
	Entities         map[string]string `json:"entities,omitempty"`
}

type Output struct {
	TicketID      string    `json:"ticketId"`
	CMMSReference string    `json:"cmmsReference,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ServiceDependencies struct {
	DB     *sql.DB
	CMMS   *cmms.Client
	Logger logger.Logger
}
