package createmaintenanceticket

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfloor-workers/internal/common/cmms"
	"shopfloor-workers/internal/common/errors"
	"shopfloor-workers/internal/common/logger"
)

type Service struct {
	config     *Config
	logger     logger.Logger
	db         *sql.DB
	cmmsClient *cmms.Client
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	cmmsClient := deps.CMMS
	if cmmsClient == nil && config.CMMSEnabled && config.CMMSBaseURL != "" {
		cmmsClient = cmms.NewClient(config.CMMSBaseURL, config.CMMSAPIToken, config.CMMSTimeout)
	}

	return &Service{
		config:     config,
		logger:     deps.Logger,
		db:         deps.DB,
		cmmsClient: cmmsClient,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	normalized := normalizeIssue(input.IssueDescription)

	s.logger.Info("Creating maintenance ticket", map[string]interface{}{
		"machineId": input.MachineID,
		"priority":  priority,
	})

	// Duplicate guard: one open ticket per machine and normalized issue.
	var existingID string
	err := s.db.QueryRowContext(ctx,
		`SELECT ticket_id FROM maintenance_tickets WHERE machine_id = $1 AND issue_normalized = $2 AND status = 'open' LIMIT 1`,
		input.MachineID, normalized,
	).Scan(&existingID)
	if err == nil {
		s.logger.Warn("Open ticket already exists", map[string]interface{}{
			"machineId": input.MachineID,
			"ticketId":  existingID,
		})
		return nil, errors.NewDuplicateTicketError(input.MachineID)
	}
	if err != sql.ErrNoRows {
		return nil, errors.NewTicketCreateFailedError(err)
	}

	ticketID := uuid.New().String()
	createdAt := time.Now().UTC()

	details, err := json.Marshal(ticketDetails(input))
	if err != nil {
		return nil, errors.NewTicketCreateFailedError(err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO maintenance_tickets (ticket_id, machine_id, issue_description, issue_normalized, priority, reported_by, status, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 'open', $7, $8)`,
		ticketID, input.MachineID, input.IssueDescription, normalized, priority, input.ReportedBy, details, createdAt,
	)
	if err != nil {
		return nil, errors.NewTicketCreateFailedError(err)
	}

	cmmsRef := s.forwardToCMMS(ctx, ticketID, input, priority)

	s.recordAudit(ctx, ticketID, input.ReportedBy)

	s.logger.Info("Maintenance ticket created", map[string]interface{}{
		"ticketId":      ticketID,
		"machineId":     input.MachineID,
		"cmmsReference": cmmsRef,
	})

	return &Output{
		TicketID:      ticketID,
		CMMSReference: cmmsRef,
		Status:        "open",
		CreatedAt:     createdAt,
	}, nil
}

// forwardToCMMS mirrors the ticket into the plant CMMS. The ticket is already
// persisted at this point, so a failed forward only loses the reference.
func (s *Service) forwardToCMMS(ctx context.Context, ticketID string, input *Input, priority string) string {
	if s.cmmsClient == nil {
		return ""
	}

	ref, err := s.cmmsClient.CreateWorkOrder(ctx, &cmms.WorkOrder{
		MachineID:   input.MachineID,
		Title:       workOrderTitle(input.IssueDescription),
		Description: input.IssueDescription,
		Priority:    priority,
		RequestedBy: input.ReportedBy,
		ExternalRef: ticketID,
	})
	if err != nil {
		s.logger.Warn("CMMS work order forwarding failed", map[string]interface{}{
			"ticketId": ticketID,
			"error":    err.Error(),
		})
		return ""
	}

	return ref
}

func (s *Service) recordAudit(ctx context.Context, ticketID, actor string) {
	if actor == "" {
		actor = "assistant"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ticket_audit (ticket_id, action, actor, occurred_at) VALUES ($1, 'created', $2, $3)`,
		ticketID, actor, time.Now().UTC(),
	)
	if err != nil {
		s.logger.Warn("Ticket audit write failed", map[string]interface{}{
			"ticketId": ticketID,
			"error":    err.Error(),
		})
	}
}

func ticketDetails(input *Input) map[string]interface{} {
	details := map[string]interface{}{
		"source": "assistant",
	}
	if len(input.Entities) > 0 {
		details["entities"] = input.Entities
	}
	return details
}

// normalizeIssue collapses whitespace and case so near-identical reports of
// the same problem hit the duplicate guard.
func normalizeIssue(issue string) string {
	return strings.ToLower(strings.Join(strings.Fields(issue), " "))
}

func workOrderTitle(issue string) string {
	title := strings.Join(strings.Fields(issue), " ")
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	return title
}

func (s *Service) TestConnection(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("ticket database not configured")
	}
	return s.db.PingContext(ctx)
}
