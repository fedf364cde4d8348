package notifysafetyevent

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	commonaws "shopfloor-workers/internal/common/aws"
	"shopfloor-workers/internal/common/errors"
	"shopfloor-workers/internal/common/logger"
)

// Interfaces over the AWS clients for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var severityRank = map[string]int{"low": 0, "medium": 1, "high": 2}

type supervisorContact struct {
	Name  string
	Email string
	Phone string
}

type Service struct {
	config    *Config
	logger    logger.Logger
	db        *sql.DB
	sesClient SESService
	snsClient SNSService
	templates map[string]map[string]string
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	sesClient := deps.SES
	snsClient := deps.SNS

	if sesClient == nil {
		client, err := commonaws.NewSESClient(context.Background(), config.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("initialize SES client: %w", err)
		}
		sesClient = client
	}
	if snsClient == nil {
		client, err := commonaws.NewSNSClient(context.Background(), config.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("initialize SNS client: %w", err)
		}
		snsClient = client
	}

	return &Service{
		config:    config,
		logger:    deps.Logger,
		db:        deps.DB,
		sesClient: sesClient,
		snsClient: snsClient,
		templates: loadTemplates(),
	}, nil
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	template, exists := s.templates[input.EventType]
	if !exists {
		return nil, fmt.Errorf("no template for event type: %s", input.EventType)
	}

	area := input.Area
	if area == "" {
		area = "general"
	}
	severity := defaultSeverity(input)

	contact, err := s.lookupSupervisor(ctx, area)
	if err != nil {
		return nil, errors.NewNotificationSendFailedError(input.EventType, err)
	}

	data := map[string]interface{}{
		"eventType": input.EventType,
		"area":      area,
		"severity":  severity,
		"machineId": input.MachineID,
	}
	if contact != nil {
		data["supervisor"] = contact.Name
	}
	for k, v := range input.Details {
		data[k] = v
	}

	subject := renderTemplate(template["subject"], data)
	body := renderTemplate(template["body"], data)

	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	attempted := 0
	delivered := make([]string, 0, 3)
	var lastErr error

	if s.config.EmailEnabled && contact != nil && contact.Email != "" {
		attempted++
		if err := s.sendEmail(ctx, contact.Email, subject, body); err != nil {
			lastErr = err
			s.logger.Warn("Safety email send failed", map[string]interface{}{
				"area":  area,
				"error": err.Error(),
			})
		} else {
			delivered = append(delivered, "email")
		}
	}

	if s.config.SMSEnabled && contact != nil && contact.Phone != "" && meetsThreshold(severity, s.config.SeverityThreshold) {
		attempted++
		if err := s.sendSMS(ctx, contact.Phone, body); err != nil {
			lastErr = err
			s.logger.Warn("Safety SMS send failed", map[string]interface{}{
				"area":  area,
				"error": err.Error(),
			})
		} else {
			delivered = append(delivered, "sms")
		}
	}

	// Blocked responses always go out on the plant-wide safety topic.
	if input.EventType == EventResponseBlocked && s.config.SafetyTopicARN != "" {
		attempted++
		if err := s.publishTopic(ctx, subject, body); err != nil {
			lastErr = err
			s.logger.Warn("Safety topic publish failed", map[string]interface{}{
				"topicArn": s.config.SafetyTopicARN,
				"error":    err.Error(),
			})
		} else {
			delivered = append(delivered, "topic")
		}
	}

	if attempted > 0 && len(delivered) == 0 {
		return nil, errors.NewNotificationSendFailedError(input.EventType, lastErr)
	}

	status := StatusDisabled
	if len(delivered) > 0 {
		status = StatusSent
	} else {
		s.logger.Warn("No notification channel available", map[string]interface{}{
			"eventType": input.EventType,
			"area":      area,
		})
	}

	s.recordNotification(ctx, notificationID, input, area, delivered)

	s.logger.Info("Safety notification processed", map[string]interface{}{
		"notificationId": notificationID,
		"eventType":      input.EventType,
		"status":         status,
		"channels":       delivered,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		Channels:       delivered,
		SentAt:         sentAt,
	}, nil
}

// lookupSupervisor resolves the on-call contact for an area, falling back to
// the general contact when the area has none. A missing contact is not an
// error, it just removes the direct channels.
func (s *Service) lookupSupervisor(ctx context.Context, area string) (*supervisorContact, error) {
	if s.db == nil {
		return nil, nil
	}

	contact, err := s.querySupervisor(ctx, area)
	if err == sql.ErrNoRows && area != "general" {
		contact, err = s.querySupervisor(ctx, "general")
	}
	if err == sql.ErrNoRows {
		s.logger.Warn("No supervisor contact configured", map[string]interface{}{
			"area": area,
		})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *Service) querySupervisor(ctx context.Context, area string) (*supervisorContact, error) {
	var c supervisorContact
	err := s.db.QueryRowContext(ctx,
		`SELECT name, email, phone FROM supervisor_contacts WHERE area = $1`, area).
		Scan(&c.Name, &c.Email, &c.Phone)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.config.FromEmail),
	})
	return err
}

func (s *Service) sendSMS(ctx context.Context, to, message string) error {
	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

func (s *Service) publishTopic(ctx context.Context, subject, message string) error {
	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.config.SafetyTopicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	return err
}

func (s *Service) recordNotification(ctx context.Context, notificationID string, input *Input, area string, channels []string) {
	if s.db == nil {
		return
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notification_log (notification_id, event_type, area, machine_id, channels, sent_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		notificationID, input.EventType, area, input.MachineID, strings.Join(channels, ","), time.Now().UTC())
	if err != nil {
		s.logger.Warn("Notification log write failed", map[string]interface{}{
			"notificationId": notificationID,
			"error":          err.Error(),
		})
	}
}

func (s *Service) TestConnection(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func defaultSeverity(input *Input) string {
	if input.Severity != "" {
		return input.Severity
	}
	if input.EventType == EventResponseBlocked {
		return "high"
	}
	return "medium"
}

func meetsThreshold(severity, threshold string) bool {
	return severityRank[severity] >= severityRank[threshold]
}

// renderTemplate fills {{placeholder}} slots from data and strips any that
// remain unmatched.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if i, ok := v.(int); ok {
			value = fmt.Sprintf("%d", i)
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func loadTemplates() map[string]map[string]string {
	return map[string]map[string]string{
		EventResponseBlocked: {
			"subject": "Safety alert: assistant response blocked",
			"body":    "A worker request in {{area}} was blocked by the safety screen. Machine: {{machineId}}. Severity: {{severity}}. Review the conversation log before clearing the block.",
		},
		EventConfirmationRequired: {
			"subject": "Supervisor confirmation requested in {{area}}",
			"body":    "The assistant is holding a {{severity}} severity request in {{area}} until a supervisor confirms. Machine: {{machineId}}.",
		},
		EventTicketCreated: {
			"subject": "Maintenance ticket opened for {{machineId}}",
			"body":    "A maintenance ticket was opened from the shop floor assistant. Area: {{area}}. Severity: {{severity}}. Ticket: {{ticketId}}.",
		},
	}
}
