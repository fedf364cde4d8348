package notifysafetyevent

import "shopfloor-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"eventType"},
		Properties: map[string]validation.Property{
			"eventType": {
				Type:        "string",
				Description: "Safety event that triggered the notification",
				Enum:        []string{EventResponseBlocked, EventConfirmationRequired, EventTicketCreated},
			},
			"area": {
				Type:        "string",
				Description: "Plant area used to pick the supervisor contact",
				MaxLength:   intPtr(100),
			},
			"severity": {
				Type:        "string",
				Description: "Event severity, defaults per event type",
				Enum:        []string{"low", "medium", "high"},
			},
			"machineId": {
				Type:        "string",
				Description: "Machine the event relates to",
				MaxLength:   intPtr(64),
			},
			"details": {
				Type:        "object",
				Description: "Extra values merged into the message templates",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"notificationId": {
				Type:        "string",
				Description: "Identifier of the notification attempt",
			},
			"status": {
				Type:        "string",
				Description: "Delivery state",
				Enum:        []string{StatusSent, StatusDisabled},
			},
			"channels": {
				Type:        "array",
				Description: "Channels the notification went out on",
				Items:       &validation.Property{Type: "string"},
			},
			"sentAt": {
				Type:        "string",
				Description: "Timestamp of the delivery attempt",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
