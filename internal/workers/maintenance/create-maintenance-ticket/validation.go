package createmaintenanceticket

import "shopfloor-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"machineId", "issueDescription"},
		Properties: map[string]validation.Property{
			"machineId": {
				Type:        "string",
				Description: "Machine the ticket is raised for",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(64),
			},
			"issueDescription": {
				Type:        "string",
				Description: "Free-text description of the problem",
				MinLength:   intPtr(5),
				MaxLength:   intPtr(2000),
			},
			"reportedBy": {
				Type:        "string",
				Description: "Operator or system that reported the issue",
				MaxLength:   intPtr(100),
			},
			"priority": {
				Type:        "string",
				Description: "Ticket priority",
				Enum:        []string{"low", "medium", "high"},
			},
			"entities": {
				Type:        "object",
				Description: "Extracted entities attached to the ticket",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"ticketId": {
				Type:        "string",
				Description: "Internal ticket identifier",
			},
			"cmmsReference": {
				Type:        "string",
				Description: "Work order reference in the CMMS",
			},
			"status": {
				Type:        "string",
				Description: "Ticket lifecycle status",
			},
			"createdAt": {
				Type:        "string",
				Description: "Timestamp when the ticket was opened",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
