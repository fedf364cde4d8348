// internal/assistant/intent/config.go
package intent

// Config holds the keyword tables the classifier matches against. The tables
// are fixed at construction and must not be modified afterwards; with that
// contract every classifier method is safe for concurrent use.
type Config struct {
	// IntentPatterns maps an intent to the lower-case trigger substrings that
	// score for it. Intents absent from the map can only be produced through
	// the unknown fallback.
	IntentPatterns map[Intent][]string

	// EntityPatterns maps an entity kind to the trigger substrings that start
	// an extraction attempt. Trigger order matters: the first trigger that
	// yields a value wins.
	EntityPatterns map[string][]string

	// ClarificationPrompts maps an intent to the follow-up question asked
	// when classification is not confident enough to act. Intents without a
	// prompt leave the question empty and the caller re-prompts generically.
	ClarificationPrompts map[Intent]string
}

// DefaultConfig returns the production keyword tables.
func DefaultConfig() Config {
	return Config{
		IntentPatterns: map[Intent][]string{
			IntentSOPLookup: {
				"show", "procedure", "steps", "how to", "instructions",
				"changeover", "setup", "operation", "guide",
			},
			IntentProductionStatus: {
				"status", "running", "downtime", "oee", "cycle time",
				"how many", "production", "output", "rate",
			},
			IntentMaintenanceRequest: {
				"maintenance", "repair", "broken", "issue", "problem",
				"bearing", "seal", "motor", "help with",
			},
			IntentQualityCheck: {
				"quality", "check", "measure", "inspect", "specification",
				"dimension", "tolerance", "defect",
			},
			IntentSafetyQuery: {
				"safety", "safe", "guard", "danger", "warning", "hazard",
				"ppe", "personal protective",
			},
		},
		EntityPatterns: map[string][]string{
			EntityMachineID:  {"press", "pump", "motor", "compressor", "line"},
			EntityPartNumber: {"part", "component", "product", "item"},
		},
		ClarificationPrompts: map[Intent]string{
			IntentSOPLookup:          "Which machine or process?",
			IntentMaintenanceRequest: "Which equipment needs repair?",
		},
	}
}
