// internal/assistant/safety/config.go
package safety

// Config holds the keyword and citation tables the guardrails scan with.
// Fixed at construction; must not be modified afterwards.
type Config struct {
	// ForbiddenKeywords make a response forbidden on first match, scanned in
	// order. Matching is substring containment over the lower-cased text.
	ForbiddenKeywords []string

	// ConfirmationKeywords make a not-already-forbidden response require
	// human confirmation, scanned in order.
	ConfirmationKeywords []string

	// Standards maps a safety topic key to the citation appended when a
	// response is sanitized with that topic.
	Standards map[string]string
}

// DefaultConfig returns the production keyword and citation tables.
func DefaultConfig() Config {
	return Config{
		ForbiddenKeywords: []string{
			"bypass", "disable", "remove", "ignore", "override",
			"safety", "interlock", "guard", "sensor", "alarm",
		},
		ConfirmationKeywords: []string{
			"emergency", "stop", "shutdown", "power off", "restart",
		},
		Standards: map[string]string{
			"lockout_tagout": "OSHA 1910.147 - Lockout/Tagout",
			"guards":         "OSHA 1910.212 - General Requirements for Safety",
			"ppe":            "OSHA 1910 Subpart I - Personal Protective Equipment",
			"emergency":      "ANSI Z535.1 - Safety Color Code",
		},
	}
}
