// internal/assistant/safety/guardrails.go
package safety

import (
	"fmt"
	"strings"
)

// proceduralWords trigger the generic disclaimer in SanitizeResponse.
// "step" also matches "steps"; matching is substring containment like
// everywhere else in the guardrails.
var proceduralWords = []string{"procedure", "step", "do"}

// Guardrails gates candidate assistant responses against a safety policy and
// appends standards-citation or generic disclaimers to permitted ones. It is
// stateless after construction, never fails for any string input, and is safe
// for concurrent use.
type Guardrails struct {
	cfg     Config
	onBlock BlockHook
}

// NewGuardrails builds guardrails over the given tables. onBlock may be nil;
// when set it fires once per forbidden verdict with the block reason.
func NewGuardrails(cfg Config, onBlock BlockHook) *Guardrails {
	return &Guardrails{cfg: cfg, onBlock: onBlock}
}

// CheckSafety decides whether the candidate response may be delivered.
// Only the response text is inspected; the query is accepted for context but
// takes no part in the current policy. Forbidden keywords are checked first
// and the explanation names the matched keyword. Confirmation keywords are
// checked second and get a generic explanation that deliberately does not
// name the keyword. Neither match leaves the response allowed with an empty
// explanation. The response text is never mutated.
func (g *Guardrails) CheckSafety(query, response string) (Level, string) {
	_ = query

	normalized := strings.ToLower(response)

	for _, keyword := range g.cfg.ForbiddenKeywords {
		if strings.Contains(normalized, keyword) {
			reason := fmt.Sprintf("Response contains unsafe keyword: '%s'", keyword)
			if g.onBlock != nil {
				g.onBlock(reason)
			}
			return LevelForbidden, reason
		}
	}

	for _, keyword := range g.cfg.ConfirmationKeywords {
		if strings.Contains(normalized, keyword) {
			return LevelRequiresConfirmation, "Emergency action requires human confirmation"
		}
	}

	return LevelAllowed, ""
}

// SanitizeResponse appends safety disclaimers to a response. A known safety
// topic cites the mapped standard and returns immediately; otherwise a
// response containing procedural wording gets the generic disclaimer.
// Disclaimers are only ever appended, and the original content is never
// altered or truncated. Calling twice appends twice; avoiding that is the
// caller's responsibility.
func (g *Guardrails) SanitizeResponse(response, safetyTopic string) string {
	if safetyTopic != "" {
		if standard, ok := g.cfg.Standards[safetyTopic]; ok {
			return response + "\n\nSafety Note: See " + standard
		}
	}

	normalized := strings.ToLower(response)
	for _, word := range proceduralWords {
		if strings.Contains(normalized, word) {
			return response + "\n\nAlways follow established procedures and safety protocols."
		}
	}

	return response
}
