// internal/assistant/intent/classifier.go
package intent

import (
	"strings"
	"unicode"
)

// clarificationThreshold is the confidence below which the classifier asks
// for a follow-up instead of acting. Hard threshold, not per-call tunable.
const clarificationThreshold = 0.5

// Classifier maps free-text shopfloor queries to intents with extracted
// entities and a confidence score. It holds no mutable state after
// construction and never returns an error for any input string.
type Classifier struct {
	cfg Config
}

// NewClassifier builds a classifier over the given keyword tables.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify scores the query against every intent's trigger keywords and
// returns the best match. Matching is substring containment over the
// lower-cased query; each trigger counts once no matter how often it occurs.
// Ties resolve to the earliest intent in enumeration order, and a query that
// matches nothing degrades to the unknown intent with confidence 0.
func (c *Classifier) Classify(query string) ClassificationResult {
	normalized := strings.ToLower(query)

	scores := make(map[Intent]int, len(intentOrder))
	total := 0
	for _, in := range intentOrder {
		for _, keyword := range c.cfg.IntentPatterns[in] {
			if strings.Contains(normalized, keyword) {
				scores[in]++
				total++
			}
		}
	}

	best := IntentUnknown
	bestScore := 0
	for _, in := range intentOrder {
		if scores[in] > bestScore {
			best = in
			bestScore = scores[in]
		}
	}

	denominator := total
	if denominator < 1 {
		denominator = 1
	}
	confidence := float64(bestScore) / float64(denominator)
	if confidence > 1.0 {
		confidence = 1.0
	}

	entities := c.extractEntities(normalized)

	clarificationNeeded := confidence < clarificationThreshold || len(entities) == 0
	question := ""
	if clarificationNeeded {
		question = c.cfg.ClarificationPrompts[best]
	}

	return ClassificationResult{
		Intent:                best,
		Confidence:            confidence,
		Entities:              entities,
		ClarificationNeeded:   clarificationNeeded,
		ClarificationQuestion: question,
	}
}

// extractEntities pulls structured values out of the normalized query.
// Only machine_id extraction is implemented: for each trigger in configured
// order, the token after the first token containing the trigger is recorded
// when it carries a digit, and scanning stops at the first trigger that
// produced a value. part_number has triggers configured but no extraction
// rule yet, so it never appears in the result.
func (c *Classifier) extractEntities(normalized string) map[string]string {
	entities := make(map[string]string)

	for _, trigger := range c.cfg.EntityPatterns[EntityMachineID] {
		if !strings.Contains(normalized, trigger) {
			continue
		}
		words := strings.Fields(normalized)
		for i, word := range words {
			if strings.Contains(word, trigger) && i+1 < len(words) {
				next := words[i+1]
				if containsDigit(next) {
					entities[EntityMachineID] = next
					break
				}
			}
		}
		if _, found := entities[EntityMachineID]; found {
			break
		}
	}

	return entities
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
