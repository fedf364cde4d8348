// internal/assistant/intent/classifier_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Classification Tests
// ==========================

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name              string
		query             string
		wantIntent        Intent
		wantConfidence    float64
		wantEntities      map[string]string
		wantClarification bool
		wantQuestion      string
	}{
		{
			name:              "sop lookup with machine entity",
			query:             "Show me the changeover procedure for press 12",
			wantIntent:        IntentSOPLookup,
			wantConfidence:    1.0,
			wantEntities:      map[string]string{"machine_id": "12"},
			wantClarification: false,
			wantQuestion:      "",
		},
		{
			name:              "production status with line entity",
			query:             "Is line 3 running or in downtime",
			wantIntent:        IntentProductionStatus,
			wantConfidence:    1.0,
			wantEntities:      map[string]string{"machine_id": "3"},
			wantClarification: false,
			wantQuestion:      "",
		},
		{
			name:              "maintenance request with pump entity",
			query:             "The bearing on pump 7 is making noise, request repair",
			wantIntent:        IntentMaintenanceRequest,
			wantConfidence:    1.0,
			wantEntities:      map[string]string{"machine_id": "7"},
			wantClarification: false,
			wantQuestion:      "",
		},
		{
			name:              "quality check without entities clarifies despite full confidence",
			query:             "inspect the dimension tolerance for the part",
			wantIntent:        IntentQualityCheck,
			wantConfidence:    1.0,
			wantEntities:      map[string]string{},
			wantClarification: true,
			wantQuestion:      "",
		},
		{
			name:              "safety query without entities",
			query:             "what ppe is required near the guard",
			wantIntent:        IntentSafetyQuery,
			wantConfidence:    1.0,
			wantEntities:      map[string]string{},
			wantClarification: true,
			wantQuestion:      "",
		},
		{
			name:              "oee question without machine",
			query:             "what is the oee rate today",
			wantIntent:        IntentProductionStatus,
			wantConfidence:    1.0,
			wantEntities:      map[string]string{},
			wantClarification: true,
			wantQuestion:      "",
		},
		{
			name:              "empty query degrades to unknown",
			query:             "",
			wantIntent:        IntentUnknown,
			wantConfidence:    0,
			wantEntities:      map[string]string{},
			wantClarification: true,
			wantQuestion:      "",
		},
		{
			name:              "no keywords at all",
			query:             "hello there friend",
			wantIntent:        IntentUnknown,
			wantConfidence:    0,
			wantEntities:      map[string]string{},
			wantClarification: true,
			wantQuestion:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.query)

			assert.Equal(t, tt.wantIntent, result.Intent)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			assert.Equal(t, tt.wantEntities, result.Entities)
			assert.Equal(t, tt.wantClarification, result.ClarificationNeeded)
			assert.Equal(t, tt.wantQuestion, result.ClarificationQuestion)
		})
	}
}

func TestClassifier_Classify_TieBreak(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// "quality" scores quality_check, "problem" scores maintenance_request.
	// Equal scores resolve to the earlier intent in enumeration order.
	result := c.Classify("quality problem")

	assert.Equal(t, IntentMaintenanceRequest, result.Intent)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
	assert.True(t, result.ClarificationNeeded)
	assert.Equal(t, "Which equipment needs repair?", result.ClarificationQuestion)

	// Determinism: repeated runs give the same winner.
	for i := 0; i < 20; i++ {
		again := c.Classify("quality problem")
		assert.Equal(t, result.Intent, again.Intent)
	}
}

func TestClassifier_Classify_LowConfidence(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// Three intents score once each, so the winner holds a third of the mass.
	result := c.Classify("check the broken press 12 production")

	assert.Equal(t, IntentProductionStatus, result.Intent)
	assert.InDelta(t, 1.0/3.0, result.Confidence, 1e-9)
	assert.Equal(t, map[string]string{"machine_id": "12"}, result.Entities)
	assert.True(t, result.ClarificationNeeded)
	assert.Empty(t, result.ClarificationQuestion)
}

func TestClassifier_Classify_ConfidenceBounds(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	queries := []string{
		"",
		"show procedure steps instructions changeover setup operation guide how to",
		"status running downtime oee production output rate",
		"quality problem",
		"press 12 status repair check safety",
		"zzzzzz",
		"Show me the changeover procedure for press 12",
	}

	for _, q := range queries {
		result := c.Classify(q)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "query %q", q)
		assert.LessOrEqual(t, result.Confidence, 1.0, "query %q", q)
	}
}

func TestClassifier_Classify_ClarificationQuestions(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	t.Run("sop lookup prompt", func(t *testing.T) {
		// High score, no entities: clarification with the SOP prompt.
		result := c.Classify("show me the setup guide")
		assert.Equal(t, IntentSOPLookup, result.Intent)
		assert.True(t, result.ClarificationNeeded)
		assert.Equal(t, "Which machine or process?", result.ClarificationQuestion)
	})

	t.Run("maintenance prompt", func(t *testing.T) {
		result := c.Classify("i have a maintenance issue")
		assert.Equal(t, IntentMaintenanceRequest, result.Intent)
		assert.True(t, result.ClarificationNeeded)
		assert.Equal(t, "Which equipment needs repair?", result.ClarificationQuestion)
	})

	t.Run("no prompt outside sop and maintenance", func(t *testing.T) {
		result := c.Classify("is it running")
		assert.Equal(t, IntentProductionStatus, result.Intent)
		assert.True(t, result.ClarificationNeeded)
		assert.Empty(t, result.ClarificationQuestion)
	})

	t.Run("no prompt when not clarifying", func(t *testing.T) {
		result := c.Classify("Show me the changeover procedure for press 12")
		assert.False(t, result.ClarificationNeeded)
		assert.Empty(t, result.ClarificationQuestion)
	})
}

// ==========================
// Entity Extraction Tests
// ==========================

func TestClassifier_EntityExtraction(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name         string
		query        string
		wantEntities map[string]string
	}{
		{
			name:         "number follows trigger token",
			query:        "start press 12 now",
			wantEntities: map[string]string{"machine_id": "12"},
		},
		{
			name:         "no digit in following token",
			query:        "the press needs work",
			wantEntities: map[string]string{},
		},
		{
			name:         "trigger is the last token",
			query:        "start the press",
			wantEntities: map[string]string{},
		},
		{
			name:         "first trigger wins over later ones",
			query:        "press 9 next to pump 5",
			wantEntities: map[string]string{"machine_id": "9"},
		},
		{
			name:         "trigger matched inside a larger word",
			query:        "compressor 77 is loud",
			wantEntities: map[string]string{"machine_id": "77"},
		},
		{
			name:         "punctuation is kept on the extracted token",
			query:        "status of line 3?",
			wantEntities: map[string]string{"machine_id": "3?"},
		},
		{
			name:         "alphanumeric machine tags extract as-is",
			query:        "changeover guide for line a7",
			wantEntities: map[string]string{"machine_id": "a7"},
		},
		{
			name:         "part triggers configured but never extracted",
			query:        "find part 8812 in the catalog",
			wantEntities: map[string]string{},
		},
		{
			name:         "extra whitespace between tokens",
			query:        "pump    41   vibrating",
			wantEntities: map[string]string{"machine_id": "41"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.query)
			assert.Equal(t, tt.wantEntities, result.Entities)
		})
	}
}

func TestClassifier_EntityExtraction_Idempotent(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	query := "The bearing on pump 7 is making noise, request repair"
	first := c.Classify(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Entities, c.Classify(query).Entities)
	}
}

// ==========================
// Configuration Tests
// ==========================

func TestClassifier_CustomConfig(t *testing.T) {
	cfg := Config{
		IntentPatterns: map[Intent][]string{
			IntentTraining:  {"onboard", "course"},
			IntentWorkOrder: {"ticket"},
		},
		EntityPatterns: map[string][]string{
			EntityMachineID: {"cell"},
		},
		ClarificationPrompts: map[Intent]string{
			IntentTraining: "Which course?",
		},
	}
	c := NewClassifier(cfg)

	t.Run("custom vocabulary drives classification", func(t *testing.T) {
		result := c.Classify("book the onboard course for cell 4")
		assert.Equal(t, IntentTraining, result.Intent)
		assert.InDelta(t, 1.0, result.Confidence, 1e-9)
		assert.Equal(t, map[string]string{"machine_id": "4"}, result.Entities)
		assert.False(t, result.ClarificationNeeded)
	})

	t.Run("custom prompt attaches on clarification", func(t *testing.T) {
		result := c.Classify("onboard")
		assert.Equal(t, IntentTraining, result.Intent)
		assert.True(t, result.ClarificationNeeded)
		assert.Equal(t, "Which course?", result.ClarificationQuestion)
	})

	t.Run("default vocabulary has no effect", func(t *testing.T) {
		result := c.Classify("show me the changeover procedure")
		assert.Equal(t, IntentUnknown, result.Intent)
		assert.InDelta(t, 0, result.Confidence, 1e-9)
	})
}

func TestClassifier_EmptyConfig(t *testing.T) {
	c := NewClassifier(Config{})

	result := c.Classify("show me the changeover procedure for press 12")
	assert.Equal(t, IntentUnknown, result.Intent)
	assert.InDelta(t, 0, result.Confidence, 1e-9)
	assert.Empty(t, result.Entities)
	assert.True(t, result.ClarificationNeeded)
}

func TestIntents_Order(t *testing.T) {
	want := []Intent{
		IntentSOPLookup,
		IntentProductionStatus,
		IntentMaintenanceRequest,
		IntentQualityCheck,
		IntentSafetyQuery,
		IntentWorkOrder,
		IntentPartSearch,
		IntentTraining,
		IntentUnknown,
	}
	assert.Equal(t, want, Intents())

	// Callers get a copy, not the backing array.
	got := Intents()
	got[0] = IntentUnknown
	assert.Equal(t, want, Intents())
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkClassifier_Classify(b *testing.B) {
	c := NewClassifier(DefaultConfig())
	query := "Show me the changeover procedure for press 12"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Classify(query)
	}
}

func BenchmarkClassifier_Classify_NoMatch(b *testing.B) {
	c := NewClassifier(DefaultConfig())
	query := "completely unrelated text with no trigger words at all"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Classify(query)
	}
}
