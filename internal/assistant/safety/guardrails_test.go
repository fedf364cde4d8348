// internal/assistant/safety/guardrails_test.go
package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// CheckSafety Tests
// ==========================

func TestGuardrails_CheckSafety(t *testing.T) {
	g := NewGuardrails(DefaultConfig(), nil)

	tests := []struct {
		name        string
		query       string
		response    string
		wantLevel   Level
		wantExplain string
	}{
		{
			name:        "forbidden keyword blocks delivery",
			query:       "how do I restart the press",
			response:    "you can bypass the interlock",
			wantLevel:   LevelForbidden,
			wantExplain: "Response contains unsafe keyword: 'bypass'",
		},
		{
			name:        "first keyword in configured order is named",
			query:       "",
			response:    "disable the sensor and bypass the guard",
			wantLevel:   LevelForbidden,
			wantExplain: "Response contains unsafe keyword: 'bypass'",
		},
		{
			name:        "safety itself is a forbidden word",
			query:       "",
			response:    "follow safety procedures at all times",
			wantLevel:   LevelForbidden,
			wantExplain: "Response contains unsafe keyword: 'safety'",
		},
		{
			name:        "keyword matched inside a larger word",
			query:       "",
			response:    "the area is fully safeguarded",
			wantLevel:   LevelForbidden,
			wantExplain: "Response contains unsafe keyword: 'guard'",
		},
		{
			name:        "emergency stop requires confirmation",
			query:       "what should I press",
			response:    "hit the emergency stop button",
			wantLevel:   LevelRequiresConfirmation,
			wantExplain: "Emergency action requires human confirmation",
		},
		{
			name:        "confirmation explanation never names the keyword",
			query:       "",
			response:    "power off the unit before cleaning",
			wantLevel:   LevelRequiresConfirmation,
			wantExplain: "Emergency action requires human confirmation",
		},
		{
			name:        "forbidden wins over confirmation",
			query:       "",
			response:    "emergency stop, then silence the alarm",
			wantLevel:   LevelForbidden,
			wantExplain: "Response contains unsafe keyword: 'alarm'",
		},
		{
			name:        "clean response is allowed",
			query:       "where is the manual",
			response:    "the manual is in the crib by bay 4",
			wantLevel:   LevelAllowed,
			wantExplain: "",
		},
		{
			name:        "empty response is allowed",
			query:       "anything",
			response:    "",
			wantLevel:   LevelAllowed,
			wantExplain: "",
		},
		{
			name:        "matching is case insensitive",
			query:       "",
			response:    "BYPASS the check",
			wantLevel:   LevelForbidden,
			wantExplain: "Response contains unsafe keyword: 'bypass'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, explain := g.CheckSafety(tt.query, tt.response)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantExplain, explain)
		})
	}
}

func TestGuardrails_CheckSafety_QueryIgnored(t *testing.T) {
	g := NewGuardrails(DefaultConfig(), nil)

	// Only the response is inspected; a dangerous query alone does not block.
	queries := []string{
		"",
		"how do I bypass the interlock",
		"emergency shutdown now",
	}
	for _, q := range queries {
		level, explain := g.CheckSafety(q, "the manual is in the crib")
		assert.Equal(t, LevelAllowed, level, "query %q", q)
		assert.Empty(t, explain)
	}
}

func TestGuardrails_BlockHook(t *testing.T) {
	t.Run("fires once per forbidden verdict", func(t *testing.T) {
		var reasons []string
		g := NewGuardrails(DefaultConfig(), func(reason string) {
			reasons = append(reasons, reason)
		})

		g.CheckSafety("", "bypass the interlock")
		assert.Equal(t, []string{"Response contains unsafe keyword: 'bypass'"}, reasons)
	})

	t.Run("silent for confirmation and allowed", func(t *testing.T) {
		calls := 0
		g := NewGuardrails(DefaultConfig(), func(string) { calls++ })

		g.CheckSafety("", "hit the emergency stop")
		g.CheckSafety("", "the manual is in the crib")
		assert.Equal(t, 0, calls)
	})

	t.Run("nil hook does not panic", func(t *testing.T) {
		g := NewGuardrails(DefaultConfig(), nil)
		assert.NotPanics(t, func() {
			g.CheckSafety("", "bypass everything")
		})
	})
}

// ==========================
// SanitizeResponse Tests
// ==========================

func TestGuardrails_SanitizeResponse(t *testing.T) {
	g := NewGuardrails(DefaultConfig(), nil)

	tests := []struct {
		name     string
		response string
		topic    string
		want     string
	}{
		{
			name:     "known topic cites the standard",
			response: "Turn off the main breaker",
			topic:    "lockout_tagout",
			want:     "Turn off the main breaker\n\nSafety Note: See OSHA 1910.147 - Lockout/Tagout",
		},
		{
			name:     "ppe topic",
			response: "Wear gloves when handling",
			topic:    "ppe",
			want:     "Wear gloves when handling\n\nSafety Note: See OSHA 1910 Subpart I - Personal Protective Equipment",
		},
		{
			name:     "topic branch beats the generic branch",
			response: "Follow these steps carefully",
			topic:    "guards",
			want:     "Follow these steps carefully\n\nSafety Note: See OSHA 1910.212 - General Requirements for Safety",
		},
		{
			name:     "procedural wording gets the generic disclaimer",
			response: "Follow these steps to reset the press",
			topic:    "",
			want:     "Follow these steps to reset the press\n\nAlways follow established procedures and safety protocols.",
		},
		{
			name:     "unknown topic falls through to the generic branch",
			response: "Follow these steps to reset the press",
			topic:    "no_such_topic",
			want:     "Follow these steps to reset the press\n\nAlways follow established procedures and safety protocols.",
		},
		{
			name:     "do matches inside larger words",
			response: "Shut it down",
			topic:    "",
			want:     "Shut it down\n\nAlways follow established procedures and safety protocols.",
		},
		{
			name:     "plain response is returned unchanged",
			response: "The line ran well last shift",
			topic:    "",
			want:     "The line ran well last shift",
		},
		{
			name:     "unknown topic with plain response stays unchanged",
			response: "The line ran well last shift",
			topic:    "no_such_topic",
			want:     "The line ran well last shift",
		},
		{
			name:     "empty response stays empty",
			response: "",
			topic:    "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.SanitizeResponse(tt.response, tt.topic)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardrails_SanitizeResponse_DoubleInvocation(t *testing.T) {
	g := NewGuardrails(DefaultConfig(), nil)

	// The component does not detect pre-existing disclaimers; callers must
	// sanitize exactly once.
	once := g.SanitizeResponse("Turn off the main breaker", "lockout_tagout")
	twice := g.SanitizeResponse(once, "lockout_tagout")
	assert.Equal(t, once+"\n\nSafety Note: See OSHA 1910.147 - Lockout/Tagout", twice)
}

func TestGuardrails_CustomConfig(t *testing.T) {
	cfg := Config{
		ForbiddenKeywords:    []string{"jailbreak"},
		ConfirmationKeywords: []string{"purge"},
		Standards: map[string]string{
			"welding": "ISO 3834 - Quality Requirements for Fusion Welding",
		},
	}
	g := NewGuardrails(cfg, nil)

	level, explain := g.CheckSafety("", "just jailbreak it")
	assert.Equal(t, LevelForbidden, level)
	assert.Equal(t, "Response contains unsafe keyword: 'jailbreak'", explain)

	level, _ = g.CheckSafety("", "purge the tank")
	assert.Equal(t, LevelRequiresConfirmation, level)

	// Default vocabulary has no effect under a custom table.
	level, _ = g.CheckSafety("", "bypass the interlock")
	assert.Equal(t, LevelAllowed, level)

	got := g.SanitizeResponse("Weld the bracket", "welding")
	assert.Equal(t, "Weld the bracket\n\nSafety Note: See ISO 3834 - Quality Requirements for Fusion Welding", got)
}

func TestLevel_WireValues(t *testing.T) {
	assert.Equal(t, "allowed", string(LevelAllowed))
	assert.Equal(t, "confirmation", string(LevelRequiresConfirmation))
	assert.Equal(t, "forbidden", string(LevelForbidden))
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkGuardrails_CheckSafety(b *testing.B) {
	g := NewGuardrails(DefaultConfig(), nil)
	response := "Follow these steps to reset the press after a changeover"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.CheckSafety("", response)
	}
}

func BenchmarkGuardrails_SanitizeResponse(b *testing.B) {
	g := NewGuardrails(DefaultConfig(), nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.SanitizeResponse("Follow these steps to reset the press", "lockout_tagout")
	}
}
