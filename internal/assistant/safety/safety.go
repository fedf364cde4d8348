// internal/assistant/safety/safety.go
package safety

// Level grades how a candidate response may be delivered, ordered by
// increasing restrictiveness.
type Level string

const (
	LevelAllowed              Level = "allowed"
	LevelRequiresConfirmation Level = "confirmation"
	LevelForbidden            Level = "forbidden"
)

// BlockHook receives the reason whenever a response is rejected as forbidden.
// The guardrails own no log formatting or destination; the hook is where the
// hosting system attaches its logging and metrics.
type BlockHook func(reason string)
