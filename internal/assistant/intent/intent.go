// internal/assistant/intent/intent.go
package intent

// Intent is one of the operational categories a shopfloor query can map to.
type Intent string

const (
	IntentSOPLookup          Intent = "sop_lookup"
	IntentProductionStatus   Intent = "production_status"
	IntentMaintenanceRequest Intent = "maintenance_request"
	IntentQualityCheck       Intent = "quality_check"
	IntentSafetyQuery        Intent = "safety_query"
	IntentWorkOrder          Intent = "work_order"
	IntentPartSearch         Intent = "part_search"
	IntentTraining           Intent = "training"
	IntentUnknown            Intent = "unknown"
)

// intentOrder fixes the enumeration order used for scoring and tie-breaks.
// Ties between equal nonzero scores resolve to the earliest entry.
var intentOrder = []Intent{
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

// Intents returns the fixed enumeration order of all intents.
func Intents() []Intent {
	out := make([]Intent, len(intentOrder))
	copy(out, intentOrder)
	return out
}

// Entity kinds the classifier knows about.
const (
	EntityMachineID  = "machine_id"
	EntityPartNumber = "part_number"
)

// ClassificationResult is the outcome of classifying a single query.
// It is a value object: produced once, never mutated.
type ClassificationResult struct {
	Intent                Intent            `json:"intent"`
	Confidence            float64           `json:"confidence"`
	Entities              map[string]string `json:"entities"`
	ClarificationNeeded   bool              `json:"clarificationNeeded"`
	ClarificationQuestion string            `json:"clarificationQuestion,omitempty"`
}
