// pkg/registry/schema.go
package registry

import "fmt"

// Categories lists the worker groups the fleet is organized into. Activity
// categories map 1:1 onto directories under internal/workers.
var Categories = []string{"conversation", "plant-data", "maintenance"}

// ActivityRegistry is the on-disk catalog of every worker the fleet exposes,
// used by the codegen and bookkeeping tools under cmd/tools.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one Camunda job worker: identity, schemas, and the
// operational parameters its BPMN service tasks are configured with.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// Validate checks the fields every tool relies on. Schema maps may be empty
// while a worker is still planned.
func (a Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("activity missing required field: ID")
	}
	if a.DisplayName == "" {
		return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
	}
	if a.TaskType == "" {
		return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
	}
	if a.Category == "" {
		return fmt.Errorf("activity %s missing required field: Category", a.ID)
	}
	if !validCategory(a.Category) {
		return fmt.Errorf("activity %s has unknown category: %s", a.ID, a.Category)
	}
	return nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
