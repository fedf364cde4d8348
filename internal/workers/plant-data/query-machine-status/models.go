// internal/workers/plant-data/query-machine-status/models.go
package querymachinestatus

import "shopfloor-workers/internal/models"

type Input struct {
	QueryType string `json:"queryType"`
	MachineID string `json:"machineId,omitempty"`
	Shift     string `json:"shift,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

// Export constants for external use
var (
	QueryTypeMachineStatus      = models.QueryTypeMachineStatus
	QueryTypeProductionSummary  = models.QueryTypeProductionSummary
	QueryTypeDowntimeLog        = models.QueryTypeDowntimeLog
	QueryTypeMaintenanceHistory = models.QueryTypeMaintenanceHistory
)
