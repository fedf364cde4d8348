// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeMachineStatus      QueryType = "machine_status"
	QueryTypeProductionSummary  QueryType = "production_summary"
	QueryTypeDowntimeLog        QueryType = "downtime_log"
	QueryTypeMaintenanceHistory QueryType = "maintenance_history"
)
