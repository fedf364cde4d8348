// internal/workers/plant-data/query-machine-status/queries/plant.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const defaultLimit = 50

func MachineStatus(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	machineID, _ := params["machineId"].(string)

	start := time.Now()

	if machineID != "" {
		var id, name, area, state, shift, updatedAt string
		var oee, cycleTime float64
		var outputCount int

		err := db.QueryRowContext(ctx, `
			SELECT machine_id, name, area, state, oee, cycle_time_seconds, output_count, shift, updated_at
			FROM machine_status
			WHERE machine_id = $1`, machineID).Scan(
			&id, &name, &area, &state,
			&oee, &cycleTime, &outputCount,
			&shift, &updatedAt,
		)
		if err != nil {
			return nil, 0, 0, err
		}

		result := map[string]interface{}{
			"machineId":        id,
			"name":             name,
			"area":             area,
			"state":            state,
			"oee":              oee,
			"cycleTimeSeconds": cycleTime,
			"outputCount":      outputCount,
			"shift":            shift,
			"updatedAt":        updatedAt,
		}

		execTime := time.Since(start).Milliseconds()
		return result, 1, execTime, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT machine_id, name, area, state, oee, cycle_time_seconds, output_count, shift, updated_at
		FROM machine_status
		ORDER BY machine_id
		LIMIT $1`, limitParam(params))
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, name, area, state, shift, updatedAt string
		var oee, cycleTime float64
		var outputCount int
		err := rows.Scan(&id, &name, &area, &state, &oee, &cycleTime, &outputCount, &shift, &updatedAt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"machineId":        id,
			"name":             name,
			"area":             area,
			"state":            state,
			"oee":              oee,
			"cycleTimeSeconds": cycleTime,
			"outputCount":      outputCount,
			"shift":            shift,
			"updatedAt":        updatedAt,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func ProductionSummary(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	machineID, _ := params["machineId"].(string)
	shift, _ := params["shift"].(string)

	start := time.Now()

	query := `
		SELECT machine_id, shift, units_produced, target_units, oee, avg_cycle_time, recorded_at
		FROM production_summary`

	var conds []string
	var args []interface{}
	if machineID != "" {
		args = append(args, machineID)
		conds = append(conds, fmt.Sprintf("machine_id = $%d", len(args)))
	}
	if shift != "" {
		args = append(args, shift)
		conds = append(conds, fmt.Sprintf("shift = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, limitParam(params))
	query += fmt.Sprintf(" ORDER BY recorded_at DESC LIMIT $%d", len(args))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, rowShift, recordedAt string
		var unitsProduced, targetUnits int
		var oee, avgCycleTime float64
		err := rows.Scan(&id, &rowShift, &unitsProduced, &targetUnits, &oee, &avgCycleTime, &recordedAt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"machineId":     id,
			"shift":         rowShift,
			"unitsProduced": unitsProduced,
			"targetUnits":   targetUnits,
			"oee":           oee,
			"avgCycleTime":  avgCycleTime,
			"recordedAt":    recordedAt,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func DowntimeLog(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	machineID, _ := params["machineId"].(string)

	start := time.Now()

	query := `
		SELECT machine_id, reason, started_at, ended_at, minutes
		FROM downtime_log`

	var args []interface{}
	if machineID != "" {
		args = append(args, machineID)
		query += " WHERE machine_id = $1"
	}

	args = append(args, limitParam(params))
	query += fmt.Sprintf(" ORDER BY started_at DESC LIMIT $%d", len(args))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, reason, startedAt, endedAt string
		var minutes int
		err := rows.Scan(&id, &reason, &startedAt, &endedAt, &minutes)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"machineId": id,
			"reason":    reason,
			"startedAt": startedAt,
			"endedAt":   endedAt,
			"minutes":   minutes,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func MaintenanceHistory(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	machineID, ok := params["machineId"].(string)
	if !ok || machineID == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT machine_id, event_type, description, performed_by, occurred_at
		FROM maintenance_events
		WHERE machine_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2`, machineID, limitParam(params))
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, eventType, description, performedBy, occurredAt string
		err := rows.Scan(&id, &eventType, &description, &performedBy, &occurredAt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"machineId":   id,
			"eventType":   eventType,
			"description": description,
			"performedBy": performedBy,
			"occurredAt":  occurredAt,
		})
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func limitParam(params map[string]interface{}) int {
	limit, ok := params["limit"].(int)
	if !ok || limit <= 0 {
		return defaultLimit
	}
	return limit
}
