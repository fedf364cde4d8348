// internal/models/machine.go
package models

type MachineStatus struct {
	MachineID        string  `json:"machineId"`
	Name             string  `json:"name"`
	Area             string  `json:"area"`
	State            string  `json:"state"` // "running", "idle", "down", "changeover"
	OEE              float64 `json:"oee"`
	CycleTimeSeconds float64 `json:"cycleTimeSeconds"`
	OutputCount      int     `json:"outputCount"`
	Shift            string  `json:"shift"`
	UpdatedAt        string  `json:"updatedAt"`
}

type ProductionSummary struct {
	MachineID     string  `json:"machineId"`
	Shift         string  `json:"shift"`
	UnitsProduced int     `json:"unitsProduced"`
	TargetUnits   int     `json:"targetUnits"`
	OEE           float64 `json:"oee"`
	AvgCycleTime  float64 `json:"avgCycleTime"`
	RecordedAt    string  `json:"recordedAt"`
}

type DowntimeEntry struct {
	MachineID string  `json:"machineId"`
	Reason    string  `json:"reason"`
	StartedAt string  `json:"startedAt"`
	EndedAt   string  `json:"endedAt,omitempty"`
	Minutes   float64 `json:"minutes"`
}
