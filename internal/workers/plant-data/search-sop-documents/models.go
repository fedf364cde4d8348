// internal/workers/plant-data/search-sop-documents/models.go
package searchsopdocuments

type Input struct {
	SearchText string     `json:"searchText"`
	MachineID  string     `json:"machineId,omitempty"`
	Category   string     `json:"category,omitempty"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Documents           []map[string]interface{} `json:"documents"`
	TotalHits           int64                    `json:"totalHits"`
	SearchExecutionTime int64                    `json:"searchExecutionTime"` // milliseconds
}
