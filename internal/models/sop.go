// internal/models/sop.go
package models

type SOPDocument struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"` // "changeover", "startup", "quality", "safety"
	Body         string   `json:"body,omitempty"`
	MachineTypes []string `json:"machineTypes"`
	Tags         []string `json:"tags,omitempty"`
	Revision     string   `json:"revision"`
	UpdatedAt    string   `json:"updatedAt"`
}
