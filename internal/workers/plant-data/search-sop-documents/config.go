// internal/workers/plant-data/search-sop-documents/config.go
package searchsopdocuments

import "time"

type Config struct {
	Timeout  time.Duration
	SOPIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		SOPIndex: "sop_documents",
	}
}
