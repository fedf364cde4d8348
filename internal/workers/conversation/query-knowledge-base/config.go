// internal/workers/conversation/query-knowledge-base/config.go
package queryknowledgebase

import "time"

type Config struct {
	Timeout    time.Duration
	CacheTTL   time.Duration
	MaxResults int
	SOPIndex   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		CacheTTL:   5 * time.Minute,
		MaxResults: 20,
		SOPIndex:   "sop_documents",
	}
}
