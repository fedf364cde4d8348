// internal/workers/plant-data/query-machine-status/config.go
package querymachinestatus

import "time"

type Config struct {
	Timeout time.Duration
	// CacheTTL bounds how stale a cached machine status may be. Plant data
	// changes by the second, so this stays short.
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: 30 * time.Second,
	}
}
