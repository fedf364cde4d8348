// internal/workers/conversation/sanitize-response/config.go
package sanitizeresponse

import (
	"os"
	"time"
)

type Config struct {
	Timeout    time.Duration
	AppVersion string
}

func LoadConfig() *Config {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "1.0.0"
	}

	return &Config{
		Timeout:    10 * time.Second,
		AppVersion: version,
	}
}
