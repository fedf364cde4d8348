// internal/workers/conversation/check-response-safety/config.go
package checkresponsesafety

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
