// internal/workers/conversation/classify-intent/config.go
package classifyintent

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}
