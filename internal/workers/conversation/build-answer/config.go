// internal/workers/conversation/build-answer/config.go
package buildanswer

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}
