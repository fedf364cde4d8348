package createmaintenanceticket

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	CMMSEnabled   bool          `mapstructure:"cmms_enabled"`
	CMMSBaseURL   string        `mapstructure:"cmms_base_url"`
	CMMSAPIToken  string        `mapstructure:"cmms_api_token"`
	CMMSTimeout   time.Duration `mapstructure:"cmms_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		CMMSTimeout:   10 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.CMMSEnabled && c.CMMSBaseURL == "" {
		return fmt.Errorf("cmms_base_url is required when CMMS forwarding is enabled")
	}
	return nil
}
