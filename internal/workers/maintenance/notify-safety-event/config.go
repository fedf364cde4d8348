package notifysafetyevent

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled           bool          `mapstructure:"enabled"`
	MaxJobsActive     int           `mapstructure:"max_jobs_active"`
	Timeout           time.Duration `mapstructure:"timeout"`
	EmailEnabled      bool          `mapstructure:"email_enabled"`
	FromEmail         string        `mapstructure:"from_email"`
	SMSEnabled        bool          `mapstructure:"sms_enabled"`
	SeverityThreshold string        `mapstructure:"severity_threshold"`
	AWSRegion         string        `mapstructure:"aws_region"`
	SafetyTopicARN    string        `mapstructure:"safety_topic_arn"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:           true,
		MaxJobsActive:     10,
		Timeout:           15 * time.Second,
		SeverityThreshold: "high",
		AWSRegion:         "us-east-1",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.EmailEnabled && c.FromEmail == "" {
		return fmt.Errorf("from_email is required when email notifications are enabled")
	}
	if c.SMSEnabled {
		if _, ok := severityRank[c.SeverityThreshold]; !ok {
			return fmt.Errorf("severity_threshold must be one of low, medium, high")
		}
	}
	return nil
}
