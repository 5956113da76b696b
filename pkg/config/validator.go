package config

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Collector config
	if u, err := url.Parse(c.Collector.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "collector.url",
			Message: "invalid index URL",
		})
	}

	if c.Collector.DataDir == "" {
		errors = append(errors, ValidationError{
			Field:   "collector.data_dir",
			Message: "data_dir is required",
		})
	}

	if strings.ContainsRune(c.Collector.ScriptName, '/') {
		errors = append(errors, ValidationError{
			Field:   "collector.script_name",
			Message: "script_name must be a bare file name",
		})
	}

	if c.Collector.TimeoutSec < 1 {
		errors = append(errors, ValidationError{
			Field:   "collector.timeout_sec",
			Message: "timeout_sec must be positive",
		})
	}

	if c.Collector.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "collector.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate Extractor config
	if c.Extractor.MinBoldNodes < 0 {
		errors = append(errors, ValidationError{
			Field:   "extractor.min_bold_nodes",
			Message: "min_bold_nodes must not be negative",
		})
	}

	if c.Extractor.Workers < 1 {
		errors = append(errors, ValidationError{
			Field:   "extractor.workers",
			Message: "workers must be positive",
		})
	}

	for label, spellings := range c.Extractor.LabelVariants {
		for _, s := range spellings {
			if strings.TrimSpace(s) == "" {
				errors = append(errors, ValidationError{
					Field:   "extractor.label_variants",
					Message: fmt.Sprintf("empty spelling for label %s", label),
				})
			}
		}
	}

	// Validate Database config
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	// Validate Logging config
	if !contains(logLevels, strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown log level: %s", c.Logging.Level),
		})
	}

	return errors
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
