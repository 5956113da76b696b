package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultIndexURL = "http://www.illinois.gov/hfs/MedicalProviders/CostReports/Pages/2014LongTermCareCostReports.aspx"

type Config struct {
	Collector struct {
		URL        string  `yaml:"url"`
		DataDir    string  `yaml:"data_dir"`
		ScriptName string  `yaml:"script_name"`
		TimeoutSec int     `yaml:"timeout_sec"`
		RateLimit  float64 `yaml:"rate_limit"`
		UserAgent  string  `yaml:"user_agent"`
	} `yaml:"collector"`

	Extractor struct {
		MinBoldNodes  int                 `yaml:"min_bold_nodes"`
		Workers       int                 `yaml:"workers"`
		LabelVariants map[string][]string `yaml:"label_variants"`
	} `yaml:"extractor"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"database"`

	Logging Logging `yaml:"logging"`
}

type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
	Console    *bool  `yaml:"console"`
}

// ConsoleEnabled reports whether log lines go to stderr. Unset means yes.
func (l Logging) ConsoleEnabled() bool {
	return l.Console == nil || *l.Console
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/ltcc/config.yaml"),
			"/etc/ltcc/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Collector.URL == "" {
		config.Collector.URL = DefaultIndexURL
	}
	if config.Collector.DataDir == "" {
		config.Collector.DataDir = filepath.Join("data", "long_term_cost_care")
	}
	if config.Collector.ScriptName == "" {
		config.Collector.ScriptName = "wget_pdfs.sh"
	}
	if config.Collector.TimeoutSec == 0 {
		config.Collector.TimeoutSec = 30
	}
	if config.Collector.RateLimit == 0 {
		config.Collector.RateLimit = 1.0
	}
	if config.Collector.UserAgent == "" {
		config.Collector.UserAgent = "ltcc/1.0"
	}

	if config.Extractor.MinBoldNodes == 0 {
		config.Extractor.MinBoldNodes = 50
	}
	if config.Extractor.Workers == 0 {
		config.Extractor.Workers = 1
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "cost_reports"
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 100
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.MaxSizeMB == 0 {
		config.Logging.MaxSizeMB = 200
	}
}

func mergeWithEnv(config *Config) {
	if u := os.Getenv("LTCC_URL"); u != "" {
		config.Collector.URL = u
	}
	if dir := os.Getenv("LTCC_DATA_DIR"); dir != "" {
		config.Collector.DataDir = dir
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if level := os.Getenv("LTCC_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
