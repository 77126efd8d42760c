package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORS            bool          `yaml:"cors"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Cache struct {
		Type   string `yaml:"type"` // redis, memory, or layered
		Prefix string `yaml:"prefix"`
		Redis  struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size"`
		} `yaml:"redis"`
		ArtifactTTL time.Duration `yaml:"artifact_ttl"`
	} `yaml:"cache"`
	Exec struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"exec"`
	Audit struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		ErrorTopic   string   `yaml:"error_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
	} `yaml:"audit"`
	Copy struct {
		BaselineEquity float64   `yaml:"baseline_equity"`
		Accounts       []Account `yaml:"accounts"`
	} `yaml:"copy"`
	COT struct {
		// Preferred report source per symbol category. Categories not
		// listed fall back to the financial report.
		Precedence map[string]string `yaml:"precedence"`
	} `yaml:"cot"`
}

// Account describes a follower account taking copied trades.
type Account struct {
	ID     string  `yaml:"id"`
	Label  string  `yaml:"label"`
	Equity float64 `yaml:"equity"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("EXEC_BASE_URL"); v != "" {
		c.Exec.BaseURL = v
	}
	if v := os.Getenv("EXEC_API_KEY"); v != "" {
		c.Exec.APIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Audit.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("AUDIT_TOPIC"); v != "" {
		c.Audit.Topic = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Type {
	case "redis", "memory", "layered":
	case "":
		return fmt.Errorf("cache.type is required")
	default:
		return fmt.Errorf("cache.type must be 'redis', 'memory' or 'layered', got '%s'", c.Cache.Type)
	}
	if c.Copy.BaselineEquity < 0 {
		return fmt.Errorf("copy.baseline_equity cannot be negative")
	}
	if len(c.Copy.Accounts) == 0 {
		return fmt.Errorf("copy.accounts cannot be empty")
	}
	seen := make(map[string]bool, len(c.Copy.Accounts))
	for _, a := range c.Copy.Accounts {
		if a.ID == "" {
			return fmt.Errorf("copy.accounts entries require an id")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate account id '%s'", a.ID)
		}
		seen[a.ID] = true
	}
	if c.Audit.Enabled && len(c.Audit.Brokers) == 0 {
		return fmt.Errorf("audit.brokers are required when audit is enabled")
	}
	for cat, src := range c.COT.Precedence {
		if src != "disaggregated" && src != "financial" {
			return fmt.Errorf("cot.precedence[%s] must be 'disaggregated' or 'financial', got '%s'", cat, src)
		}
	}
	return nil
}
