package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	MaxRetries     int    `toml:"max_retries"`
}

type RateLimitConfig struct {
	RPM int `toml:"rpm"`
	TPM int `toml:"tpm"`
}

type AnalysisConfig struct {
	GasThreshold       float64 `toml:"gas_threshold"`
	DepthTolerance     float64 `toml:"depth_tolerance"`
	CheckpointInterval int     `toml:"checkpoint_interval"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type PathsConfig struct {
	ReportDir    string `toml:"report_dir"`
	ProcessedDir string `toml:"processed_dir"`
}

type Prompts struct {
	DailySummary string `toml:"daily_summary"`
	Question     string `toml:"question"`
}

type Config struct {
	LLM       LLMConfig       `toml:"llm"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Analysis  AnalysisConfig  `toml:"analysis"`
	Graph     GraphConfig     `toml:"graph"`
	Paths     PathsConfig     `toml:"paths"`
	Prompts   Prompts         `toml:"prompts"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Analysis.GasThreshold <= 0 {
		c.Analysis.GasThreshold = 1.2
	}
	if c.Analysis.DepthTolerance <= 0 {
		c.Analysis.DepthTolerance = 10.0
	}
	if c.Analysis.CheckpointInterval <= 0 {
		c.Analysis.CheckpointInterval = 50
	}
	if c.LLM.MaxRetries <= 0 {
		c.LLM.MaxRetries = 5
	}
	if c.RateLimit.RPM <= 0 {
		c.RateLimit.RPM = 28
	}
	if c.RateLimit.TPM <= 0 {
		c.RateLimit.TPM = 16000
	}
	if c.Paths.ReportDir == "" {
		c.Paths.ReportDir = "data/reports"
	}
	if c.Paths.ProcessedDir == "" {
		c.Paths.ProcessedDir = "data/processed"
	}
}

// applyEnv lets deployment environment variables override file settings.
func (c *Config) applyEnv() {
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.EmbeddingModel, "LLM_EMBEDDING_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Graph.URI, "GRAPH_URI")
	setString(&c.Graph.User, "GRAPH_USER")
	setString(&c.Graph.Password, "GRAPH_PASSWORD")
	setString(&c.Paths.ReportDir, "REPORT_DIR")
	setString(&c.Paths.ProcessedDir, "PROCESSED_DIR")
	setFloat(&c.Analysis.GasThreshold, "GAS_THRESHOLD")
	setFloat(&c.Analysis.DepthTolerance, "DEPTH_TOLERANCE")
	setInt(&c.Analysis.CheckpointInterval, "CHECKPOINT_INTERVAL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
