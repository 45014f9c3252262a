package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string   `mapstructure:"PORT"`
	Env        string   `mapstructure:"ENV"`
	CORSOrigin []string `mapstructure:"CORS_ORIGINS"`

	// DATABASE_URL is optional: without it reference cases come from the
	// built-in population and audit records go to AUDIT_LOG_PATH.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	OpenAIAPIKey     string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel      string        `mapstructure:"OPENAI_MODEL"`
	GoogleAPIKey     string        `mapstructure:"GOOGLE_API_KEY"`
	GoogleModel      string        `mapstructure:"GOOGLE_MODEL"`
	NarrativeTimeout time.Duration `mapstructure:"NARRATIVE_TIMEOUT"`

	CaseTablePath   string `mapstructure:"CASE_TABLE_PATH"`
	AuditLogPath    string `mapstructure:"AUDIT_LOG_PATH"`
	SimilarityCases int    `mapstructure:"SIMILARITY_CASES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GOOGLE_MODEL", "gemini-1.5-flash")
	v.SetDefault("NARRATIVE_TIMEOUT", "30s")
	v.SetDefault("AUDIT_LOG_PATH", "audit.jsonl")
	v.SetDefault("SIMILARITY_CASES", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL")
	v.BindEnv("GOOGLE_API_KEY")
	v.BindEnv("GOOGLE_MODEL")
	v.BindEnv("NARRATIVE_TIMEOUT")
	v.BindEnv("CASE_TABLE_PATH")
	v.BindEnv("AUDIT_LOG_PATH")
	v.BindEnv("SIMILARITY_CASES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigin == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigin = strings.Split(origins, ",")
		}
	}

	if cfg.NarrativeTimeout <= 0 {
		return nil, fmt.Errorf("NARRATIVE_TIMEOUT must be positive")
	}
	if cfg.SimilarityCases <= 0 {
		return nil, fmt.Errorf("SIMILARITY_CASES must be positive")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HasDatabase reports whether a Postgres backend is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
