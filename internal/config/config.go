package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Ashby    AshbyConfig    `mapstructure:"ashby"`
	Gem      GemConfig      `mapstructure:"gem"`
	Email    EmailConfig    `mapstructure:"email"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSNString       string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the connection string for the configured driver.
// Parameters: none.
// Returns:
//   - string: DSN passed to the GORM driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return c.DSNString
	}
	return c.Path
}

type AshbyConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type GemConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type EmailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
}

type ChatConfig struct {
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	Model           string `mapstructure:"model"`
	MaxTokens       int    `mapstructure:"max_tokens"`
}

// PipelineConfig holds the static funnel tables: canonical stage order, alias
// mappings, stuck thresholds, role priorities and historical conversion rates.
type PipelineConfig struct {
	Stages          []string                      `mapstructure:"stages"`
	StageAliases    map[string]string             `mapstructure:"stage_aliases"`
	StuckThresholds map[string]int                `mapstructure:"stuck_thresholds"`
	ActiveRoles     []string                      `mapstructure:"active_roles"`
	RolePriorities  map[string]int                `mapstructure:"role_priorities"`
	HistoricalRates map[string]map[string]float64 `mapstructure:"historical_rates"`
	WeeklyCapacity  int                           `mapstructure:"weekly_outreach_capacity"`
	SenderFloors    map[string]int                `mapstructure:"sender_floors"`
	RoleCategories  map[string]string             `mapstructure:"role_categories"`
	SequenceRoles   map[string]string             `mapstructure:"sequence_roles"`
	SequenceSenders map[string]string             `mapstructure:"sequence_senders"`
}

// Load reads configuration from file and environment variables.
// Parameters:
//   - configPath: explicit config file path; empty searches ./configs and cwd.
// Returns:
//   - *Config: populated configuration.
//   - error: non-nil if reading, unmarshaling or validation fails.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("ashby.api_key", "ASHBY_API_KEY")
	v.BindEnv("gem.api_key", "GEM_API_KEY")
	v.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	v.BindEnv("chat.anthropic_api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("database.dsn", "DATABASE_DSN")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyPipelineDefaults(&cfg.Pipeline)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/recruiting.db")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("ashby.base_url", "https://api.ashbyhq.com")
	v.SetDefault("gem.base_url", "https://api.gem.com/v0")

	v.SetDefault("email.from", "copilot@fonzi.ai")
	v.SetDefault("email.to", "dkoloski@fonzi.ai")

	v.SetDefault("chat.model", "claude-sonnet-4-20250514")
	v.SetDefault("chat.max_tokens", 1024)

	v.SetDefault("pipeline.weekly_outreach_capacity", 120)
}

// Validate checks the pipeline tables for values the analysis layer cannot
// handle: priorities outside 1..3, thresholds or aliases pointing at unknown
// stages, and a non-positive outreach capacity.
func (c *Config) Validate() error {
	p := &c.Pipeline

	if len(p.Stages) == 0 {
		return fmt.Errorf("pipeline.stages must not be empty")
	}

	known := make(map[string]bool, len(p.Stages))
	for _, s := range p.Stages {
		known[s] = true
	}

	for role, priority := range p.RolePriorities {
		if priority < 1 || priority > 3 {
			return fmt.Errorf("pipeline.role_priorities[%q] = %d: priority must be between 1 and 3", role, priority)
		}
	}

	for alias, target := range p.StageAliases {
		if !known[target] {
			return fmt.Errorf("pipeline.stage_aliases[%q] maps to unknown stage %q", alias, target)
		}
	}

	for stage := range p.StuckThresholds {
		if !known[stage] {
			return fmt.Errorf("pipeline.stuck_thresholds has unknown stage %q", stage)
		}
	}

	if p.WeeklyCapacity <= 0 {
		return fmt.Errorf("pipeline.weekly_outreach_capacity must be positive, got %d", p.WeeklyCapacity)
	}

	return nil
}
