package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/llm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "sprout"
	envPrefix  = "SPROUT"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	// User is the default user id for CLI and MCP commands.
	User string `mapstructure:"user"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type LLMConfig struct {
	Endpoint    string  `mapstructure:"endpoint" validate:"required,url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model" validate:"required"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"min=1"`
	Temperature float64 `mapstructure:"temperature" validate:"min=0,max=2"`
	TimeoutMs   int     `mapstructure:"timeout_ms" validate:"min=1"`
	MaxRetries  int     `mapstructure:"max_retries" validate:"min=0,max=5"`
	LogCalls    bool    `mapstructure:"log_calls"`
}

type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Timezone        string `mapstructure:"timezone" validate:"required"`
	Workers         int    `mapstructure:"workers" validate:"min=1,max=32"`
	ReplaceExisting bool   `mapstructure:"replace_existing"`
}

var validate = validator.New()

// Load reads configuration from, in increasing precedence: defaults, the
// config file, .env and the process environment. cfgFile may be empty, in
// which case sprout.yaml is searched for in the working directory and
// $HOME/.sprout; a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// Keys the hosted-model providers document under their own names.
	if err := v.BindEnv("llm.api_key", "SPROUT_LLM_API_KEY", "OPENROUTER_API_KEY", "AI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding api key env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".sprout"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := llm.DefaultConfig()
	task := defaults.Tasks[llm.TaskDailyTasks]

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("db.path", defaultDBPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("llm.endpoint", defaults.Endpoint)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", defaults.Model)
	v.SetDefault("llm.max_tokens", task.MaxTokens)
	v.SetDefault("llm.temperature", task.Temperature)
	v.SetDefault("llm.timeout_ms", defaults.TimeoutMs)
	v.SetDefault("llm.max_retries", defaults.MaxRetries)
	v.SetDefault("llm.log_calls", false)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.timezone", "UTC")
	v.SetDefault("scheduler.workers", 1)
	v.SetDefault("scheduler.replace_existing", false)
	v.SetDefault("user", "")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sprout.db"
	}
	return filepath.Join(home, ".sprout", "sprout.db")
}

// Validate checks field constraints and that the timezone resolves.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid config: scheduler.timezone %q: %w", c.Scheduler.Timezone, err)
	}
	return nil
}

// Location returns the scheduler's timezone. Calendar dates ("today",
// "tomorrow") are computed in it throughout.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LLMClientConfig maps the flat config keys onto the client's settings.
func (c *Config) LLMClientConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Endpoint = c.LLM.Endpoint
	out.APIKey = c.LLM.APIKey
	out.Model = c.LLM.Model
	out.TimeoutMs = c.LLM.TimeoutMs
	out.MaxRetries = c.LLM.MaxRetries
	out.LogCalls = c.LLM.LogCalls
	out.Tasks[llm.TaskDailyTasks] = llm.TaskConfig{
		Temperature: c.LLM.Temperature,
		MaxTokens:   c.LLM.MaxTokens,
	}
	return out
}
