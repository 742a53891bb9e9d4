package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ODDS_PIPELINE_SERVER_PORT
const EnvPrefix = "ODDS_PIPELINE"

// Config holds all configuration for the odds pipeline service
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	OddsAPI     OddsAPIConfig     `mapstructure:"odds_api"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Predictions PredictionsConfig `mapstructure:"predictions"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Store       StoreConfig       `mapstructure:"store"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

// OddsAPIConfig holds odds provider configuration
type OddsAPIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second
	Burst     int           `mapstructure:"burst"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	Brokers         []string `mapstructure:"brokers"`
	RefreshTopic    string   `mapstructure:"refresh_topic"`    // consumed
	SelectionsTopic string   `mapstructure:"selections_topic"` // produced
	GroupID         string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// PredictionsConfig points at the ML outputs directory
type PredictionsConfig struct {
	Dir string `mapstructure:"dir"`
}

// SchedulerConfig holds the daily refresh schedule
type SchedulerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Hour       int    `mapstructure:"hour"`
	Timezone   string `mapstructure:"timezone"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// StoreConfig holds the selection store configuration
type StoreConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("odds_api.base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("odds_api.api_key", "")
	v.SetDefault("odds_api.rate_limit", 5.0)
	v.SetDefault("odds_api.burst", 1)
	v.SetDefault("odds_api.timeout", 10*time.Second)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.refresh_topic", "odds_refresh_requests")
	v.SetDefault("kafka.selections_topic", "daily_selections")
	v.SetDefault("kafka.group_id", "odds-pipeline")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 15*time.Minute)

	v.SetDefault("predictions.dir", "shared/ml_outputs")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.hour", 6)
	v.SetDefault("scheduler.timezone", "Local")
	v.SetDefault("scheduler.run_on_start", true)

	v.SetDefault("store.ttl", 24*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unprefixed names shared with the ML tooling
	if err := v.BindEnv("odds_api.api_key", EnvPrefix+"_ODDS_API_API_KEY", "ODDS_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}
	if err := v.BindEnv("predictions.dir", EnvPrefix+"_PREDICTIONS_DIR", "ML_OUTPUTS_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Location resolves the scheduler time zone
func (c SchedulerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
