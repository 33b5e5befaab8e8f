package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (NEONSENTI_SERVER_PORT, ...)
const EnvPrefix = "NEONSENTI"

// Model backends
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
	Cache  RedisConfig  `mapstructure:"cache"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ModelConfig selects and configures the sentiment model backend
type ModelConfig struct {
	Backend string `mapstructure:"backend"`
	// ID is the pretrained model identifier used by the remote backend.
	ID string `mapstructure:"id"`
	// OnnxRepo is the ONNX export of the same model, used by the local backend.
	OnnxRepo string        `mapstructure:"onnx_repo"`
	Dir      string        `mapstructure:"dir"`
	Endpoint string        `mapstructure:"endpoint"`
	APIToken string        `mapstructure:"api_token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig holds settings for the optional prediction cache
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Addr returns the redis address in host:port form
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BatchConfig bounds batch requests
type BatchConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults, an optional config file and the environment
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Model.Backend {
	case BackendLocal, BackendRemote:
	default:
		return fmt.Errorf("invalid model backend %q: must be %q or %q", c.Model.Backend, BackendLocal, BackendRemote)
	}
	if c.Model.Backend == BackendRemote && c.Model.Endpoint == "" {
		return errors.New("model endpoint is required for the remote backend")
	}
	if c.Batch.MaxSize < 1 {
		return fmt.Errorf("batch max_size must be positive, got %d", c.Batch.MaxSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	// Model
	v.SetDefault("model.backend", BackendLocal)
	v.SetDefault("model.id", "distilbert/distilbert-base-uncased-finetuned-sst-2-english")
	v.SetDefault("model.onnx_repo", "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english")
	v.SetDefault("model.dir", "./models")
	v.SetDefault("model.endpoint", "https://router.huggingface.co/hf-inference")
	v.SetDefault("model.api_token", "")
	v.SetDefault("model.timeout", 60*time.Second)

	// Cache
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", time.Hour)

	// Batch
	v.SetDefault("batch.max_size", 1000)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
