package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/backend"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/cache"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/config"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/metrics"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/usecase"
)

var (
	// Global flags
	modelBackend string
	logLevel     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "neonsenti",
	Short: "Neon Senti - sentiment analysis with DistilBERT",
	Long: `Neon Senti classifies text as Positive, Negative or Neutral with a
pretrained DistilBERT sentiment model.

Run "neonsenti serve" for the HTTP API or "neonsenti classify" for one-off
predictions from the terminal. Settings come from config.yaml, .env and
NEONSENTI_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelBackend, "backend", "", "model backend: local or remote (overrides model.backend)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and applies command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if modelBackend != "" {
		cfg.Model.Backend = modelBackend
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// components is the wired sentiment stack shared by serve and classify
type components struct {
	sentiment usecase.SentimentUsecase
	handle    *usecase.ModelHandle
	redis     *redis.Client
}

// Close releases the model and the redis connection
func (c *components) Close(log *zap.Logger) {
	if err := c.handle.Close(); err != nil {
		log.Warn("Failed to release model", zap.Error(err))
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

// buildComponents wires the backend, the optional cache and metrics into a
// sentiment usecase. reg may be nil to skip metrics.
func buildComponents(cfg *config.Config, log *zap.Logger, reg prometheus.Registerer) (*components, error) {
	opts := backend.Options{Logger: log}

	// Redis is optional, continue without the cache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		client, err := cache.NewRedisClient(&cfg.Cache)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
		} else {
			log.Info("Connected to Redis", zap.String("addr", cfg.Cache.Addr()))
			redisClient = client
			opts.Store = client
		}
	}

	if reg != nil {
		opts.Metrics = metrics.New(reg)
	}

	loader, err := backend.NewLoader(cfg, opts)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}

	handle := usecase.NewModelHandle(loader, log)
	return &components{
		sentiment: usecase.NewSentimentUsecase(handle, cfg.Batch.MaxSize),
		handle:    handle,
		redis:     redisClient,
	}, nil
}
