package backend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/cache"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/client"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/pipeline"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/config"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/metrics"
)

// Options holds the optional decorators applied to the model loader
type Options struct {
	// Store enables the prediction cache when non-nil
	Store   cache.Store
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewLoader builds the model loader for the configured backend
func NewLoader(cfg *config.Config, opts Options) (service.ModelLoader, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		loader  service.ModelLoader
		modelID string
	)
	switch cfg.Model.Backend {
	case config.BackendLocal:
		loader = pipeline.NewLoader(cfg.Model.OnnxRepo, cfg.Model.Dir, logger)
		modelID = cfg.Model.OnnxRepo
	case config.BackendRemote:
		c := client.NewInferenceClient(cfg.Model.Endpoint, cfg.Model.ID, cfg.Model.APIToken, cfg.Model.Timeout)
		loader = client.NewRemoteLoader(c)
		modelID = cfg.Model.ID
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Model.Backend)
	}

	if opts.Store != nil {
		loader = cache.WrapLoader(loader, opts.Store, modelID, cfg.Cache.TTL, logger)
	}
	if opts.Metrics != nil {
		loader = opts.Metrics.InstrumentLoader(loader)
	}

	logger.Info("Model backend configured",
		zap.String("backend", cfg.Model.Backend),
		zap.String("model", modelID),
		zap.Bool("cache", opts.Store != nil),
	)

	return loader, nil
}
