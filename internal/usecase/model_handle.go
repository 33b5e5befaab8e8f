package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

// ModelHandle lazily loads a single model instance and reuses it for the
// lifetime of the process. Only successful loads are cached.
type ModelHandle struct {
	loader service.ModelLoader
	logger *zap.Logger

	// loadMu serializes loads. Readers go through model and never wait on it.
	loadMu sync.Mutex
	model  atomic.Pointer[loadedModel]
}

type loadedModel struct {
	model service.Model
}

// NewModelHandle creates an unloaded model handle
func NewModelHandle(loader service.ModelLoader, logger *zap.Logger) *ModelHandle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelHandle{
		loader: loader,
		logger: logger,
	}
}

// Acquire returns the loaded model, loading it on first use
func (h *ModelHandle) Acquire(ctx context.Context) (service.Model, error) {
	if loaded := h.model.Load(); loaded != nil {
		return loaded.model, nil
	}

	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	if loaded := h.model.Load(); loaded != nil {
		return loaded.model, nil
	}

	h.logger.Info("Loading sentiment model")
	model, err := h.loader.Load(ctx)
	if err != nil {
		h.logger.Error("Failed to load sentiment model", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: loader returned no model", ErrModelLoad)
	}

	h.model.Store(&loadedModel{model: model})
	h.logger.Info("Sentiment model loaded")
	return model, nil
}

// Loaded reports whether the model has been loaded. It does not wait for a
// load in progress.
func (h *ModelHandle) Loaded() bool {
	return h.model.Load() != nil
}

// Close releases the model if it holds native resources. It is meant to be
// called once at process exit.
func (h *ModelHandle) Close() error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	loaded := h.model.Load()
	if loaded == nil {
		return nil
	}
	closer, ok := loaded.model.(io.Closer)
	if !ok {
		return nil
	}
	return closer.Close()
}
