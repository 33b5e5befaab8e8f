package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

const keyPrefix = "neonsenti:prediction:"

// Store is the subset of the redis client used by the cache
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedModel memoizes raw model predictions in redis. Cache failures are
// logged and fall through to the wrapped model.
type CachedModel struct {
	next    service.Model
	store   Store
	modelID string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedModel wraps next with a redis-backed prediction cache
func NewCachedModel(next service.Model, store Store, modelID string, ttl time.Duration, logger *zap.Logger) *CachedModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedModel{
		next:    next,
		store:   store,
		modelID: modelID,
		ttl:     ttl,
		logger:  logger,
	}
}

// Predict returns a cached prediction for text or asks the wrapped model
func (m *CachedModel) Predict(ctx context.Context, text string) (*service.RawPrediction, error) {
	key := Key(m.modelID, text)

	if cached, ok := m.lookup(ctx, key); ok {
		return cached, nil
	}

	prediction, err := m.next.Predict(ctx, text)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(prediction)
	if err != nil {
		m.logger.Warn("Failed to encode prediction for cache", zap.Error(err))
		return prediction, nil
	}
	if err := m.store.Set(ctx, key, data, m.ttl).Err(); err != nil {
		m.logger.Warn("Failed to write prediction cache", zap.Error(err))
	}

	return prediction, nil
}

// Close closes the wrapped model when it holds resources
func (m *CachedModel) Close() error {
	if closer, ok := m.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (m *CachedModel) lookup(ctx context.Context, key string) (*service.RawPrediction, bool) {
	data, err := m.store.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.logger.Warn("Failed to read prediction cache", zap.Error(err))
		}
		return nil, false
	}

	var prediction service.RawPrediction
	if err := json.Unmarshal(data, &prediction); err != nil {
		m.logger.Warn("Discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &prediction, true
}

// Key builds the cache key for a model and (already truncated) text
func Key(modelID, text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + modelID + ":" + hex.EncodeToString(sum[:])
}

// WrapLoader decorates every model produced by loader with the cache
func WrapLoader(loader service.ModelLoader, store Store, modelID string, ttl time.Duration, logger *zap.Logger) service.ModelLoader {
	return service.ModelLoaderFunc(func(ctx context.Context) (service.Model, error) {
		model, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		return NewCachedModel(model, store, modelID, ttl, logger), nil
	})
}
