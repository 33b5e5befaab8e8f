package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

func TestModelHandle_Acquire(t *testing.T) {
	t.Run("loads once and reuses the instance", func(t *testing.T) {
		model := new(MockModel)
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(model, nil).Once()

		handle := NewModelHandle(loader, nil)
		assert.False(t, handle.Loaded())

		first, err := handle.Acquire(context.Background())
		require.NoError(t, err)
		second, err := handle.Acquire(context.Background())
		require.NoError(t, err)

		assert.Same(t, model, first)
		assert.Same(t, first, second)
		assert.True(t, handle.Loaded())
		loader.AssertNumberOfCalls(t, "Load", 1)
	})

	t.Run("wraps load failure", func(t *testing.T) {
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(nil, errors.New("connection refused"))

		handle := NewModelHandle(loader, nil)
		model, err := handle.Acquire(context.Background())

		assert.Nil(t, model)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrModelLoad)
		assert.Equal(t, "failed to load model: connection refused", err.Error())
		assert.False(t, handle.Loaded())
	})

	t.Run("does not cache a failed load", func(t *testing.T) {
		model := new(MockModel)
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(nil, errors.New("missing weights")).Once()
		loader.On("Load", mock.Anything).Return(model, nil).Once()

		handle := NewModelHandle(loader, nil)

		_, err := handle.Acquire(context.Background())
		require.Error(t, err)

		got, err := handle.Acquire(context.Background())
		require.NoError(t, err)
		assert.Same(t, model, got)
		loader.AssertNumberOfCalls(t, "Load", 2)
	})

	t.Run("rejects a nil model", func(t *testing.T) {
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(nil, nil)

		handle := NewModelHandle(loader, nil)
		_, err := handle.Acquire(context.Background())

		assert.ErrorIs(t, err, ErrModelLoad)
	})

	t.Run("concurrent first use loads once", func(t *testing.T) {
		model := new(MockModel)
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(model, nil)

		handle := NewModelHandle(loader, nil)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := handle.Acquire(context.Background())
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		loader.AssertNumberOfCalls(t, "Load", 1)
	})

	t.Run("loaded does not wait for a load in progress", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		loader := service.ModelLoaderFunc(func(context.Context) (service.Model, error) {
			close(started)
			<-release
			return new(MockModel), nil
		})
		handle := NewModelHandle(loader, nil)

		acquired := make(chan error, 1)
		go func() {
			_, err := handle.Acquire(context.Background())
			acquired <- err
		}()
		<-started

		status := make(chan bool, 1)
		go func() { status <- handle.Loaded() }()

		select {
		case loaded := <-status:
			assert.False(t, loaded)
		case <-time.After(2 * time.Second):
			t.Error("Loaded blocked while the model was loading")
		}

		close(release)
		require.NoError(t, <-acquired)
		assert.True(t, handle.Loaded())
	})

	t.Run("logs load lifecycle", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(new(MockModel), nil)

		handle := NewModelHandle(loader, zap.New(core))
		_, err := handle.Acquire(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, logs.FilterMessage("Loading sentiment model").Len())
		assert.Equal(t, 1, logs.FilterMessage("Sentiment model loaded").Len())
	})
}

func TestModelHandle_Close(t *testing.T) {
	t.Run("closes a closable model", func(t *testing.T) {
		model := new(closingModel)
		loader := new(MockLoader)
		loader.On("Load", mock.Anything).Return(model, nil)

		handle := NewModelHandle(loader, nil)
		_, err := handle.Acquire(context.Background())
		require.NoError(t, err)

		assert.NoError(t, handle.Close())
		assert.Equal(t, 1, model.closed)
	})

	t.Run("no-op when unloaded", func(t *testing.T) {
		handle := NewModelHandle(new(MockLoader), nil)
		assert.NoError(t, handle.Close())
	})
}
