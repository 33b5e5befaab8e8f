package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/entity"
)

// Error definitions for sentiment usecase
var (
	ErrInvalidInput  = errors.New("input must be a string")
	ErrModelLoad     = errors.New("failed to load model")
	ErrBatchTooLarge = errors.New("batch too large")
)

// SentimentUsecase defines the interface for sentiment prediction
type SentimentUsecase interface {
	// PredictText classifies a single text
	PredictText(ctx context.Context, text string) (*entity.Prediction, error)

	// PredictValue classifies a dynamically typed value, rejecting anything but a string
	PredictValue(ctx context.Context, value interface{}) (*entity.Prediction, error)

	// PredictBatch classifies texts in order, echoing each original text
	PredictBatch(ctx context.Context, texts []string) ([]*entity.Prediction, error)

	// ModelLoaded reports whether the model handle has been loaded
	ModelLoaded() bool
}

type sentimentUsecase struct {
	handle       *ModelHandle
	maxBatchSize int
}

// NewSentimentUsecase creates a new sentiment usecase. A maxBatchSize of zero
// disables the batch size check.
func NewSentimentUsecase(handle *ModelHandle, maxBatchSize int) SentimentUsecase {
	return &sentimentUsecase{
		handle:       handle,
		maxBatchSize: maxBatchSize,
	}
}

func (u *sentimentUsecase) PredictText(ctx context.Context, text string) (*entity.Prediction, error) {
	return u.predict(ctx, text)
}

func (u *sentimentUsecase) PredictValue(ctx context.Context, value interface{}) (*entity.Prediction, error) {
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrInvalidInput, value)
	}
	return u.predict(ctx, text)
}

func (u *sentimentUsecase) PredictBatch(ctx context.Context, texts []string) ([]*entity.Prediction, error) {
	if u.maxBatchSize > 0 && len(texts) > u.maxBatchSize {
		return nil, fmt.Errorf("%w: %d texts, limit is %d", ErrBatchTooLarge, len(texts), u.maxBatchSize)
	}

	results := make([]*entity.Prediction, 0, len(texts))
	for _, text := range texts {
		prediction, err := u.predict(ctx, text)
		if err != nil {
			return nil, err
		}
		prediction.Text = text
		results = append(results, prediction)
	}

	return results, nil
}

func (u *sentimentUsecase) ModelLoaded() bool {
	return u.handle.Loaded()
}

func (u *sentimentUsecase) predict(ctx context.Context, text string) (*entity.Prediction, error) {
	model, err := u.handle.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := model.Predict(ctx, entity.TruncateInput(text))
	if err != nil {
		return nil, err
	}

	return &entity.Prediction{
		Label: entity.NormalizeLabel(raw.Label),
		Score: raw.Score,
	}, nil
}
