package service

import "context"

// RawPrediction is the model's top label and confidence in its own vocabulary
type RawPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Model defines the interface for a pretrained text-classification model
type Model interface {
	// Predict returns the top label and confidence for a single text
	Predict(ctx context.Context, text string) (*RawPrediction, error)
}

// ModelLoader instantiates a Model. It is called at most once per successful load.
type ModelLoader interface {
	Load(ctx context.Context) (Model, error)
}

// ModelLoaderFunc adapts a function to the ModelLoader interface
type ModelLoaderFunc func(ctx context.Context) (Model, error)

// Load calls f(ctx)
func (f ModelLoaderFunc) Load(ctx context.Context) (Model, error) {
	return f(ctx)
}
