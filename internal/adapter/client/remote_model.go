package client

import (
	"context"
	"fmt"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

// warmupText is sent once at load time so the endpoint has the model resident
const warmupText = "ok"

// RemoteModel adapts InferenceClient to the Model interface
type RemoteModel struct {
	client *InferenceClient
}

// NewRemoteModel creates a new RemoteModel
func NewRemoteModel(client *InferenceClient) *RemoteModel {
	return &RemoteModel{client: client}
}

// Predict returns the highest scoring label for text
func (m *RemoteModel) Predict(ctx context.Context, text string) (*service.RawPrediction, error) {
	labels, err := m.client.Classify(ctx, text, nil)
	if err != nil {
		return nil, err
	}

	top := TopLabel(labels)
	return &service.RawPrediction{
		Label: top.Label,
		Score: top.Score,
	}, nil
}

// NewRemoteLoader returns a loader that verifies the endpoint serves the
// model before handing out a RemoteModel.
func NewRemoteLoader(client *InferenceClient) service.ModelLoader {
	return service.ModelLoaderFunc(func(ctx context.Context) (service.Model, error) {
		if _, err := client.Classify(ctx, warmupText, &InferenceOptions{WaitForModel: true}); err != nil {
			return nil, fmt.Errorf("model %s unavailable: %w", client.ModelID(), err)
		}
		return NewRemoteModel(client), nil
	})
}

// TopLabel returns the label with the highest score. labels must not be empty.
func TopLabel(labels []LabelScore) LabelScore {
	top := labels[0]
	for _, l := range labels[1:] {
		if l.Score > top.Score {
			top = l
		}
	}
	return top
}
