package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

// MockModel is a mock implementation of service.Model
type MockModel struct {
	mock.Mock
}

func (m *MockModel) Predict(ctx context.Context, text string) (*service.RawPrediction, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RawPrediction), args.Error(1)
}

// MockLoader is a mock implementation of service.ModelLoader
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context) (service.Model, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(service.Model), args.Error(1)
}

// closingModel records Close calls
type closingModel struct {
	MockModel
	closed int
}

func (m *closingModel) Close() error {
	m.closed++
	return nil
}
