// Package pipeline runs the sentiment model in process through a hugot
// text-classification pipeline backed by the pure Go ONNX runtime.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

const pipelineName = "sentiment-analysis"

// ErrNoOutput is returned when the pipeline produces no classification
var ErrNoOutput = errors.New("pipeline returned no classification")

// textClassifier is the part of *pipelines.TextClassificationPipeline the model uses
type textClassifier interface {
	RunPipeline(inputs []string) (*pipelines.TextClassificationOutput, error)
}

// LocalModel classifies text with an in-process hugot pipeline
type LocalModel struct {
	pipeline textClassifier
	destroy  func() error
}

// Predict returns the highest scoring label for text
func (m *LocalModel) Predict(_ context.Context, text string) (*service.RawPrediction, error) {
	out, err := m.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to run pipeline: %w", err)
	}
	return topClassification(out)
}

// Close destroys the underlying hugot session
func (m *LocalModel) Close() error {
	if m.destroy == nil {
		return nil
	}
	return m.destroy()
}

// Loader creates LocalModels from an ONNX model repository
type Loader struct {
	repo   string
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader for the ONNX export repo, cached under dir
func NewLoader(repo, dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{repo: repo, dir: dir, logger: logger}
}

// Load downloads the model if needed and builds the pipeline
func (l *Loader) Load(_ context.Context) (service.Model, error) {
	modelPath, err := l.ensureModel()
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	p, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      pipelineName,
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	return &LocalModel{pipeline: p, destroy: session.Destroy}, nil
}

// ModelPath returns where the repo is stored under the model directory
func (l *Loader) ModelPath() string {
	return filepath.Join(l.dir, strings.ReplaceAll(l.repo, "/", "_"))
}

func (l *Loader) ensureModel() (string, error) {
	path := l.ModelPath()
	if _, err := os.Stat(path); err == nil {
		l.logger.Debug("Using cached model", zap.String("path", path))
		return path, nil
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model dir: %w", err)
	}

	l.logger.Info("Downloading model", zap.String("repo", l.repo), zap.String("dir", l.dir))
	path, err := hugot.DownloadModel(l.repo, l.dir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", l.repo, err)
	}
	return path, nil
}

func topClassification(out *pipelines.TextClassificationOutput) (*service.RawPrediction, error) {
	if out == nil || len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return nil, ErrNoOutput
	}

	labels := out.ClassificationOutputs[0]
	top := labels[0]
	for _, l := range labels[1:] {
		if l.Score > top.Score {
			top = l
		}
	}

	return &service.RawPrediction{
		Label: top.Label,
		Score: float64(top.Score),
	}, nil
}
