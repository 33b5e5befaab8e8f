package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/entity"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/service"
)

const (
	namespace = "neonsenti"

	// otherLabel stands in for raw labels outside the model's known vocabulary
	otherLabel = "other"
)

// Metrics holds the Prometheus collectors for model activity
type Metrics struct {
	ModelLoads       *prometheus.CounterVec
	Invocations      *prometheus.CounterVec
	InvocationErrors prometheus.Counter
	Duration         prometheus.Histogram
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ModelLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_loads_total",
			Help:      "Model load attempts by result.",
		}, []string{"result"}),
		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_invocations_total",
			Help:      "Successful model invocations by raw label (POSITIVE, NEGATIVE or other).",
		}, []string{"raw_label"}),
		InvocationErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_invocation_errors_total",
			Help:      "Failed model invocations.",
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_invocation_duration_seconds",
			Help:      "Model invocation latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

type instrumentedModel struct {
	next    service.Model
	metrics *Metrics
}

func (m *instrumentedModel) Predict(ctx context.Context, text string) (*service.RawPrediction, error) {
	start := time.Now()
	prediction, err := m.next.Predict(ctx, text)
	m.metrics.Duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.metrics.InvocationErrors.Inc()
		return nil, err
	}
	m.metrics.Invocations.WithLabelValues(rawLabelValue(prediction.Label)).Inc()
	return prediction, nil
}

func (m *instrumentedModel) Close() error {
	if closer, ok := m.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// rawLabelValue keeps the label set bounded whatever the backend returns
func rawLabelValue(label string) string {
	switch label {
	case entity.RawLabelPositive, entity.RawLabelNegative:
		return label
	default:
		return otherLabel
	}
}

// InstrumentLoader counts loads and instruments every model the loader produces
func (m *Metrics) InstrumentLoader(loader service.ModelLoader) service.ModelLoader {
	return service.ModelLoaderFunc(func(ctx context.Context) (service.Model, error) {
		model, err := loader.Load(ctx)
		if err != nil {
			m.ModelLoads.WithLabelValues("error").Inc()
			return nil, err
		}
		m.ModelLoads.WithLabelValues("success").Inc()
		return &instrumentedModel{next: model, metrics: m}, nil
	})
}
