package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"payflow/internal/domain/event"
	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
	"payflow/internal/pkg/logging"
)

const (
	serviceName    = "payment-service"
	spanPrefix     = "UC."
	publishTimeout = 300 * time.Millisecond
)

// ErrRepository wraps unexpected failures from the repository ports so
// callers can distinguish infrastructure trouble from domain rejections.
var ErrRepository = errors.New("payment: repository failure")

// Metrics holds the RED vectors shared by all payment use cases. Registered
// once in main and passed down; nil disables metric emission.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "usecase_requests_total",
				Help: "Total number of use case invocations.",
			},
			[]string{"use_case", "outcome"},
		),
		Durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "usecase_duration_seconds",
				Help:    "Duration of use case execution in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"use_case"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Durations)
	}
	return m
}

// telemetry carries the span/metrics/logging plumbing every use case shares.
type telemetry struct {
	tracer    trace.Tracer
	log       *zap.Logger
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func newTelemetry(log *zap.Logger, m *Metrics) telemetry {
	if log == nil {
		log = zap.NewNop()
	}
	t := telemetry{
		tracer: otel.Tracer(serviceName),
		log:    log.With(zap.String("service", serviceName)),
	}
	if m != nil {
		t.requests = m.Requests
		t.durations = m.Durations
	}
	return t
}

// start opens a span for the use case and returns a done func to be deferred.
// done records the outcome on the span, the RED metrics, and one
// use_case_done log line.
func (t telemetry) start(ctx context.Context, useCase string, attrs ...attribute.KeyValue) (context.Context, trace.Span, func(err error)) {
	spanAttrs := append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := t.tracer.Start(ctx, spanPrefix+useCase, trace.WithAttributes(spanAttrs...))

	logger := logging.FromOr(ctx, t.log).With(zap.String("use_case", useCase))
	startAt := time.Now()

	done := func(err error) {
		lat := time.Since(startAt).Seconds()

		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		if t.requests != nil {
			t.requests.WithLabelValues(useCase, outcome).Inc()
		}
		if t.durations != nil {
			t.durations.WithLabelValues(useCase).Observe(lat)
		}

		fields := []zap.Field{
			zap.String("outcome", outcome),
			zap.Float64("latency_seconds", lat),
		}
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Info("use_case_done", fields...)
	}

	return ctx, span, done
}

// publishCreated emits payment.created after a successful save. Best effort:
// a publish failure is logged, never surfaced to the caller.
func publishCreated(ctx context.Context, bus event.Publisher, log *zap.Logger, p *dompay.Payment) {
	if bus == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := bus.Publish(pubCtx, dompay.NewCreatedEvent(p)); err != nil {
		log.Warn("payment_created_publish_failed",
			zap.String("payment_id", p.ID),
			zap.Error(err),
		)
	}
}

func wrapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dompay.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrRepository, err)
	}
}
