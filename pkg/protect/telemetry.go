package protect

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/adri-oss/adri-go/pkg/protect"

// telemetry instruments the resolve -> ensure -> assess -> decide ->
// audit pipeline with spans and a call counter (SPEC_FULL.md's ambient
// stack). Since §5 forbids network I/O, spans are recorded in-process
// via tracetest's in-memory exporter instead of shipped over OTLP;
// Guard.Spans exposes them for callers/tests that want to assert on
// the pipeline's shape without standing up a collector.
type telemetry struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	exporter *tracetest.InMemoryExporter
	calls    metric.Int64Counter
}

func newTelemetry() *telemetry {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	counter, _ := otel.Meter(instrumentationName).Int64Counter(
		"adri.protect.calls",
		metric.WithDescription("protect_function_call invocations by execution decision"),
	)
	return &telemetry{
		tracer:   provider.Tracer(instrumentationName),
		provider: provider,
		exporter: exporter,
		calls:    counter,
	}
}

// Spans returns every span recorded by this Guard so far, oldest first.
func (g *Guard) Spans() tracetest.SpanStubs {
	return g.tel.exporter.GetSpans()
}

// startSpan opens the per-call span with the attributes known before
// resolution; callers annotate it further as the pipeline progresses.
func (t *telemetry) startSpan(ctx context.Context, opts RunOptions) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "protect_function_call", trace.WithAttributes(
		attribute.String("adri.function_name", opts.FunctionName),
		attribute.String("adri.data_param", opts.DataParam),
	))
}

func (t *telemetry) recordDecision(ctx context.Context, span trace.Span, standardID string, decision string, score float64) {
	span.SetAttributes(
		attribute.String("adri.standard_id", standardID),
		attribute.String("adri.decision", decision),
		attribute.Float64("adri.overall_score", score),
	)
	t.calls.Add(ctx, 1, metric.WithAttributes(attribute.String("adri.decision", decision)))
}

func (t *telemetry) recordError(span trace.Span, err error) {
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
