package quantizer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("github.com/go-digitaltwin/go-simvalue/quantizer")
var meter = otel.Meter("github.com/go-digitaltwin/go-simvalue/quantizer")

const (
	// quantizerName is the attribute key used to associate each record with the
	// name of the quantizer that made it.
	quantizerName = "quantizer"
)

var (
	// quantizationDuration measures the duration of handling a single Batch,
	// including the duration it took to publish the emitted samples.
	quantizationDuration metric.Float64Histogram
	// quantizationFailures measures the number of batches that couldn't be
	// handled.
	quantizationFailures metric.Int64Counter
	// emittedSamples and suppressedSamples count the samples that were
	// published and those whose value was predictable, respectively.
	emittedSamples    metric.Int64Counter
	suppressedSamples metric.Int64Counter
)

func init() {
	var err error
	quantizationDuration, err = meter.Float64Histogram(
		"quantizer.batch.duration",
		metric.WithDescription("The duration of handling a single Batch, including the duration it took to publish the emitted samples."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("quantizer: failed to init 'quantizer.batch.duration' instrument")
	}

	quantizationFailures, err = meter.Int64Counter(
		"quantizer.batch.failures",
		metric.WithDescription("The number of batches that couldn't be handled."),
	)
	if err != nil {
		panic("quantizer: failed to init 'quantizer.batch.failures' instrument")
	}

	emittedSamples, err = meter.Int64Counter(
		"quantizer.samples.emitted",
		metric.WithDescription("The number of samples published because they left their quantum band."),
	)
	if err != nil {
		panic("quantizer: failed to init 'quantizer.samples.emitted' instrument")
	}

	suppressedSamples, err = meter.Int64Counter(
		"quantizer.samples.suppressed",
		metric.WithDescription("The number of samples dropped because they were within their quantum band."),
	)
	if err != nil {
		panic("quantizer: failed to init 'quantizer.samples.suppressed' instrument")
	}
}

// measureQuantization records the duration of a successful batch, or counts a
// failed one.
func measureQuantization(ctx context.Context, name string, succeeded bool, d time.Duration) {
	attrs := attribute.NewSet(attribute.String(quantizerName, name))
	if succeeded {
		duration := float64(d) / float64(time.Millisecond)
		quantizationDuration.Record(ctx, duration, metric.WithAttributeSet(attrs))
	} else {
		quantizationFailures.Add(ctx, 1, metric.WithAttributeSet(attrs))
	}
}

func measureSamples(ctx context.Context, name string, emitted, suppressed int) {
	attrs := attribute.NewSet(attribute.String(quantizerName, name))
	emittedSamples.Add(ctx, int64(emitted), metric.WithAttributeSet(attrs))
	suppressedSamples.Add(ctx, int64(suppressed), metric.WithAttributeSet(attrs))
}
