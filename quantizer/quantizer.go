package quantizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/danielorbach/go-component"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/pubsub"
	"golang.org/x/sync/errgroup"

	"github.com/go-digitaltwin/go-simvalue"
)

// Options configures a quantizer.
type Options struct {
	// Quantum is how far a signal may drift from the prediction made from its
	// last emitted sample before a new sample is emitted.
	Quantum float64
	// Order limits the number of derivatives of emitted samples, and therefore
	// the degree of the predictions made from them.
	Order simvalue.Order
}

func (o Options) validate() error {
	if !(o.Quantum > 0) || math.IsInf(o.Quantum, 1) {
		return fmt.Errorf("quantum must be positive and finite, got %v", o.Quantum)
	}
	if o.Order < 0 {
		return fmt.Errorf("order must not be negative, got %d", o.Order)
	}
	return nil
}

// errMalformed marks messages that can never be handled.
var errMalformed = errors.New("malformed message")

type quantizer struct {
	name   string
	opts   Options
	source *pubsub.Subscription
	sink   *pubsub.Topic
	// emitted holds the last sample sent to the sink for every signal, which is
	// what subscribers of the sink extrapolate from.
	emitted *SignalMap
}

// NewQuantizer returns a [component.Procedure] that consumes Batch messages
// from the given source and publishes to the given sink only the samples that
// left their quantum band: those whose value is not within opts.Quantum of the
// extrapolation of the last sample emitted for the same signal. The first
// sample of every signal is always emitted.
//
// Every emitted sample is sent as a Batch of its own, with the signal name as
// the "signal" metadata of the message.
//
// The quantizer measures the duration of handling each batch and the number of
// emitted and suppressed samples, and labels each record with the provided
// name.
func NewQuantizer(name string, opts Options, source *pubsub.Subscription, sink *pubsub.Topic) (component.Procedure, error) {
	q, err := newQuantizer(name, opts, source, sink)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func newQuantizer(name string, opts Options, source *pubsub.Subscription, sink *pubsub.Topic) (*quantizer, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("quantizer %q: %w", name, err)
	}
	return &quantizer{
		name:    name,
		opts:    opts,
		source:  source,
		sink:    sink,
		emitted: NewSignalMap(nil),
	}, nil
}

func (q *quantizer) Exec(l *component.L) {
	logger := component.Logger(l.Context()).With(slog.String("quantizer", q.name))
	for l.Continue() {
		msg, err := q.source.Receive(l.GraceContext())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return
			}
			l.Fatal(fmt.Errorf("receive: %w", err))
		}

		err = q.handleMessage(l.GraceContext(), logger, msg)
		switch {
		case errors.Is(err, errMalformed):
			// Redelivery would fail the same way.
			logger.Warn("Skipping malformed Batch message", slog.Any("error", err))
		case err != nil:
			// Samples of the batch that were not published would be lost if we moved on,
			// so we stop without acknowledging it and let the batch be redelivered.
			logger.Error("Couldn't handle Batch message", slog.Any("error", err))
			l.Fatal(fmt.Errorf("handle message %s: %w", msg.LoggableID, err))
		}

		// Acknowledge the message only once handled, as the service maintains an
		// at-least-once delivery constraint.
		msg.Ack()
	}
}

// handleMessage quantizes the Batch in msg and publishes the emitted samples.
// The samples are committed as emitted only if all of them were published.
func (q *quantizer) handleMessage(ctx context.Context, logger *slog.Logger, msg *pubsub.Message) (err error) {
	ctx, span := tracer.Start(ctx, "quantizer.handleMessage", trace.WithAttributes(
		attribute.String("msg.id", msg.LoggableID),
	))
	defer span.End()

	defer func(start time.Time) {
		measureQuantization(ctx, q.name, err == nil, time.Since(start))
	}(time.Now())

	logger.Debug("Decoding Batch message using gob...")
	batch, err := DecodeBatch(msg.Body)
	if err != nil {
		err := fmt.Errorf("%w: %w", errMalformed, err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	emit, suppressed, err := q.quantize(batch)
	if err != nil {
		err := fmt.Errorf("%w: %w", errMalformed, err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	logger = logger.With(slog.Int("emitted", len(emit)), slog.Int("suppressed", suppressed))

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range emit {
		g.Go(func() error {
			return q.publish(gctx, logger, s, batch.Timestamp)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("send samples: %w", err)
	}

	for _, s := range emit {
		q.emitted.Update(s.Signal, s.Smooth(q.opts.Order))
	}
	measureSamples(ctx, q.name, len(emit), suppressed)
	logger.Debug("Batch message handled successfully")
	return nil
}

// quantize returns the samples of batch that must be emitted, at most one per
// signal, and the number of samples it suppressed.
func (q *quantizer) quantize(batch Batch) (emit []Sample, suppressed int, err error) {
	// Later samples of a signal in the same batch are predicted from the ones
	// emitted before them, and replace them.
	pending := make(map[string]int)
	for _, s := range batch.Samples {
		x := s.Smooth(q.opts.Order)

		var last simvalue.Smooth
		var ok bool
		if i, found := pending[s.Signal]; found {
			last, ok = emit[i].Smooth(q.opts.Order).Extrapolate(x.Time()), true
		} else {
			last, ok = q.emitted.At(s.Signal, x.Time())
		}
		if ok {
			near, err := simvalue.IsCloseTo(last, x, q.opts.Quantum)
			if err != nil {
				return nil, 0, fmt.Errorf("signal %q: %w", s.Signal, err)
			}
			if near {
				suppressed++
				continue
			}
		}

		out, err := NewSample(s.Signal, x)
		if err != nil {
			return nil, 0, err
		}
		if i, found := pending[s.Signal]; found {
			emit[i] = out
			suppressed++
			continue
		}
		pending[s.Signal] = len(emit)
		emit = append(emit, out)
	}
	return emit, suppressed, nil
}

func (q *quantizer) publish(ctx context.Context, logger *slog.Logger, s Sample, timestamp time.Time) error {
	ctx, span := tracer.Start(ctx, "quantizer.publish", trace.WithAttributes(
		attribute.String("signal", s.Signal),
	))
	defer span.End()

	body, err := Batch{Samples: []Sample{s}, Timestamp: timestamp}.Encode()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	logger.Debug("Sending sample...", slog.String("signal", s.Signal))
	// The signal name is carried as metadata to enable key-based partitioning in
	// brokers that support it, which keeps the samples of a signal in order.
	msg := &pubsub.Message{Body: body, Metadata: map[string]string{"signal": s.Signal}}
	if err := q.sink.Send(ctx, msg); err != nil {
		err := fmt.Errorf("send: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
