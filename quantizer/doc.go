// Package quantizer republishes streams of smooth signal samples, keeping only
// the samples a subscriber could not have predicted.
//
// A quantized-state integrator downstream of a model does not need every
// sample of every signal: given the last sample it received, it extrapolates
// the signal along its derivatives (see simvalue.Smooth.Extrapolate). The
// quantizer runs the same prediction and emits a new sample only once the
// actual value drifts more than a quantum away from it.
//
// Samples travel as gob encoded Batch messages over gocloud.dev/pubsub. Use
// NewQuantizer to run a quantizer as a component, and TrackSignals to keep a
// SignalMap of the latest sample of each signal on the consuming side.
package quantizer
