package simvalue

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/go-digitaltwin/go-simvalue")

// ---- dispatch.go ----

const (
	// operationName is the attribute key naming the dispatched operation (e.g.
	// "add" or "isCloseTo").
	operationName = "operation"
	// fromType and toType are the attribute keys of the types involved in a
	// promotion; rescue records carry both operand types and their least upper
	// bound instead.
	fromType  = "type.from"
	toType    = "type.to"
	leftType  = "type.left"
	rightType = "type.right"
)

var (
	// promotions counts operands converted to the type of the other operand.
	//
	// Each record is associated with the operationName, fromType and toType.
	promotions metric.Int64Counter
	// rescues counts operand pairs of incomparable types that were both
	// converted to their least upper bound.
	//
	// Each record is associated with the operationName, leftType, rightType and
	// toType.
	rescues metric.Int64Counter
	// failures counts binary operations that returned an error.
	//
	// Each record is associated with the operationName, leftType and rightType.
	failures metric.Int64Counter
)

func init() {
	var err error
	promotions, err = meter.Int64Counter(
		"simvalue.dispatch.promotions",
		metric.WithDescription("The number of operands converted to the type of the other operand before an operation."),
	)
	if err != nil {
		panic("simvalue: failed to init 'simvalue.dispatch.promotions' instrument")
	}

	rescues, err = meter.Int64Counter(
		"simvalue.dispatch.rescues",
		metric.WithDescription("The number of operand pairs of incomparable types converted to their least upper bound."),
	)
	if err != nil {
		panic("simvalue: failed to init 'simvalue.dispatch.rescues' instrument")
	}

	failures, err = meter.Int64Counter(
		"simvalue.dispatch.failures",
		metric.WithDescription("The number of operations that have failed."),
	)
	if err != nil {
		panic("simvalue: failed to init 'simvalue.dispatch.failures' instrument")
	}
}

// Operations on values are pure functions without a context of their own, so
// the measurements below are recorded against the background context.
//
// According to [metric] documentation, [metric.WithAttributeSet] should be used
// instead of [metric.WithAttributes] for performance optimization.

func measurePromotion(op string, from, to Type) {
	attrs := attribute.NewSet(
		attribute.String(operationName, op),
		attribute.Stringer(fromType, from),
		attribute.Stringer(toType, to),
	)
	promotions.Add(context.Background(), 1, metric.WithAttributeSet(attrs))
}

func measureRescue(op string, left, right, lub Type) {
	attrs := attribute.NewSet(
		attribute.String(operationName, op),
		attribute.Stringer(leftType, left),
		attribute.Stringer(rightType, right),
		attribute.Stringer(toType, lub),
	)
	rescues.Add(context.Background(), 1, metric.WithAttributeSet(attrs))
}

func measureFailure(op string, left, right Type) {
	attrs := attribute.NewSet(
		attribute.String(operationName, op),
		attribute.Stringer(leftType, left),
		attribute.Stringer(rightType, right),
	)
	failures.Add(context.Background(), 1, metric.WithAttributeSet(attrs))
}
