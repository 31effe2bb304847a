// Package simvalue provides the immutable value types exchanged between the
// components of a numeric simulation; a value is a number (of a specific
// width and representation), an array of values, a matrix of numbers, or a
// derivative-carrying Smooth value used by quantized-state integrators.
//
// Every value has a Type, and types are partially ordered in a lattice where
// a type is "higher" than another if it can losslessly represent all of the
// other's values. Binary operations (Add, Subtract, Multiply, Divide, Modulo,
// IsEqualTo, IsCloseTo and the orderings) accept operands of any two types:
// the lower operand is converted to the higher type before the operation runs,
// and operands of incomparable types are both converted to their least upper
// bound, if it is a concrete type. Arrays and matrices broadcast scalars
// against their elements.
//
// Scalars carry physical units as a vector of exponents (see UnitVector).
// Additive operations require identical units; multiplicative operations
// combine them.
//
// Failures are reported with an *OperationError that names the operation and
// both operands; use errors.Is with the package's sentinel errors (e.g.
// ErrUnitMismatch) to classify them.
package simvalue
