package simvalue

import "math"

// The functions below operate on a value and its derivatives as a truncated
// Taylor series. They never modify their arguments.

// taylorShift advances value and its derivatives by dt.
func taylorShift(value float64, derivatives []float64, dt float64) (float64, []float64) {
	switch len(derivatives) {
	case 0:
		return value, nil
	case 1:
		return value + dt*derivatives[0], derivatives
	}

	n := len(derivatives) + 1
	// fact[i] = dt^i / i!
	fact := make([]float64, n)
	fact[0] = 1
	for i := 1; i < n; i++ {
		fact[i] = dt * fact[i-1] / float64(i)
	}
	at := func(i int) float64 {
		if i == 0 {
			return value
		}
		return derivatives[i-1]
	}
	shifted := make([]float64, n)
	for i := range n {
		for j := 0; i+j < n; j++ {
			shifted[i] += at(i+j) * fact[j]
		}
	}
	return shifted[0], shifted[1:]
}

// sumDerivatives returns a + sign*b, treating missing derivatives as zero.
func sumDerivatives(a, b []float64, sign float64) []float64 {
	n := max(len(a), len(b))
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = derivativeAt(a, i) + sign*derivativeAt(b, i)
	}
	return out
}

func derivativeAt(d []float64, i int) float64 {
	if i < len(d) {
		return d[i]
	}
	return 0
}

func scaleDerivatives(d []float64, k float64) []float64 {
	if len(d) == 0 {
		return nil
	}
	out := make([]float64, len(d))
	for i, x := range d {
		out[i] = k * x
	}
	return out
}

// taylorCoefficients returns the value followed by each k-th derivative over
// k!, up to the n-th term.
func taylorCoefficients(value float64, derivatives []float64, n int) []float64 {
	c := make([]float64, n+1)
	c[0] = value
	f := 1.0
	for i := 1; i <= n; i++ {
		f *= float64(i)
		c[i] = derivativeAt(derivatives, i-1) / f
	}
	return c
}

// fromTaylorCoefficients is the inverse of taylorCoefficients, dropping the
// value term.
func fromTaylorCoefficients(c []float64) []float64 {
	out := make([]float64, len(c)-1)
	f := 1.0
	for k := 1; k < len(c); k++ {
		f *= float64(k)
		out[k-1] = c[k] * f
	}
	return out
}

// productDerivatives applies the general Leibniz rule to x·y. When either
// operand is constant this is the scale rule.
func productDerivatives(x float64, dx []float64, y float64, dy []float64) []float64 {
	switch {
	case len(dx) == 0:
		return scaleDerivatives(dy, x)
	case len(dy) == 0:
		return scaleDerivatives(dx, y)
	}
	n := max(len(dx), len(dy))
	p := taylorCoefficients(x, dx, n)
	q := taylorCoefficients(y, dy, n)
	r := make([]float64, n+1)
	for k := range r {
		for i := 0; i <= k; i++ {
			r[k] += p[i] * q[k-i]
		}
	}
	return fromTaylorCoefficients(r)
}

// quotientDerivatives returns the derivatives of x/y by dividing the Taylor
// series of x by that of y.
func quotientDerivatives(x float64, dx []float64, y float64, dy []float64) []float64 {
	if len(dy) == 0 {
		return scaleDerivatives(dx, 1/y)
	}
	n := max(len(dx), len(dy))
	a := taylorCoefficients(x, dx, n)
	b := taylorCoefficients(y, dy, n)
	q := make([]float64, n+1)
	for k := range q {
		s := a[k]
		for j := 1; j <= k; j++ {
			s -= b[j] * q[k-j]
		}
		q[k] = s / b[0]
	}
	return fromTaylorCoefficients(q)
}

// moduloDerivatives returns x mod y. Away from the discontinuities of the
// remainder, x mod y = x - n·y for the constant n = trunc(x/y).
func moduloDerivatives(x float64, dx []float64, y float64, dy []float64) (float64, []float64) {
	n := math.Trunc(x / y)
	return math.Mod(x, y), sumDerivatives(dx, scaleDerivatives(dy, n), -1)
}
