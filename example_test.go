package simvalue_test

import (
	"errors"
	"fmt"

	"github.com/go-digitaltwin/go-simvalue"
)

// Operands of different kinds are promoted to a common type before the
// operation runs.
func ExampleAdd() {
	sum, _ := simvalue.Add(simvalue.NewInt(1), simvalue.NewDouble(2.5))
	fmt.Println(sum, sum.Type())

	// Neither int nor float can represent all values of the other; both are
	// converted to their least upper bound.
	sum, _ = simvalue.Add(simvalue.NewFloat(0.5), simvalue.NewInt(2))
	fmt.Println(sum, sum.Type())
	// Output:
	// 3.5 double
	// 2.5 double
}

func ExampleUnitVector() {
	// Exponents of (meter, second).
	meter := simvalue.UnitVector{1}
	second := simvalue.UnitVector{0, 1}

	distance := simvalue.NewDouble(100).WithUnits(meter)
	duration := simvalue.NewDouble(9.58).WithUnits(second)
	speed, _ := simvalue.Divide(distance, duration)
	fmt.Println(speed.(simvalue.UnitBearing).Units())

	_, err := simvalue.Add(distance, duration)
	fmt.Println(errors.Is(err, simvalue.ErrUnitMismatch))
	// Output:
	// {1, -1}
	// true
}

func ExampleArray() {
	a := simvalue.MustArray(simvalue.NewInt(1), simvalue.NewInt(2), simvalue.NewInt(3))
	scaled, _ := simvalue.Multiply(a, simvalue.NewInt(10))
	fmt.Println(scaled)

	updated, _ := a.Update(0, simvalue.NewInt(7))
	fmt.Println(a, updated)
	// Output:
	// {10, 20, 30}
	// {1, 2, 3} {7, 2, 3}
}

func ExampleJoin() {
	a, _ := simvalue.NewIntMatrix([][]int32{{1, 2}})
	b, _ := simvalue.NewIntMatrix([][]int32{{3}})
	c, _ := simvalue.NewIntMatrix([][]int32{{4, 5}, {6, 7}})
	d, _ := simvalue.NewIntMatrix([][]int32{{8}, {9}})

	m, _ := simvalue.Join([][]*simvalue.IntMatrix{{a, b}, {c, d}})
	fmt.Println(m)

	blocks, _ := m.Split([]int{1, 2}, []int{2, 1})
	fmt.Println(blocks[1][0])
	// Output:
	// [1, 2, 3; 4, 5, 8; 6, 7, 9]
	// [4, 5; 6, 7]
}

func ExampleSmooth() {
	// Position 1m moving at 2m/s at time 0, and position 1m at rest at time 1.
	a := simvalue.NewSmooth(1, simvalue.Seconds(0), 2)
	b := simvalue.NewSmooth(1, simvalue.Seconds(1))

	// The earlier operand is extrapolated to the later time before adding.
	sum, _ := simvalue.Add(a, b)
	fmt.Println(sum)

	product, _ := simvalue.Multiply(simvalue.NewSmooth(2, nil, 3), simvalue.NewSmooth(5, nil, 1))
	fmt.Println(product)
	// Output:
	// smooth(4.0, 1.0, {2.0})
	// smooth(10.0, {17.0})
}
