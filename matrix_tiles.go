package simvalue

import (
	"fmt"
	"slices"
)

// Join tiles a grid of matrices of one kind into a single matrix. The result
// has as many rows as the tiles down the first column, and as many columns as
// the tiles across the first row. Tile (i, j) is placed below the tiles of
// the first column above row i and right of the tiles of the first row left of
// column j; tiles are copied left-to-right, top-to-bottom, so later tiles
// overwrite earlier ones where they overlap. Gaps are filled with zeros and
// tiles are clipped at the boundary.
func Join[T any](tiles [][]*Matrix[T]) (*Matrix[T], error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, fmt.Errorf("%w: join of no tiles", ErrDimensionMismatch)
	}
	width := len(tiles[0])
	for i, row := range tiles {
		if len(row) != width {
			return nil, fmt.Errorf("%w: tile row %d has %d tiles, want %d", ErrDimensionMismatch, i, len(row), width)
		}
		for j, t := range row {
			if t == nil {
				return nil, fmt.Errorf("simvalue: nil tile (%d, %d)", i, j)
			}
			if err := tiles[0][0].k.compatible(t.k); err != nil {
				return nil, err
			}
		}
	}

	rowOffsets := make([]int, len(tiles))
	rows := 0
	for i, row := range tiles {
		rowOffsets[i] = rows
		rows += row[0].rows
	}
	colOffsets := make([]int, width)
	cols := 0
	for j, t := range tiles[0] {
		colOffsets[j] = cols
		cols += t.cols
	}

	k := tiles[0][0].k
	out := filled(k, rows, cols, k.zero())
	for i, row := range tiles {
		for j, t := range row {
			r0, c0 := rowOffsets[i], colOffsets[j]
			nr, nc := min(t.rows, rows-r0), min(t.cols, cols-c0)
			for r := range nr {
				dst := out.data[(r0+r)*cols+c0:]
				copy(dst[:nc], t.data[r*t.cols:r*t.cols+nc])
			}
		}
	}
	return out, nil
}

// Split partitions m into a grid of blocks with the given row and column
// sizes; Join of the result reconstructs m when the sizes add up to its
// shape. Blocks that run past the boundary of m are clipped, and a block that
// starts past the boundary is an error.
func (m *Matrix[T]) Split(rowSizes, colSizes []int) ([][]*Matrix[T], error) {
	if len(rowSizes) == 0 || len(colSizes) == 0 {
		return nil, fmt.Errorf("%w: split into no blocks", ErrDimensionMismatch)
	}
	for _, n := range slices.Concat(rowSizes, colSizes) {
		if n < 1 {
			return nil, fmt.Errorf("%w: block size %d", ErrDimensionMismatch, n)
		}
	}

	blocks := make([][]*Matrix[T], len(rowSizes))
	r0 := 0
	for i, nr := range rowSizes {
		if r0 >= m.rows {
			return nil, fmt.Errorf("%w: row block %d starts at row %d of %d", ErrDimensionMismatch, i, r0, m.rows)
		}
		blocks[i] = make([]*Matrix[T], len(colSizes))
		c0 := 0
		for j, nc := range colSizes {
			if c0 >= m.cols {
				return nil, fmt.Errorf("%w: column block %d starts at column %d of %d", ErrDimensionMismatch, j, c0, m.cols)
			}
			blocks[i][j] = m.crop(r0, c0, min(nr, m.rows-r0), min(nc, m.cols-c0))
			c0 += nc
		}
		r0 += nr
	}
	return blocks, nil
}

// Crop returns the rows×cols sub-matrix whose top-left element is at (row,
// col). The region must lie within m.
func (m *Matrix[T]) Crop(row, col, rows, cols int) (*Matrix[T], error) {
	if row < 0 || col < 0 || rows < 1 || cols < 1 || row+rows > m.rows || col+cols > m.cols {
		return nil, fmt.Errorf("%w: crop %dx%d at (%d, %d) of %dx%d matrix", ErrIndexOutOfRange, rows, cols, row, col, m.rows, m.cols)
	}
	return m.crop(row, col, rows, cols), nil
}

func (m *Matrix[T]) crop(row, col, rows, cols int) *Matrix[T] {
	data := make([]T, 0, rows*cols)
	for r := row; r < row+rows; r++ {
		data = append(data, m.data[r*m.cols+col:r*m.cols+col+cols]...)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data, k: m.k}
}
