// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package armmath

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Matrix is a dense row-major real matrix, allocated once and reused across
// solver iterations the way gofem's la.MatAlloc 2-D slices are reused across
// assembly passes. Rows and Cols are fixed after NewMatrix; SetZero clears
// the data buffer without reallocating.
type Matrix struct {
	Rows, Cols int
	data       [][]float64
}

// NewMatrix allocates a rows x cols matrix filled with zeros, mirroring
// la.MatAlloc(rows, cols).
func NewMatrix(rows, cols int) *Matrix {
	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, cols)
	}
	return &Matrix{Rows: rows, Cols: cols, data: data}
}

// At returns M[i][j].
func (m *Matrix) At(i, j int) float64 {
	return m.data[i][j]
}

// Set assigns M[i][j] = v.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i][j] = v
}

// Row returns the underlying row slice (no copy); writes through it change
// the matrix, and later Set/SetZero calls show through it.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i]
}

// Col returns a fresh copy of column j.
func (m *Matrix) Col(j int) []float64 {
	col := make([]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		col[i] = m.data[i][j]
	}
	return col
}

// SetZero clears every entry in place.
func (m *Matrix) SetZero() {
	for i := range m.data {
		row := m.data[i]
		for j := range row {
			row[j] = 0
		}
	}
}

// SetCol3 writes a 3-vector into rows [row0, row0+3) of column j, the shape
// every Jacobian column block takes (one effector's 3 position rows).
func (m *Matrix) SetCol3(row0, j int, v Vec3) {
	m.data[row0+0][j] = v.X
	m.data[row0+1][j] = v.Y
	m.data[row0+2][j] = v.Z
}

// MulVec computes y = M*x, where len(x) == Cols and len(y) == Rows.
func (m *Matrix) MulVec(x []float64) []float64 {
	if len(x) != m.Cols {
		chk.Panic("MulVec: vector length %d does not match matrix cols %d", len(x), m.Cols)
	}
	y := make([]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		sum := 0.0
		row := m.data[i]
		for j := 0; j < m.Cols; j++ {
			sum += row[j] * x[j]
		}
		y[i] = sum
	}
	return y
}

// Clone returns a deep copy, mirroring la.MatClone.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i := range m.data {
		copy(out.data[i], m.data[i])
	}
	return out
}

// FrobeniusNorm returns ‖M‖_F = sqrt(sum of squares of all entries).
func (m *Matrix) FrobeniusNorm() float64 {
	sum := 0.0
	for _, row := range m.data {
		for _, v := range row {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}
