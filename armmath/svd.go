// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package armmath

import "gonum.org/v1/gonum/mat"

// ZeroSingularValueFactor bounds what counts as a "zero" singular value:
// any w[i] <= ZeroSingularValueFactor * max(w) is treated as singular
// (spec: tolerance <= 1e-12 * max(w)).
const ZeroSingularValueFactor = 1e-12

// SVDResult holds the decomposition M = U * diag(W) * V^T with singular
// values in W ordered descending, as produced by the Golub-Reinsch
// algorithm (gonum's mat.SVD, the same algorithm family LAPACK's dgesvd
// implements).
type SVDResult struct {
	U *Matrix   // Rows x k, k = min(Rows,Cols)
	V *Matrix   // Cols x k
	W []float64 // length k, descending, non-negative
}

// SVD factorizes m using gonum's Golub-Reinsch implementation and returns
// U, V and the singular values, mirroring a gosl-style "compute-then-wrap"
// dense solve: the dense buffer is handed to the library wholesale rather
// than decomposed column by column in pure Go.
func (m *Matrix) SVD() (*SVDResult, error) {
	dense := mat.NewDense(m.Rows, m.Cols, nil)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			dense.Set(i, j, m.data[i][j])
		}
	}

	var svd mat.SVD
	ok := svd.Factorize(dense, mat.SVDThin)
	if !ok {
		return nil, errSVDFailed
	}

	w := svd.Values(nil)
	k := len(w)

	var uDense, vDense mat.Dense
	svd.UTo(&uDense)
	svd.VTo(&vDense)

	u := NewMatrix(m.Rows, k)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < k; j++ {
			u.Set(i, j, uDense.At(i, j))
		}
	}
	v := NewMatrix(m.Cols, k)
	for i := 0; i < m.Cols; i++ {
		for j := 0; j < k; j++ {
			v.Set(i, j, vDense.At(i, j))
		}
	}

	return &SVDResult{U: u, V: v, W: w}, nil
}

// IsZero reports whether singular value w[i] is below the numerical-zero
// threshold relative to the largest singular value in the decomposition.
func (s *SVDResult) IsZero(i int) bool {
	if len(s.W) == 0 {
		return true
	}
	wMax := s.W[0] // descending order, so W[0] is the max
	if wMax <= 0 {
		return true
	}
	return s.W[i] <= ZeroSingularValueFactor*wMax
}

type svdError string

func (e svdError) Error() string { return string(e) }

const errSVDFailed = svdError("armmath: SVD factorization did not converge")
