// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernels implements the reference (and, where noted, optimized)
// numerical kernels the benchmark is built from: SPMV, SYMGS, WAXPBY, DOT,
// and the multigrid transfer operators Restriction/Prolongation.
package kernels

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/comm"
	"github.com/cpmech/hpcg-mg/problem"
)

// SPMV computes y <- A*x. It exchanges x's halo slots first so every owned
// row sees current off-process neighbor values, then parallelizes the
// per-row dot product over a worker pool.
func SPMV(A *problem.SparseMatrix, x, y problem.Vector) error {
	if len(x) != A.LocalNumCols || len(y) < A.LocalNumRows {
		return chk.Err("SPMV: vector size mismatch (x=%d y=%d, want LocalNumCols=%d)", len(x), len(y), A.LocalNumCols)
	}
	if err := comm.ExchangeHalo(A, x); err != nil {
		return chk.Err("SPMV: halo exchange failed: %v", err)
	}
	parallelRows(A.LocalNumRows, func(i int) {
		var sum float64
		cols := A.MtxIndL[i]
		vals := A.MatrixValues[i]
		for j := 0; j < len(cols); j++ {
			sum += vals[j] * x[cols[j]]
		}
		y[i] = sum
	})
	return nil
}
