// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/comm"
	"github.com/cpmech/hpcg-mg/problem"
)

// SymGS performs one forward sweep (rows 0..LocalNumRows-1) followed by one
// backward sweep (rows LocalNumRows-1..0) of Gauss-Seidel relaxation on
// A*x=r, updating x in place using the CURRENT value of x for every column
// already touched this sweep.
//
// The sweep exchanges x's halo once, up front; halo values are NOT
// refreshed between the forward and backward sweep. This staleness is
// intentional: re-exchanging mid-sweep would change the smoother's fixed
// point and isn't worth the extra round-trip for a relaxation step that
// only needs to reduce high-frequency error, not converge exactly.
//
// The reference kernel is strictly serial per participant: row i's update
// depends on rows < i (forward) or > i (backward) already being current,
// so there is no row-level parallelism without the coloring
// OptimizeProblem establishes. SymGSOptimized below is the
// parallel counterpart once A.ColorSets is populated.
func SymGS(A *problem.SparseMatrix, r, x problem.Vector) error {
	if len(x) != A.LocalNumCols || len(r) < A.LocalNumRows {
		return chk.Err("SymGS: vector size mismatch (x=%d r=%d, want LocalNumCols=%d)", len(x), len(r), A.LocalNumCols)
	}
	if err := comm.ExchangeHalo(A, x); err != nil {
		return chk.Err("SymGS: halo exchange failed: %v", err)
	}

	// forward sweep
	for i := 0; i < A.LocalNumRows; i++ {
		symgsUpdateRow(A, r, x, i)
	}
	// backward sweep
	for i := A.LocalNumRows - 1; i >= 0; i-- {
		symgsUpdateRow(A, r, x, i)
	}
	return nil
}

func symgsUpdateRow(A *problem.SparseMatrix, r, x problem.Vector, i int) {
	cols := A.MtxIndL[i]
	vals := A.MatrixValues[i]
	diagIdx := A.DiagonalIdx[i]
	sum := r[i]
	for j := 0; j < len(cols); j++ {
		if j == diagIdx {
			continue
		}
		sum -= vals[j] * x[cols[j]]
	}
	x[i] = sum / vals[diagIdx]
}

// SymGSOptimized is the coloring-parallel counterpart of SymGS: rows within
// one color set have no edges between them in the stencil graph, so they
// can be updated concurrently without violating Gauss-Seidel's
// current-value dependency. OptimizeProblem must populate
// A.ColorSets before this is called; it falls back to the serial reference
// sweep if coloring was never established, keeping the optimized/reference
// split safe to call unconditionally.
func SymGSOptimized(A *problem.SparseMatrix, r, x problem.Vector) error {
	if len(A.ColorSets) == 0 {
		return SymGS(A, r, x)
	}
	if len(x) != A.LocalNumCols || len(r) < A.LocalNumRows {
		return chk.Err("SymGSOptimized: vector size mismatch (x=%d r=%d, want LocalNumCols=%d)", len(x), len(r), A.LocalNumCols)
	}
	if err := comm.ExchangeHalo(A, x); err != nil {
		return chk.Err("SymGSOptimized: halo exchange failed: %v", err)
	}

	for _, set := range A.ColorSets {
		set := set
		parallelIndices(set, func(i int) { symgsUpdateRow(A, r, x, i) })
	}
	for k := len(A.ColorSets) - 1; k >= 0; k-- {
		set := A.ColorSets[k]
		parallelIndices(set, func(i int) { symgsUpdateRow(A, r, x, i) })
	}
	return nil
}
