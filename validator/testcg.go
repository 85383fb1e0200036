// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"

	"github.com/cpmech/hpcg-mg/cg"
	"github.com/cpmech/hpcg-mg/problem"
)

// diagonalShiftFactor strengthens diagonal dominance on a scratch copy of
// A so CG converges in a handful of iterations").
const diagonalShiftFactor = 10.0

// TestCG runs CG with a tiny tolerance on a diagonally-shifted copy of A
// and checks that the residual decreases (not necessarily monotonically
// from the very first step, but once past a short settling window) and
// that it reaches the tolerance well inside maxIter.
func TestCG(A *problem.SparseMatrix, b problem.Vector, maxIter int) Finding {
	shifted := shiftDiagonal(A, diagonalShiftFactor)

	x := problem.NewVector(shifted.LocalNumCols)
	state := cg.NewState(shifted)
	res, err := cg.CG(shifted, b, x, state, maxIter, 1e-6, false)
	if err != nil {
		return Finding{Name: "TestCG", Passed: false, Detail: err.Error()}
	}

	if res.NIters >= maxIter {
		return Finding{Name: "TestCG", Passed: false, Detail: fmt.Sprintf("did not reach tolerance within %d iterations", maxIter)}
	}

	const settleIters = 2
	for i := settleIters + 1; i < len(res.ResidualTrace); i++ {
		if res.ResidualTrace[i] > res.ResidualTrace[i-1] {
			return Finding{Name: "TestCG", Passed: false, Detail: fmt.Sprintf("residual increased at iteration %d: %v -> %v", i, res.ResidualTrace[i-1], res.ResidualTrace[i])}
		}
	}
	return Finding{Name: "TestCG", Passed: true}
}

// shiftDiagonal returns a shallow copy of A whose diagonal entries are
// scaled by factor; row slices that contain the diagonal are deep-copied
// so the original matrix's values are untouched, since CG's contract that
// A is read-only must hold for the real solve that follows this probe.
func shiftDiagonal(A *problem.SparseMatrix, factor float64) *problem.SparseMatrix {
	shifted := *A
	shifted.MatrixValues = make([][]float64, A.LocalNumRows)
	for i := 0; i < A.LocalNumRows; i++ {
		row := append([]float64{}, A.MatrixValues[i]...)
		row[A.DiagonalIdx[i]] *= factor
		shifted.MatrixValues[i] = row
	}
	return &shifted
}
