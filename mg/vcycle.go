// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mg

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/kernels"
	"github.com/cpmech/hpcg-mg/problem"
)

// VCycle applies one multigrid V-cycle of the preconditioner M^-1*r,
// writing the result into x. x is zeroed on entry at every level,
// including the finest: the V-cycle always starts its correction from
// zero, whether it is CGDriver's top-level z<-M^-1*r or a coarse level's
// x_{L+1} correction below it.
//
// At the coarsest level (A.Mg == nil) this reduces to a single SYMGS
// sweep. Otherwise it pre-smooths, restricts the smoothed residual to the
// coarse level, recurses, prolongates the coarse correction back, and
// post-smooths.
func VCycle(A *problem.SparseMatrix, r, x problem.Vector) error {
	if len(x) != A.LocalNumCols || len(r) < A.LocalNumRows {
		return chk.Err("VCycle: vector size mismatch (x=%d r=%d, want LocalNumCols=%d)", len(x), len(r), A.LocalNumCols)
	}
	for i := range x {
		x[i] = 0
	}

	if A.Mg == nil {
		return kernels.SymGSOptimized(A, r, x)
	}

	for s := 0; s < A.Mg.NumPreSmootherSteps; s++ {
		if err := kernels.SymGSOptimized(A, r, x); err != nil {
			return chk.Err("VCycle: pre-smooth failed: %v", err)
		}
	}

	ax := problem.NewVector(A.LocalNumCols)
	if err := kernels.Restrict(A, r, x, ax, A.Mg.Rc); err != nil {
		return chk.Err("VCycle: restriction failed: %v", err)
	}

	if err := VCycle(A.Next, A.Mg.Rc, A.Mg.Xc); err != nil {
		return chk.Err("VCycle: recursive solve failed: %v", err)
	}

	if err := kernels.Prolong(A, A.Mg.Xc, x); err != nil {
		return chk.Err("VCycle: prolongation failed: %v", err)
	}

	for s := 0; s < A.Mg.NumPostSmootherSteps; s++ {
		if err := kernels.SymGSOptimized(A, r, x); err != nil {
			return chk.Err("VCycle: post-smooth failed: %v", err)
		}
	}
	return nil
}
