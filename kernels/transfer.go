// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/problem"
)

// Restrict computes rc <- (bf - Af*xf)[f2c], the fine residual injected
// onto the coarse grid through Af.Mg.F2C. rf is scratch sized
// to Af.LocalNumCols; callers typically pass Af.Mg.Rc as rc.
func Restrict(Af *problem.SparseMatrix, bf, xf problem.Vector, rf, rc problem.Vector) error {
	if Af.Mg == nil {
		return chk.Err("Restrict: matrix has no coarse level")
	}
	if err := SPMV(Af, xf, rf); err != nil {
		return chk.Err("Restrict: SPMV failed: %v", err)
	}
	f2c := Af.Mg.F2C
	if len(rc) < len(f2c) {
		return chk.Err("Restrict: rc too short (%d), want %d", len(rc), len(f2c))
	}
	parallelRows(len(f2c), func(k int) {
		rc[k] = bf[f2c[k]] - rf[f2c[k]]
	})
	return nil
}

// Prolong applies xf[f2c[k]] += xc[k]: the coarse correction
// is injected back onto the fine grid at the points the coarse grid was
// built from, leaving every other fine point untouched.
func Prolong(Af *problem.SparseMatrix, xc problem.Vector, xf problem.Vector) error {
	if Af.Mg == nil {
		return chk.Err("Prolong: matrix has no coarse level")
	}
	f2c := Af.Mg.F2C
	if len(xc) < len(f2c) {
		return chk.Err("Prolong: xc too short (%d), want %d", len(xc), len(f2c))
	}
	parallelRows(len(f2c), func(k int) {
		xf[f2c[k]] += xc[k]
	})
	return nil
}
