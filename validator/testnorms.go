// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"math"

	"github.com/cpmech/hpcg-mg/cg"
	"github.com/cpmech/hpcg-mg/problem"
)

// normsVarianceTolFactor bounds the coefficient of variation (stddev/mean)
// allowed across repeated CG runs from the same starting point; anything
// above this points at a nondeterministic reduction order or a data race in
// a kernel rather than ordinary floating-point noise.
const normsVarianceTolFactor = 1e-6

// TestNorms runs CG nr times from the same x0 and checks that the final
// residual norms are repeatable: distinct runs of a correctly implemented,
// race-free kernel set should agree to near machine precision.
func TestNorms(A *problem.SparseMatrix, b, x0 problem.Vector, nr, maxIter int) Finding {
	if nr < 2 {
		return Finding{Name: "TestNorms", Passed: false, Detail: "nr must be >= 2"}
	}

	norms := make([]float64, nr)
	for r := 0; r < nr; r++ {
		x := append(problem.Vector{}, x0...)
		state := cg.NewState(A)
		res, err := cg.CG(A, b, x, state, maxIter, 0.0, true)
		if err != nil {
			return Finding{Name: "TestNorms", Passed: false, Detail: fmt.Sprintf("run %d: %v", r, err)}
		}
		norms[r] = res.NormR
	}

	mean := 0.0
	for _, v := range norms {
		mean += v
	}
	mean /= float64(nr)

	variance := 0.0
	for _, v := range norms {
		d := v - mean
		variance += d * d
	}
	variance /= float64(nr)
	stddev := math.Sqrt(variance)

	if mean == 0 {
		return Finding{Name: "TestNorms", Passed: stddev == 0, Detail: fmt.Sprintf("mean residual is 0, stddev %v", stddev)}
	}

	cv := stddev / mean
	if cv > normsVarianceTolFactor {
		return Finding{Name: "TestNorms", Passed: false, Detail: fmt.Sprintf("coefficient of variation %v exceeds %v over %d runs", cv, normsVarianceTolFactor, nr)}
	}
	return Finding{Name: "TestNorms", Passed: true}
}
