// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cpmech/hpcg-mg/kernels"
	"github.com/cpmech/hpcg-mg/mg"
	"github.com/cpmech/hpcg-mg/problem"
)

// machineEpsilon is float64's unit roundoff, the epsilon the symmetry
// bound below scales by.
const machineEpsilon = 2.220446049250313e-16

// symmetryTolFactor is the tau in |x^T(Ay)-y^T(Ax)| <= tau*eps*(...); a
// generous constant since the probe is meant to catch gross asymmetry
// (a transposed stencil offset, a sign error), not certify last-bit
// accuracy.
const symmetryTolFactor = 64.0

// TestSymmetry probes SPMV and the multigrid preconditioner for symmetry
// using a pair of deterministically-seeded random vectors.
func TestSymmetry(A *problem.SparseMatrix, seed int64) Finding {
	r := rand.New(rand.NewSource(seed))
	x := problem.NewVector(A.LocalNumCols)
	y := problem.NewVector(A.LocalNumCols)
	for i := 0; i < A.LocalNumRows; i++ {
		x[i] = -1 + 2*r.Float64()
		y[i] = -1 + 2*r.Float64()
	}

	if f := checkSPMVSymmetry(A, x, y); !f.Passed {
		return f
	}
	return checkPreconditionerSymmetry(A, x, y)
}

func checkSPMVSymmetry(A *problem.SparseMatrix, x, y problem.Vector) Finding {
	Ax := problem.NewVector(A.LocalNumCols)
	Ay := problem.NewVector(A.LocalNumCols)
	if err := kernels.SPMV(A, x, Ax); err != nil {
		return Finding{Name: "TestSymmetry/SPMV", Passed: false, Detail: err.Error()}
	}
	if err := kernels.SPMV(A, y, Ay); err != nil {
		return Finding{Name: "TestSymmetry/SPMV", Passed: false, Detail: err.Error()}
	}
	return symmetryBound("TestSymmetry/SPMV", A, x, y, Ax, Ay)
}

func checkPreconditionerSymmetry(A *problem.SparseMatrix, x, y problem.Vector) Finding {
	Mx := problem.NewVector(A.LocalNumCols)
	My := problem.NewVector(A.LocalNumCols)
	if err := mg.VCycle(A, x, Mx); err != nil {
		return Finding{Name: "TestSymmetry/Mprecond", Passed: false, Detail: err.Error()}
	}
	if err := mg.VCycle(A, y, My); err != nil {
		return Finding{Name: "TestSymmetry/Mprecond", Passed: false, Detail: err.Error()}
	}
	return symmetryBound("TestSymmetry/Mprecond", A, x, y, Mx, My)
}

// symmetryBound checks |x^T(Ay) - y^T(Ax)| <= tau*eps*(||x||*||Ay|| +
// ||y||*||Ax||) for the given operator's images Ax,Ay of x,y.
func symmetryBound(name string, A *problem.SparseMatrix, x, y, Ax, Ay problem.Vector) Finding {
	xTAy, err := kernels.Dot(A.LocalNumRows, x, Ay)
	if err != nil {
		return Finding{Name: name, Passed: false, Detail: err.Error()}
	}
	yTAx, err := kernels.Dot(A.LocalNumRows, y, Ax)
	if err != nil {
		return Finding{Name: name, Passed: false, Detail: err.Error()}
	}
	normX, err := kernels.Norm2(A.LocalNumRows, x)
	if err != nil {
		return Finding{Name: name, Passed: false, Detail: err.Error()}
	}
	normY, err := kernels.Norm2(A.LocalNumRows, y)
	if err != nil {
		return Finding{Name: name, Passed: false, Detail: err.Error()}
	}
	normAx, err := kernels.Norm2(A.LocalNumRows, Ax)
	if err != nil {
		return Finding{Name: name, Passed: false, Detail: err.Error()}
	}
	normAy, err := kernels.Norm2(A.LocalNumRows, Ay)
	if err != nil {
		return Finding{Name: name, Passed: false, Detail: err.Error()}
	}

	lhs := math.Abs(xTAy - yTAx)
	rhs := symmetryTolFactor * machineEpsilon * (normX*normAy + normY*normAx)
	if lhs > rhs {
		return Finding{Name: name, Passed: false, Detail: fmt.Sprintf("|x^TAy-y^TAx|=%v exceeds bound %v", lhs, rhs)}
	}
	return Finding{Name: name, Passed: true}
}
