// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"

	"github.com/cpmech/hpcg-mg/geom"
	"github.com/cpmech/hpcg-mg/problem"
)

func newSingleParticipantProblem(tst *testing.T, n int) (*problem.SparseMatrix, problem.Vector, problem.Vector) {
	g, err := geom.NewGeometry(n, n, n, 1, 0)
	if err != nil {
		tst.Fatalf("NewGeometry failed: %v", err)
	}
	A, b, xexact, _, err := problem.GenerateProblem(g)
	if err != nil {
		tst.Fatalf("GenerateProblem failed: %v", err)
	}
	return A, b, xexact
}

func Test_spmv01(tst *testing.T) {

	chk.PrintTitle("spmv01: A*xexact == b on a single participant")

	A, b, xexact := newSingleParticipantProblem(tst, 16)
	y := problem.NewVector(A.LocalNumCols)
	if err := SPMV(A, xexact, y); err != nil {
		tst.Errorf("SPMV failed: %v", err)
		return
	}
	chk.Array(tst, "A*xexact", 1e-10, y[:A.LocalNumRows], b[:A.LocalNumRows])
}

func Test_waxpby01(tst *testing.T) {

	chk.PrintTitle("waxpby01: w = 2x - y")

	x := problem.Vector{1, 2, 3, 4}
	y := problem.Vector{4, 3, 2, 1}
	w := problem.NewVector(4)
	if err := WAXPBY(4, 2.0, x, -1.0, y, w); err != nil {
		tst.Errorf("WAXPBY failed: %v", err)
		return
	}
	chk.Array(tst, "w", 1e-15, w, problem.Vector{-2, 1, 4, 7})
}

func Test_dot01(tst *testing.T) {

	chk.PrintTitle("dot01: x.x == n for ones vector")

	n := 1000
	x := make(problem.Vector, n)
	for i := range x {
		x[i] = 1.0
	}
	alpha, err := Dot(n, x, x)
	if err != nil {
		tst.Errorf("Dot failed: %v", err)
		return
	}
	chk.Scalar(tst, "x.x", 1e-9, alpha, float64(n))
}

func Test_symgs01(tst *testing.T) {

	chk.PrintTitle("symgs01: SYMGS reduces the residual of a zero initial guess")

	A, b, _ := newSingleParticipantProblem(tst, 16)
	x := problem.NewVector(A.LocalNumCols)

	r0 := residualNorm(tst, A, b, x)
	if err := SymGS(A, b, x); err != nil {
		tst.Errorf("SymGS failed: %v", err)
		return
	}
	r1 := residualNorm(tst, A, b, x)
	if r1 >= r0 {
		tst.Errorf("SYMGS did not reduce the residual: before=%v after=%v", r0, r1)
	}
}

func residualNorm(tst *testing.T, A *problem.SparseMatrix, b, x problem.Vector) float64 {
	Ax := problem.NewVector(A.LocalNumCols)
	if err := SPMV(A, x, Ax); err != nil {
		tst.Fatalf("SPMV failed: %v", err)
	}
	res := problem.NewVector(A.LocalNumCols)
	if err := WAXPBY(A.LocalNumRows, 1.0, b, -1.0, Ax, res); err != nil {
		tst.Fatalf("WAXPBY failed: %v", err)
	}
	n, err := Norm2(A.LocalNumRows, res)
	if err != nil {
		tst.Fatalf("Norm2 failed: %v", err)
	}
	return n
}

func Test_symmetry01(tst *testing.T) {

	chk.PrintTitle("symmetry01: SPMV symmetry probe x^T(Ay) == y^T(Ax)")

	A, _, _ := newSingleParticipantProblem(tst, 16)
	r := rand.New(rand.NewSource(1234))
	x := problem.NewVector(A.LocalNumCols)
	y := problem.NewVector(A.LocalNumCols)
	for i := 0; i < A.LocalNumRows; i++ {
		x[i] = -1 + 2*r.Float64()
		y[i] = -1 + 2*r.Float64()
	}

	Ax := problem.NewVector(A.LocalNumCols)
	Ay := problem.NewVector(A.LocalNumCols)
	if err := SPMV(A, x, Ax); err != nil {
		tst.Errorf("SPMV(x) failed: %v", err)
		return
	}
	if err := SPMV(A, y, Ay); err != nil {
		tst.Errorf("SPMV(y) failed: %v", err)
		return
	}

	xTAy, err := Dot(A.LocalNumRows, x, Ay)
	if err != nil {
		tst.Errorf("Dot failed: %v", err)
		return
	}
	yTAx, err := Dot(A.LocalNumRows, y, Ax)
	if err != nil {
		tst.Errorf("Dot failed: %v", err)
		return
	}
	diff := math.Abs(xTAy - yTAx)
	if diff > 1e-9 {
		tst.Errorf("symmetry probe failed: |x^T(Ay)-y^T(Ax)| = %v", diff)
	}
}

func Test_sizeMismatch01(tst *testing.T) {

	chk.PrintTitle("sizeMismatch01: every kernel rejects vectors shorter than n")

	A, _, _ := newSingleParticipantProblem(tst, 16)
	short := problem.NewVector(A.LocalNumRows - 1)
	full := problem.NewVector(A.LocalNumCols)

	cases := []struct {
		name string
		run  func() error
	}{
		{"SPMV", func() error { return SPMV(A, short, full) }},
		{"WAXPBY", func() error { return WAXPBY(A.LocalNumRows, 1.0, short, 1.0, full, full) }},
		{"SymGS", func() error { return SymGS(A, short, full) }},
		{"SymGSOptimized", func() error { return SymGSOptimized(A, short, full) }},
	}
	for _, c := range cases {
		err := c.run()
		require.Errorf(tst, err, "%s should reject a short vector", c.name)
	}

	_, err := Dot(A.LocalNumRows, short, full)
	require.Error(tst, err, "Dot should reject a short vector")
}

func Test_optimize01(tst *testing.T) {

	chk.PrintTitle("optimize01: 8 color sets partition all rows exactly once")

	A, _, _ := newSingleParticipantProblem(tst, 16)
	if err := OptimizeProblem(A); err != nil {
		tst.Errorf("OptimizeProblem failed: %v", err)
		return
	}
	chk.IntAssert(len(A.ColorSets), numColors)
	seen := make([]bool, A.LocalNumRows)
	total := 0
	for _, set := range A.ColorSets {
		for _, i := range set {
			if seen[i] {
				tst.Errorf("row %d appears in more than one color set", i)
			}
			seen[i] = true
			total++
		}
	}
	chk.IntAssert(total, A.LocalNumRows)
}

func Test_optimize02(tst *testing.T) {

	chk.PrintTitle("optimize02: optimized SYMGS residual stays within twice the reference SYMGS residual")

	A, b, _ := newSingleParticipantProblem(tst, 16)
	if err := OptimizeProblem(A); err != nil {
		tst.Errorf("OptimizeProblem failed: %v", err)
		return
	}
	xRef := problem.NewVector(A.LocalNumCols)
	xOpt := problem.NewVector(A.LocalNumCols)

	for k := 0; k < 5; k++ {
		if err := SymGS(A, b, xRef); err != nil {
			tst.Errorf("SymGS failed: %v", err)
			return
		}
		if err := SymGSOptimized(A, b, xOpt); err != nil {
			tst.Errorf("SymGSOptimized failed: %v", err)
			return
		}
	}

	rRef := residualNorm(tst, A, b, xRef)
	rOpt := residualNorm(tst, A, b, xOpt)
	if rOpt > 2*rRef+1e-8 {
		tst.Errorf("optimized SYMGS residual %v far exceeds reference %v", rOpt, rRef)
	}
}
