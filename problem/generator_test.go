// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/geom"
)

func Test_generator01(tst *testing.T) {

	chk.PrintTitle("generator01: single participant 16x16x16")

	g, err := geom.NewGeometry(16, 16, 16, 1, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	A, b, xexact, x0, err := GenerateProblem(g)
	if err != nil {
		tst.Errorf("GenerateProblem failed: %v", err)
		return
	}
	chk.IntAssert(A.LocalNumRows, 4096)
	chk.IntAssert(A.LocalNumCols, 4096) // single participant: no off-process columns
	chk.IntAssert(len(b), A.LocalNumCols)
	chk.IntAssert(len(xexact), A.LocalNumCols)
	chk.IntAssert(len(x0), A.LocalNumCols)

	for i := 0; i < A.LocalNumRows; i++ {
		n := A.NonzerosInRow[i]
		if n < 8 || n > 27 {
			tst.Errorf("row %d has %d nonzeros, outside [8,27]", i, n)
		}
		if A.Diagonal(i) <= 0 {
			tst.Errorf("row %d has non-positive diagonal %v", i, A.Diagonal(i))
		}
		for j, col := range A.MtxIndL[i] {
			if col != i && A.MatrixValues[i][j] != offDiagonalValue {
				tst.Errorf("row %d off-diagonal entry %d has unexpected value %v", i, j, A.MatrixValues[i][j])
			}
		}
		// xexact=1 row-sum check
		sum := 0.0
		for _, v := range A.MatrixValues[i] {
			sum += v
		}
		chk.Scalar(tst, "row-sum == b_i", 1e-12, sum, b[i])
	}

	for i := 0; i < len(xexact); i++ {
		chk.Scalar(tst, "xexact", 1e-15, xexact[i], 1.0)
		chk.Scalar(tst, "x0", 1e-15, x0[i], 0.0)
	}
}

func Test_generator02(tst *testing.T) {

	chk.PrintTitle("generator02: 8 participants 2x2x2, external columns present")

	g, err := geom.NewGeometry(16, 16, 16, 8, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	A, _, _, _, err := GenerateProblem(g)
	if err != nil {
		tst.Errorf("GenerateProblem failed: %v", err)
		return
	}
	if A.LocalNumCols <= A.LocalNumRows {
		tst.Errorf("expected external columns for a participant with process-grid neighbors, got LocalNumCols=%d LocalNumRows=%d", A.LocalNumCols, A.LocalNumRows)
	}
	// every interned external column resolves back through LookupLocal
	for _, ec := range A.Halo.ExternalToLocalMap {
		local, ok := A.Halo.LookupLocal(ec.GlobalID)
		if !ok || local != ec.LocalID {
			tst.Errorf("LookupLocal(%d) = (%d,%v), want (%d,true)", ec.GlobalID, local, ok, ec.LocalID)
		}
	}
}

func Test_generator03(tst *testing.T) {

	chk.PrintTitle("generator03: 32x24x16 local, 4 participants 2x2x1, totalNumRows")

	g, err := geom.NewGeometry(32, 24, 16, 4, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	A, _, _, _, err := GenerateProblem(g)
	if err != nil {
		tst.Errorf("GenerateProblem failed: %v", err)
		return
	}
	chk.IntAssert(int(A.TotalNumRows), 32*24*16*4)
}

func Test_generator04(tst *testing.T) {

	chk.PrintTitle("generator04: symmetry of coefficients for owned pairs")

	g, err := geom.NewGeometry(16, 16, 16, 1, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	A, _, _, _, err := GenerateProblem(g)
	if err != nil {
		tst.Errorf("GenerateProblem failed: %v", err)
		return
	}
	for i := 0; i < A.LocalNumRows; i++ {
		for k, j := range A.MtxIndL[i] {
			if j >= A.LocalNumRows || j == i {
				continue
			}
			found := false
			for k2, i2 := range A.MtxIndL[j] {
				if i2 == i {
					chk.Scalar(tst, "A[i][j]==A[j][i]", 1e-15, A.MatrixValues[i][k], A.MatrixValues[j][k2])
					found = true
					break
				}
			}
			if !found {
				tst.Errorf("A[%d][%d] has no matching A[%d][%d]", i, j, j, i)
			}
		}
	}
}
