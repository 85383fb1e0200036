// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package validator implements the benchmark's correctness suite:
// well-formedness of the generated problem, SPMV/preconditioner symmetry
// probes, a fast-converging CG sanity check, and a repeatability check
// over repeated full CG runs. A validator failure is recorded, not
// fatal: the run completes and the final report is flagged non-conformant.
package validator

import (
	"fmt"
	"math"

	"github.com/cpmech/hpcg-mg/problem"
)

// Finding is one validator's outcome.
type Finding struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects every Finding from a validation run.
type Report struct {
	Findings []Finding
}

// Conformant reports whether every recorded Finding passed.
func (r *Report) Conformant() bool {
	for _, f := range r.Findings {
		if !f.Passed {
			return false
		}
	}
	return true
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// CheckProblem verifies row counts, diagonal positivity, symmetry of
// coefficients for each owned (i,j) pair, and that b equals the row-sum
// with xexact=1.
func CheckProblem(A *problem.SparseMatrix, b, xexact problem.Vector) Finding {
	if A.LocalNumRows <= 0 {
		return Finding{Name: "CheckProblem", Passed: false, Detail: "LocalNumRows <= 0"}
	}
	if A.LocalNumCols < A.LocalNumRows {
		return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("LocalNumCols %d < LocalNumRows %d", A.LocalNumCols, A.LocalNumRows)}
	}

	for i := 0; i < A.LocalNumRows; i++ {
		n := A.NonzerosInRow[i]
		if n < 8 || n > 27 {
			return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("row %d has %d nonzeros, outside [8,27]", i, n)}
		}
		if A.Diagonal(i) <= 0 {
			return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("row %d has non-positive diagonal %v", i, A.Diagonal(i))}
		}

		rowsum := 0.0
		for _, v := range A.MatrixValues[i] {
			rowsum += v
		}
		if math.Abs(rowsum-b[i]) > 1e-9 {
			return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("row %d: row-sum %v != b[%d]=%v", i, rowsum, i, b[i])}
		}

		for k, j := range A.MtxIndL[i] {
			if j >= A.LocalNumRows || j == i {
				continue // only pairs of owned rows are checked; off-process pairs are skipped
			}
			found := false
			for k2, i2 := range A.MtxIndL[j] {
				if i2 == i {
					if math.Abs(A.MatrixValues[i][k]-A.MatrixValues[j][k2]) > 1e-12 {
						return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("A[%d][%d]=%v != A[%d][%d]=%v", i, j, A.MatrixValues[i][k], j, i, A.MatrixValues[j][k2])}
					}
					found = true
					break
				}
			}
			if !found {
				return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("A[%d][%d] has no matching A[%d][%d]", i, j, j, i)}
			}
		}
	}

	for i := 0; i < len(xexact); i++ {
		if xexact[i] != 1.0 {
			return Finding{Name: "CheckProblem", Passed: false, Detail: fmt.Sprintf("xexact[%d] = %v, want 1.0", i, xexact[i])}
		}
	}

	return Finding{Name: "CheckProblem", Passed: true}
}
