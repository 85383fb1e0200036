// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/geom"
	"github.com/cpmech/hpcg-mg/mg"
)

func Test_validator01(tst *testing.T) {

	chk.PrintTitle("validator01: CheckProblem passes on a freshly generated single-participant problem")

	g, err := geom.NewGeometry(16, 16, 16, 1, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	h, err := mg.Build(g)
	if err != nil {
		tst.Errorf("mg.Build failed: %v", err)
		return
	}

	f := CheckProblem(h.A, h.B, h.Xexact)
	if !f.Passed {
		tst.Errorf("CheckProblem failed: %v", f.Detail)
	}
}

func Test_validator02(tst *testing.T) {

	chk.PrintTitle("validator02: TestSymmetry passes for SPMV and the multigrid preconditioner")

	g, err := geom.NewGeometry(16, 16, 16, 1, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	h, err := mg.Build(g)
	if err != nil {
		tst.Errorf("mg.Build failed: %v", err)
		return
	}

	f := TestSymmetry(h.A, 4321)
	if !f.Passed {
		tst.Errorf("TestSymmetry failed: %v (%v)", f.Name, f.Detail)
	}
}

func Test_validator03(tst *testing.T) {

	chk.PrintTitle("validator03: TestCG converges well within budget on a diagonally-shifted system")

	g, err := geom.NewGeometry(16, 16, 16, 1, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	h, err := mg.Build(g)
	if err != nil {
		tst.Errorf("mg.Build failed: %v", err)
		return
	}

	f := TestCG(h.A, h.B, 50)
	if !f.Passed {
		tst.Errorf("TestCG failed: %v", f.Detail)
	}
}

func Test_validator04(tst *testing.T) {

	chk.PrintTitle("validator04: TestNorms reports tightly repeatable residuals across runs")

	g, err := geom.NewGeometry(8, 8, 8, 1, 0)
	if err != nil {
		tst.Errorf("NewGeometry failed: %v", err)
		return
	}
	h, err := mg.Build(g)
	if err != nil {
		tst.Errorf("mg.Build failed: %v", err)
		return
	}

	f := TestNorms(h.A, h.B, h.X0, 5, 30)
	if !f.Passed {
		tst.Errorf("TestNorms failed: %v", f.Detail)
	}
}

func Test_validator05(tst *testing.T) {

	chk.PrintTitle("validator05: a Report is conformant iff every Finding passed")

	r := &Report{}
	r.add(Finding{Name: "a", Passed: true})
	r.add(Finding{Name: "b", Passed: true})
	if !r.Conformant() {
		tst.Errorf("expected conformant report")
	}
	r.add(Finding{Name: "c", Passed: false, Detail: "boom"})
	if r.Conformant() {
		tst.Errorf("expected non-conformant report once a Finding fails")
	}
}
