// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/cg"
	"github.com/cpmech/hpcg-mg/geom"
	"github.com/cpmech/hpcg-mg/mg"
	"github.com/cpmech/hpcg-mg/validator"
)

func Test_report01(tst *testing.T) {

	chk.PrintTitle("report01: a conformant run produces a positive figure-of-merit and a valid YAML document")

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

	state := cg.NewState(h.A)
	x := append([]float64{}, h.X0...)
	res, err := cg.CG(h.A, h.B, x, state, 20, 0.0, true)
	if err != nil {
		tst.Errorf("CG failed: %v", err)
		return
	}

	findings := []validator.Finding{
		validator.CheckProblem(h.A, h.B, h.Xexact),
		validator.TestSymmetry(h.A, 99),
	}

	d := Build(h, res, findings)
	if d.GFLOPS <= 0 {
		tst.Errorf("GFLOPS = %v, want > 0", d.GFLOPS)
	}
	chk.IntAssert(d.Iterations, 20)
	if !d.Conformant {
		tst.Errorf("expected conformant document given passing findings")
	}

	buf, err := d.Marshal()
	if err != nil {
		tst.Errorf("Marshal failed: %v", err)
		return
	}
	text := string(buf)
	for _, want := range []string{"geometry:", "gflops:", "validation:", "total_num_rows:"} {
		if !strings.Contains(text, want) {
			tst.Errorf("YAML document missing expected key %q:\n%s", want, text)
		}
	}
}

func Test_report02(tst *testing.T) {

	chk.PrintTitle("report02: a failing finding marks the document non-conformant")

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

	state := cg.NewState(h.A)
	x := append([]float64{}, h.X0...)
	res, err := cg.CG(h.A, h.B, x, state, 5, 0.0, true)
	if err != nil {
		tst.Errorf("CG failed: %v", err)
		return
	}

	findings := []validator.Finding{
		{Name: "fake", Passed: false, Detail: "synthetic failure for this test"},
	}
	d := Build(h, res, findings)
	if d.Conformant {
		tst.Errorf("expected non-conformant document given a failing finding")
	}
}
