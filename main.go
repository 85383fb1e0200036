// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/hpcg-mg/cg"
	"github.com/cpmech/hpcg-mg/comm"
	"github.com/cpmech/hpcg-mg/config"
	"github.com/cpmech/hpcg-mg/geom"
	"github.com/cpmech/hpcg-mg/kernels"
	"github.com/cpmech/hpcg-mg/mg"
	"github.com/cpmech/hpcg-mg/report"
	"github.com/cpmech/hpcg-mg/validator"
)

// defaultMaxIter is the fixed iteration budget the timed benchmark run uses.
const defaultMaxIter = 50

// symmetryProbeSeed seeds TestSymmetry's deterministic random vectors.
const symmetryProbeSeed = 20160101

// normsRepeats is N_r, the number of repeated CG runs TestNorms checks for
// repeatability.
const normsRepeats = 10

// reportPath is where rank 0 writes the YAML report.
const reportPath = "hpcg-mg-report.yaml"

func main() {

	defer func() {
		if err := recover(); err != nil {
			if comm.Rank() == 0 {
				chk.Verbose = true
				io.PfRed("ERROR: %v\n", err)
			}
			comm.Stop()
			os.Exit(1)
		}
		comm.Stop()
	}()
	comm.Start()

	if comm.Rank() == 0 {
		io.PfWhite("\nhpcg-mg -- distributed multigrid-preconditioned CG benchmark\n\n")
	}

	params, err := config.Parse(os.Args[1:], "hpcg.dat")
	if err != nil {
		chk.Panic("setup failed: %v", err)
	}
	defer utl.DoProf(params.Prof)()

	g, err := geom.NewGeometry(params.Nx, params.Ny, params.Nz, comm.Size(), comm.Rank())
	if err != nil {
		chk.Panic("setup failed: %v", err)
	}
	g.Pz, g.Zl, g.Zu = params.Pz, params.Zl, params.Zu

	if comm.Rank() == 0 {
		io.Pf("geometry: local (%d,%d,%d) on a %d x %d x %d process grid, %d participant(s)\n",
			g.Nx, g.Ny, g.Nz, g.Npx, g.Npy, g.Npz, comm.Size())
	}

	h, err := mg.Build(g)
	if err != nil {
		chk.Panic("setup failed: %v", err)
	}

	if err := kernels.OptimizeProblem(h.A); err != nil {
		chk.Panic("setup failed: %v", err)
	}

	state := cg.NewState(h.A)
	x := append(make([]float64, 0, len(h.X0)), h.X0...)
	res, err := cg.CG(h.A, h.B, x, state, defaultMaxIter, 0.0, true)
	if err != nil {
		chk.Panic("CG solve failed: %v", err)
	}

	if comm.Rank() == 0 {
		io.Pf("CG: %d iterations, normr/normr0 = %v\n", res.NIters, res.NormR/res.NormR0)
	}

	findings := []validator.Finding{
		validator.CheckProblem(h.A, h.B, h.Xexact),
		validator.TestSymmetry(h.A, symmetryProbeSeed),
		validator.TestCG(h.A, h.B, defaultMaxIter),
		validator.TestNorms(h.A, h.B, h.X0, normsRepeats, defaultMaxIter),
	}

	doc := report.Build(h, res, findings)
	if comm.Rank() == 0 {
		buf, err := doc.Marshal()
		if err != nil {
			chk.Panic("report generation failed: %v", err)
		}
		if err := os.WriteFile(reportPath, buf, 0644); err != nil {
			chk.Panic("report write failed: %v", err)
		}
		if doc.Conformant {
			io.PfGreen("run complete: conformant, %.3f GFLOP/s\n", doc.GFLOPS)
		} else {
			io.PfYel("run complete: NON-CONFORMANT, %.3f GFLOP/s\n", doc.GFLOPS)
		}
	}

	comm.Barrier()
}
