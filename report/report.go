// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package report assembles the benchmark's YAML output document: geometry,
// per-phase timings, the residual trace, validator findings, and the
// figure-of-merit in GFLOP/s, written by rank 0 at the end of a run.
package report

import (
	"gopkg.in/yaml.v3"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/cg"
	"github.com/cpmech/hpcg-mg/mg"
	"github.com/cpmech/hpcg-mg/problem"
	"github.com/cpmech/hpcg-mg/validator"
)

// GeometrySummary is the subset of a Geometry worth reporting: the process
// grid, the local box size, and the global row count.
type GeometrySummary struct {
	Npx          int   `yaml:"npx"`
	Npy          int   `yaml:"npy"`
	Npz          int   `yaml:"npz"`
	Nx           int   `yaml:"nx"`
	Ny           int   `yaml:"ny"`
	Nz           int   `yaml:"nz"`
	TotalNumRows int64 `yaml:"total_num_rows"`
}

// PhaseTiming names one kernel's accumulated wall-clock time.
type PhaseTiming struct {
	Name    string  `yaml:"name"`
	Seconds float64 `yaml:"seconds"`
}

// ValidationOutcome mirrors a validator.Finding in the YAML document.
type ValidationOutcome struct {
	Name   string `yaml:"name"`
	Passed bool   `yaml:"passed"`
	Detail string `yaml:"detail,omitempty"`
}

// Document is the full report written to disk at the end of a run.
type Document struct {
	Geometry      GeometrySummary     `yaml:"geometry"`
	Iterations    int                 `yaml:"iterations"`
	Timings       []PhaseTiming       `yaml:"timings"`
	ResidualTrace []float64           `yaml:"residual_trace"`
	NormR0        float64             `yaml:"normr0"`
	NormR         float64             `yaml:"normr"`
	Validation    []ValidationOutcome `yaml:"validation"`
	Conformant    bool                `yaml:"conformant"`
	GFLOPS        float64             `yaml:"gflops"`
}

// Build assembles a Document from a completed CG run and validator suite.
func Build(h *mg.Hierarchy, res *cg.Result, findings []validator.Finding) *Document {
	d := &Document{
		Geometry: GeometrySummary{
			Npx: h.A.Geom.Npx, Npy: h.A.Geom.Npy, Npz: h.A.Geom.Npz,
			Nx: h.A.Geom.Nx, Ny: h.A.Geom.Ny, Nz: h.A.Geom.Nz,
			TotalNumRows: h.A.TotalNumRows,
		},
		Iterations:    res.NIters,
		ResidualTrace: res.ResidualTrace,
		NormR0:        res.NormR0,
		NormR:         res.NormR,
		Conformant:    true,
	}

	d.Timings = []PhaseTiming{
		{Name: "spmv", Seconds: res.Timing.SPMV.Seconds()},
		{Name: "mg", Seconds: res.Timing.MG.Seconds()},
		{Name: "dot", Seconds: res.Timing.Dot.Seconds()},
		{Name: "waxpby", Seconds: res.Timing.Waxpby.Seconds()},
		{Name: "total", Seconds: res.Timing.Total.Seconds()},
	}

	for _, f := range findings {
		d.Validation = append(d.Validation, ValidationOutcome{Name: f.Name, Passed: f.Passed, Detail: f.Detail})
		if !f.Passed {
			d.Conformant = false
		}
	}

	if res.Timing.Total.Seconds() > 0 {
		totalFlops := float64(res.NIters) * flopsPerIteration(h.A)
		d.GFLOPS = totalFlops / res.Timing.Total.Seconds() / 1e9
	}

	return d
}

// flopsPerIteration estimates the floating-point operation count of one
// preconditioned CG iteration: one SPMV, three WAXPBYs (x, r, p), three
// DOTs (p.Ap, r.r for the norm, r.z), and one V-cycle (a pre-smooth, a
// restriction, a recursive coarse solve, a prolongation, and a post-smooth
// at every level), accounted the same way the reference benchmark counts
// flops: 2 flops per nonzero for SPMV and each SYMGS sweep, 2n per WAXPBY,
// 2n per DOT.
func flopsPerIteration(A *problem.SparseMatrix) float64 {
	n := float64(A.TotalNumRows)
	nnz := float64(A.TotalNumNonzeros)

	spmv := 2 * nnz
	waxpby := 3 * (2 * n)
	dot := 3 * (2 * n)

	return spmv + waxpby + dot + vcycleFlops(A)
}

// vcycleFlops recurses down the hierarchy exactly the way mg.VCycle does,
// counting a pre-smoothing and a post-smoothing SYMGS (each a forward and
// a backward sweep, 2 flops/nonzero per sweep), the restriction's residual
// SPMV, and restriction/prolongation (2 flops per coarse row each) at every
// level but the coarsest, and a single SYMGS at the coarsest level.
func vcycleFlops(A *problem.SparseMatrix) float64 {
	nnz := float64(A.TotalNumNonzeros)
	symgs := 2 * (2 * nnz) // forward + backward sweep, each ~2 flops/nonzero
	if A.Next == nil {
		return symgs
	}
	residual := 2 * nnz // SPMV inside Restrict
	coarseRows := float64(A.Next.TotalNumRows)
	transfer := 2 * 2 * coarseRows // restriction + prolongation, 2 flops/row each
	return 2*symgs + residual + transfer + vcycleFlops(A.Next)
}

// Marshal renders the Document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(d)
	if err != nil {
		return nil, chk.Err("report: YAML marshal failed: %v", err)
	}
	return buf, nil
}
