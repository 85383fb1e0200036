// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config reads the benchmark's run parameters from the command
// line, falling back to the `hpcg.dat` options file when no dimensions
// are given, mirroring the role gofem's inp package plays for its (.sim)
// JSON files.
package config

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// minDim is the floor every grid dimension is snapped up to.
const minDim = 16

// Params holds the run parameters: nine integers plus the runtime budget.
// Every participant parses them itself; they are not broadcast from rank 0.
type Params struct {
	Nx, Ny, Nz int     // local grid dimensions per participant
	Rt         float64 // benchmark runtime budget, in seconds

	// Pz, Zl, Zu select pencil/z-slab decomposition mode. Pz==0 means the
	// uniform-nz path, the only one a conformant run requires.
	Pz, Zl, Zu int

	Npx, Npy, Npz int // requested process grid; 0 in any axis means auto-factor

	Prof bool // enable profiling (main.go's -prof flag lives here so there is a single flag.FlagSet)
}

// Parse reads Params from args, preferring command-line flags
// (`--nx=N --ny=N --nz=N --rt=SECONDS --pz=P --zl=N --zu=N --npx=N
// --npy=N --npz=N`), falling back to the legacy positional shorthand
// `nx ny nz [rt]`, and finally to the `hpcg.dat` options file at
// optionsFilePath when no dimensions are given on the command line.
func Parse(args []string, optionsFilePath string) (*Params, error) {
	fs := flag.NewFlagSet("hpcg-mg", flag.ContinueOnError)
	nx := fs.Int("nx", 0, "local grid size in x")
	ny := fs.Int("ny", 0, "local grid size in y")
	nz := fs.Int("nz", 0, "local grid size in z")
	rt := fs.Float64("rt", 0, "benchmark runtime budget in seconds")
	pz := fs.Int("pz", 0, "pencil/z-slab decomposition; 0 disables it")
	zl := fs.Int("zl", 0, "local nz outside the z-slab (pencil mode)")
	zu := fs.Int("zu", 0, "local nz inside the z-slab (pencil mode)")
	npx := fs.Int("npx", 0, "requested process grid size in x; 0 = auto")
	npy := fs.Int("npy", 0, "requested process grid size in y; 0 = auto")
	npz := fs.Int("npz", 0, "requested process grid size in z; 0 = auto")
	prof := fs.Bool("prof", false, "enable profiling")
	if err := fs.Parse(args); err != nil {
		return nil, chk.Err("config: flag parsing failed: %v", err)
	}

	p := &Params{
		Nx: *nx, Ny: *ny, Nz: *nz, Rt: *rt,
		Pz: *pz, Zl: *zl, Zu: *zu,
		Npx: *npx, Npy: *npy, Npz: *npz,
		Prof: *prof,
	}

	if p.Nx == 0 && p.Ny == 0 && p.Nz == 0 {
		if rest := fs.Args(); len(rest) > 0 {
			if err := p.fromPositional(rest); err != nil {
				return nil, err
			}
		}
	}

	if p.Nx == 0 && p.Ny == 0 && p.Nz == 0 {
		if err := p.fromOptionsFile(optionsFilePath); err != nil {
			return nil, chk.Err("config: no dimensions on the command line and %v", err)
		}
	}

	p.Normalize()
	return p, nil
}

// fromPositional accepts the legacy shorthand `nx ny nz [rt]`.
func (p *Params) fromPositional(args []string) error {
	if len(args) < 3 {
		return chk.Err("config: positional form needs nx ny nz, got %d arg(s)", len(args))
	}
	p.Nx = io.Atoi(args[0])
	p.Ny = io.Atoi(args[1])
	p.Nz = io.Atoi(args[2])
	if len(args) > 3 {
		p.Rt = io.Atof(args[3])
	}
	return nil
}

// Normalize snaps any dimension below minDim up to the largest of the
// three, floored at minDim.
func (p *Params) Normalize() {
	max := p.Nx
	if p.Ny > max {
		max = p.Ny
	}
	if p.Nz > max {
		max = p.Nz
	}
	if max < minDim {
		max = minDim
	}
	if p.Nx < minDim {
		p.Nx = max
	}
	if p.Ny < minDim {
		p.Ny = max
	}
	if p.Nz < minDim {
		p.Nz = max
	}
}

// PencilMode reports whether z-slab decomposition was requested.
func (p *Params) PencilMode() bool {
	return p.Pz > 0
}
