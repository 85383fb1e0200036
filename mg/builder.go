// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mg builds the four-level geometric multigrid hierarchy the
// benchmark's CG preconditioner runs on, and implements the V-cycle itself.
package mg

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/comm"
	"github.com/cpmech/hpcg-mg/geom"
	"github.com/cpmech/hpcg-mg/problem"
)

// NumLevels is the fixed hierarchy depth this benchmark runs: four levels
// total, three coarsenings.
const NumLevels = 4

// Hierarchy is the finest-level problem plus everything CGDriver needs to
// run a preconditioned solve: the right-hand side, exact solution, and
// initial guess, all sized to the finest level.
type Hierarchy struct {
	A      *problem.SparseMatrix // finest level; A.Next chains down to the coarsest
	B      problem.Vector
	Xexact problem.Vector
	X0     problem.Vector
}

// Build constructs the full NumLevels hierarchy starting from g: the finest
// ProblemGenerator-produced level, then NumLevels-1 recursive coarsenings,
// each with its own halo plan and an MGData link to the level above it.
func Build(g *geom.Geometry) (*Hierarchy, error) {
	A, b, xexact, x0, err := problem.GenerateProblem(g)
	if err != nil {
		return nil, chk.Err("mg.Build: finest-level GenerateProblem failed: %v", err)
	}
	if err := comm.BuildHaloPlan(g, A); err != nil {
		return nil, chk.Err("mg.Build: finest-level BuildHaloPlan failed: %v", err)
	}

	if err := attachCoarseLevels(g, A, NumLevels-1); err != nil {
		return nil, err
	}

	return &Hierarchy{A: A, B: b, Xexact: xexact, X0: x0}, nil
}

// attachCoarseLevels recursively builds `remaining` more coarse levels
// below fineA, wiring each one's MGData (f2c map + scratch vectors) and
// Next pointer.
func attachCoarseLevels(fineGeom *geom.Geometry, fineA *problem.SparseMatrix, remaining int) error {
	if remaining == 0 {
		return nil
	}
	coarseGeom, err := fineGeom.Coarsen()
	if err != nil {
		return chk.Err("mg: cannot coarsen further: %v", err)
	}
	coarseA, _, _, _, err := problem.GenerateProblem(coarseGeom)
	if err != nil {
		return chk.Err("mg: coarse-level GenerateProblem failed: %v", err)
	}
	if err := comm.BuildHaloPlan(coarseGeom, coarseA); err != nil {
		return chk.Err("mg: coarse-level BuildHaloPlan failed: %v", err)
	}

	f2c, err := buildF2C(fineGeom, coarseGeom)
	if err != nil {
		return err
	}

	fineA.Mg = &problem.MGData{
		F2C:                  f2c,
		Rc:                   problem.NewVector(coarseA.LocalNumCols),
		Xc:                   problem.NewVector(coarseA.LocalNumCols),
		NumPreSmootherSteps:  1,
		NumPostSmootherSteps: 1,
	}
	fineA.Next = coarseA

	return attachCoarseLevels(coarseGeom, coarseA, remaining-1)
}

// buildF2C computes the fine-to-coarse injection array: f2c[k] is the fine
// local row at (2ix,2iy,2iz) for coarse row k at (ix,iy,iz). Both
// geometries describe the SAME participant's local box at two different
// resolutions, so this is purely local arithmetic, no communication.
func buildF2C(fineGeom, coarseGeom *geom.Geometry) ([]int, error) {
	if coarseGeom.Nx*2 != fineGeom.Nx || coarseGeom.Ny*2 != fineGeom.Ny || coarseGeom.Nz*2 != fineGeom.Nz {
		return nil, chk.Err("buildF2C: fine (%d,%d,%d) is not exactly double coarse (%d,%d,%d)",
			fineGeom.Nx, fineGeom.Ny, fineGeom.Nz, coarseGeom.Nx, coarseGeom.Ny, coarseGeom.Nz)
	}
	n := coarseGeom.LocalNumRows()
	f2c := make([]int, n)
	for iz := 0; iz < coarseGeom.Nz; iz++ {
		for iy := 0; iy < coarseGeom.Ny; iy++ {
			for ix := 0; ix < coarseGeom.Nx; ix++ {
				k := coarseGeom.LocalIndex(ix, iy, iz)
				f2c[k] = fineGeom.LocalIndex(2*ix, 2*iy, 2*iz)
			}
		}
	}
	return f2c, nil
}
