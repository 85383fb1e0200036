// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

// OptimizeProblem establishes the row coloring SymGSOptimized needs to
// parallelize the smoother. It colors by local grid parity
// (ix%2, iy%2, iz%2): any two rows connected by a 27-point stencil offset
// differ by at least one odd component, so same-color rows are never
// adjacent in the stencil graph and can be updated concurrently without
// a data race or a stale-vs-current ambiguity within the set.
//
// This is a substitution point: a real optimized build might
// instead permute rows, pack values in a blocked layout, or move data to
// an accelerator; this implementation sticks to reference row/column
// layout and only adds the coloring SymGSOptimized consumes, keeping every
// other optimized kernel identical to its reference counterpart.

import (
	"github.com/cpmech/hpcg-mg/problem"
)

const numColors = 8 // (ix%2, iy%2, iz%2)

func OptimizeProblem(A *problem.SparseMatrix) error {
	g := A.Geom
	sets := make([][]int, numColors)
	for iz := 0; iz < g.Nz; iz++ {
		for iy := 0; iy < g.Ny; iy++ {
			for ix := 0; ix < g.Nx; ix++ {
				color := (ix % 2) + (iy%2)*2 + (iz%2)*4
				row := g.LocalIndex(ix, iy, iz)
				sets[color] = append(sets[color], row)
			}
		}
	}
	A.ColorSets = sets

	if A.Mg != nil && A.Next != nil {
		if err := OptimizeProblem(A.Next); err != nil {
			return err
		}
	}
	return nil
}
