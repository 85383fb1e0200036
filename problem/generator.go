// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/geom"
)

// stencilOffsets enumerates the 27 offsets of a 27-point stencil, self
// first so DiagonalIdx can be recorded as soon as it is emitted.
var stencilOffsets = buildStencilOffsets()

func buildStencilOffsets() [][3]int {
	offs := make([][3]int, 0, 27)
	offs = append(offs, [3]int{0, 0, 0})
	for sz := -1; sz <= 1; sz++ {
		for sy := -1; sy <= 1; sy++ {
			for sx := -1; sx <= 1; sx++ {
				if sx == 0 && sy == 0 && sz == 0 {
					continue
				}
				offs = append(offs, [3]int{sx, sy, sz})
			}
		}
	}
	return offs
}

// diagonalValue is the fixed diagonal coefficient every row receives,
// interior or boundary.
const diagonalValue = 26.0
const offDiagonalValue = -1.0

// GenerateProblem materializes the local rows of a SparseMatrix for g's
// owned box, together with the right-hand side b (defined so that xexact,
// the all-ones vector, solves A*xexact=b), xexact itself, and the initial
// guess x0=0.
func GenerateProblem(g *geom.Geometry) (A *SparseMatrix, b, xexact, x0 Vector, err error) {
	nrows := g.LocalNumRows()
	A = &SparseMatrix{
		Geom:          g,
		LocalNumRows:  nrows,
		NonzerosInRow: make([]int, nrows),
		MtxIndL:       make([][]int, nrows),
		MatrixValues:  make([][]float64, nrows),
		MtxIndG:       make([][]int64, nrows),
		DiagonalIdx:   make([]int, nrows),
	}

	external := make(map[int64]int) // global id -> local id, interned on first sight
	b = make(Vector, nrows)          // grown to LocalNumCols below

	for iz := 0; iz < g.Nz; iz++ {
		for iy := 0; iy < g.Ny; iy++ {
			for ix := 0; ix < g.Nx; ix++ {
				row := g.LocalIndex(ix, iy, iz)
				gix, giy, giz := g.LocalToGlobal(ix, iy, iz)

				cols := make([]int, 0, 27)
				vals := make([]float64, 0, 27)
				gids := make([]int64, 0, 27)
				diagIdx := -1
				rowsum := 0.0

				for _, off := range stencilOffsets {
					ngix, ngiy, ngiz := gix+off[0], giy+off[1], giz+off[2]
					if ngix < 0 || ngix >= g.Gnx || ngiy < 0 || ngiy >= g.Gny || ngiz < 0 || ngiz >= g.Gnz {
						continue
					}
					isSelf := off[0] == 0 && off[1] == 0 && off[2] == 0
					value := offDiagonalValue
					if isSelf {
						value = diagonalValue
					}

					var localCol int
					ownerRank, lx, ly, lz := g.OwnerRank(ngix, ngiy, ngiz)
					gid := g.GlobalID(ngix, ngiy, ngiz)
					if ownerRank == g.Rank {
						localCol = g.LocalIndex(lx, ly, lz)
					} else {
						lc, ok := external[gid]
						if !ok {
							lc = nrows + len(external)
							external[gid] = lc
						}
						localCol = lc
					}

					if isSelf {
						diagIdx = len(cols)
					}
					cols = append(cols, localCol)
					vals = append(vals, value)
					gids = append(gids, gid)
					rowsum += value
				}

				if diagIdx < 0 {
					return nil, nil, nil, nil, chk.Err("row %d (local %d,%d,%d) never emitted a self entry", row, ix, iy, iz)
				}
				A.NonzerosInRow[row] = len(cols)
				A.MtxIndL[row] = cols
				A.MatrixValues[row] = vals
				A.MtxIndG[row] = gids
				A.DiagonalIdx[row] = diagIdx
				b[row] = rowsum
			}
		}
	}

	A.LocalNumCols = nrows + len(external)
	A.Halo = &HaloPlan{ExternalToLocalMap: externalMapToSortedSlice(external)}

	// grow b, xexact, x0 to LocalNumCols; halo slots of b/x0 are never
	// read before a halo exchange populates them, but sizing every vector
	// uniformly keeps kernel code free of special cases.
	bFull := make(Vector, A.LocalNumCols)
	copy(bFull, b)
	b = bFull

	xexact = make(Vector, A.LocalNumCols)
	for i := range xexact {
		xexact[i] = 1.0
	}

	x0 = make(Vector, A.LocalNumCols)

	A.TotalNumRows = int64(nrows) * int64(g.Size)
	var localNnz int64
	for _, n := range A.NonzerosInRow {
		localNnz += int64(n)
	}
	A.TotalNumNonzeros = localNnz * int64(g.Size)

	return A, b, xexact, x0, nil
}

func externalMapToSortedSlice(external map[int64]int) []ExternalColumn {
	out := make([]ExternalColumn, 0, len(external))
	for gid, lid := range external {
		out = append(out, ExternalColumn{GlobalID: gid, LocalID: lid})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GlobalID < out[j].GlobalID })
	return out
}
