// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom partitions a global logical 3D grid among the participants
// of a distributed run and derives the local box each one owns.
package geom

import (
	"github.com/cpmech/gosl/chk"
)

// Geometry describes how a global nx*npx by ny*npy by nz*npz grid is
// partitioned into a (npx,npy,npz) process grid, and which local box this
// participant owns.
type Geometry struct {

	// global grid
	Gnx, Gny, Gnz int // global dimensions = nx*npx, ny*npy, nz*npz

	// process grid
	Npx, Npy, Npz int // process grid dimensions; Npx*Npy*Npz == Size
	Size          int // total number of participants
	Rank          int // this participant's rank

	// this participant's coordinate in the process grid
	Ipx, Ipy, Ipz int

	// local box owned by this participant
	Nx, Ny, Nz int

	// pencil mode. Only LocalNz reads these; GenerateProblem, BuildHaloPlan
	// and Coarsen use the uniform Nz on every participant, so a non-uniform
	// z-slab decomposition is not built.
	Pz, Zl, Zu int
}

// MaxAspectRatio bounds the ratio of the longest to the shortest global grid
// dimension before NewGeometry rejects the requested process-grid
// factorization.
const MaxAspectRatio = 8.0

// NewGeometry builds a Geometry for rank out of size participants, each
// owning a (nx,ny,nz) local box, choosing a process-grid factorization of
// size that minimizes the surface-to-volume ratio of the local box.
func NewGeometry(nx, ny, nz, size, rank int) (g *Geometry, err error) {
	if rank < 0 || rank >= size {
		return nil, chk.Err("rank %d out of range [0,%d)", rank, size)
	}
	npx, npy, npz, err := ChooseProcessGrid(size, nx, ny, nz)
	if err != nil {
		return nil, err
	}
	g = &Geometry{
		Gnx: nx * npx, Gny: ny * npy, Gnz: nz * npz,
		Npx: npx, Npy: npy, Npz: npz,
		Size: size, Rank: rank,
		Nx: nx, Ny: ny, Nz: nz,
	}
	g.Ipx, g.Ipy, g.Ipz = g.RankToCoord(rank)
	return g, nil
}

// ChooseProcessGrid returns the (npx,npy,npz) triple with npx*npy*npz==size
// that minimizes nx*ny*npz + nx*nz*npy + ny*nz*npx, the local box's face
// areas each weighted by the process-grid extent along that face's normal.
// It rejects any factorization whose resulting global grid aspect ratio
// exceeds MaxAspectRatio.
func ChooseProcessGrid(size, nx, ny, nz int) (npx, npy, npz int, err error) {
	if size <= 0 {
		return 0, 0, 0, chk.Err("participant count must be positive, got %d", size)
	}
	bestSurface := -1
	found := false
	for a := 1; a <= size; a++ {
		if size%a != 0 {
			continue
		}
		rest := size / a
		for b := 1; b <= rest; b++ {
			if rest%b != 0 {
				continue
			}
			c := rest / b
			surface := nx*ny*c + nx*nz*b + ny*nz*a
			if !aspectRatioOK(nx, ny, nz, a, b, c) {
				continue
			}
			if !found || surface < bestSurface {
				bestSurface = surface
				npx, npy, npz = a, b, c
				found = true
			}
		}
	}
	if !found {
		return 0, 0, 0, chk.Err("no process-grid factorization of %d participants satisfies the aspect-ratio bound for local box (%d,%d,%d)", size, nx, ny, nz)
	}
	return npx, npy, npz, nil
}

// aspectRatioOK rejects factorizations whose GLOBAL grid implied by
// (npx,npy,npz) has a longest-to-shortest dimension ratio above
// MaxAspectRatio.
func aspectRatioOK(nx, ny, nz, npx, npy, npz int) bool {
	gnx, gny, gnz := float64(nx*npx), float64(ny*npy), float64(nz*npz)
	lo := gnx
	if gny < lo {
		lo = gny
	}
	if gnz < lo {
		lo = gnz
	}
	hi := gnx
	if gny > hi {
		hi = gny
	}
	if gnz > hi {
		hi = gnz
	}
	return hi/lo <= MaxAspectRatio
}

// RankToCoord maps a participant rank to its (ipx,ipy,ipz) coordinate in
// the process grid.
func (g *Geometry) RankToCoord(rank int) (ipx, ipy, ipz int) {
	ipx = rank % g.Npx
	ipy = (rank / g.Npx) % g.Npy
	ipz = rank / (g.Npx * g.Npy)
	return
}

// CoordToRank is the inverse of RankToCoord.
func (g *Geometry) CoordToRank(ipx, ipy, ipz int) int {
	return ipz*(g.Npx*g.Npy) + ipy*g.Npx + ipx
}

// LocalNz returns the local z-extent for the given process-grid z
// coordinate, honoring pencil mode if enabled (Pz > 0): Zu for ipz < Pz, Zl
// otherwise. With Pz <= 0 it returns g.Nz.
func (g *Geometry) LocalNz(ipz int) int {
	if g.Pz <= 0 {
		return g.Nz
	}
	if ipz < g.Pz {
		return g.Zu
	}
	return g.Zl
}

// GlobalID returns the linear global id of grid point (gix,giy,giz), using
// the convention gix + giy*gnx + giz*gnx*gny.
func (g *Geometry) GlobalID(gix, giy, giz int) int64 {
	return int64(gix) + int64(giy)*int64(g.Gnx) + int64(giz)*int64(g.Gnx)*int64(g.Gny)
}

// DecodeGlobalID inverts GlobalID, recovering the global grid coordinate.
func (g *Geometry) DecodeGlobalID(gid int64) (gix, giy, giz int) {
	plane := int64(g.Gnx) * int64(g.Gny)
	giz = int(gid / plane)
	rem := gid % plane
	giy = int(rem / int64(g.Gnx))
	gix = int(rem % int64(g.Gnx))
	return
}

// OwnerRank returns which participant owns global grid point (gix,giy,giz),
// along with that participant's local (lx,ly,lz) index for the point.
func (g *Geometry) OwnerRank(gix, giy, giz int) (rank, lx, ly, lz int) {
	ipx := gix / g.Nx
	ipy := giy / g.Ny
	ipz := giz / g.Nz
	lx = gix % g.Nx
	ly = giy % g.Ny
	lz = giz % g.Nz
	rank = g.CoordToRank(ipx, ipy, ipz)
	return
}

// LocalToGlobal converts a local index (ix,iy,iz) owned by this
// participant into its global grid coordinate.
func (g *Geometry) LocalToGlobal(ix, iy, iz int) (gix, giy, giz int) {
	gix = g.Ipx*g.Nx + ix
	giy = g.Ipy*g.Ny + iy
	giz = g.Ipz*g.Nz + iz
	return
}

// LocalIndex linearizes a local (ix,iy,iz) triple into the row index used
// throughout SparseMatrix and Vector (row-major, x fastest).
func (g *Geometry) LocalIndex(ix, iy, iz int) int {
	return ix + iy*g.Nx + iz*g.Nx*g.Ny
}

// Coarsen returns the Geometry for the next-coarser multigrid level,
// halving each local dimension. The process grid and this
// participant's coordinate are unchanged; only the local/global extents
// shrink.
func (g *Geometry) Coarsen() (c *Geometry, err error) {
	if g.Nx%2 != 0 || g.Ny%2 != 0 || g.Nz%2 != 0 {
		return nil, chk.Err("cannot coarsen odd local dimensions (%d,%d,%d)", g.Nx, g.Ny, g.Nz)
	}
	c = &Geometry{
		Gnx: g.Gnx / 2, Gny: g.Gny / 2, Gnz: g.Gnz / 2,
		Npx: g.Npx, Npy: g.Npy, Npz: g.Npz,
		Size: g.Size, Rank: g.Rank,
		Ipx: g.Ipx, Ipy: g.Ipy, Ipz: g.Ipz,
		Nx: g.Nx / 2, Ny: g.Ny / 2, Nz: g.Nz / 2,
	}
	return c, nil
}

// LocalNumRows is the number of owned rows on this participant: nx*ny*nz.
func (g *Geometry) LocalNumRows() int {
	return g.Nx * g.Ny * g.Nz
}
