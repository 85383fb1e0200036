// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package problem holds the data model shared by every other package: the
// structured sparse operator, its halo-exchange bookkeeping, its multigrid
// link, and the plain dense Vector the kernels operate on.
package problem

import (
	"sort"

	"github.com/cpmech/hpcg-mg/geom"
)

// Vector is a contiguous array sized to a matrix's LocalNumCols: owned rows
// first, then halo slots.
type Vector []float64

// NewVector allocates a zeroed Vector of the given size.
func NewVector(n int) Vector {
	return make(Vector, n)
}

// ExternalColumn pairs a foreign global column id with the local index this
// participant assigned it. ExternalToLocalMap is kept as a slice sorted by
// GlobalID rather than a map: insertion happens once during assembly
// (through a transient map that GenerateProblem discards), and lookups are
// dense afterward.
type ExternalColumn struct {
	GlobalID int64
	LocalID  int
}

// NeighborInfo names one halo-exchange partner and how many vector elements
// are exchanged with it.
type NeighborInfo struct {
	Rank  int
	Count int
}

// HaloPlan is the send/receive schedule a HaloPlanner builds once per
// level. ExchangeHalo reads only ExternalToLocalMap (global id to halo
// slot); the per-neighbor lists describe the exchange's shape and are not
// read by it.
type HaloPlan struct {
	SendNeighbors []NeighborInfo // ordered identically to RecvNeighbors' senders
	RecvNeighbors []NeighborInfo

	// ElementsToSend holds local row indices, packed contiguously by
	// neighbor in the same order as SendNeighbors; this ordering is the
	// wire contract with the corresponding receiver's enumeration.
	ElementsToSend []int

	// ElementsToRecv holds the local halo-slot indices a received value
	// is written into, packed contiguously by neighbor in the same order
	// as RecvNeighbors. Halo slots are not contiguous by construction
	// order, so a received block does not land at a fixed offset.
	ElementsToRecv []int

	// ExternalToLocalMap is sorted by GlobalID; foreign columns are
	// assigned consecutive local ids starting at LocalNumRows, in the
	// order they are first interned during assembly.
	ExternalToLocalMap []ExternalColumn
}

// NumberOfSendNeighbors and NumberOfRecvNeighbors are derived, not stored,
// to avoid a second source of truth: len() over SendNeighbors/RecvNeighbors
// is equivalent and can't drift out of sync.
func (h *HaloPlan) NumberOfSendNeighbors() int { return len(h.SendNeighbors) }
func (h *HaloPlan) NumberOfRecvNeighbors() int { return len(h.RecvNeighbors) }

// LookupLocal resolves a foreign global column id to the local index this
// participant assigned it, or ok=false if gid is not external (or not
// interned yet).
func (h *HaloPlan) LookupLocal(gid int64) (local int, ok bool) {
	n := len(h.ExternalToLocalMap)
	idx := sort.Search(n, func(i int) bool { return h.ExternalToLocalMap[i].GlobalID >= gid })
	if idx < n && h.ExternalToLocalMap[idx].GlobalID == gid {
		return h.ExternalToLocalMap[idx].LocalID, true
	}
	return 0, false
}

// MGData links one multigrid level to the next-coarser one: the f2c
// injection map and the coarse-level scratch vectors reused across V-cycles.
type MGData struct {
	F2C []int // len == coarse LocalNumRows; F2C[k] is the fine local index of coarse row k

	Rc Vector // coarse residual scratch, sized to coarse LocalNumCols
	Xc Vector // coarse correction scratch, sized to coarse LocalNumCols

	NumPreSmootherSteps  int // = 1: one SYMGS sweep before recursing into the coarse level
	NumPostSmootherSteps int // = 1: one SYMGS sweep after the coarse correction is prolongated back
}

// SparseMatrix is one level's local rows of the 27-point stencil operator,
// plus the halo plan and multigrid link that make it usable in a
// distributed CG.
type SparseMatrix struct {
	Geom *geom.Geometry

	LocalNumRows int
	LocalNumCols int // LocalNumRows + distinct off-process columns referenced

	TotalNumRows     int64 // summed across participants
	TotalNumNonzeros int64 // summed across participants

	NonzerosInRow  []int       // [LocalNumRows], each in [8,27]
	MtxIndL        [][]int     // [LocalNumRows][nonzerosInRow[i]] local column indices
	MatrixValues   [][]float64 // [LocalNumRows][nonzerosInRow[i]] coefficients
	MtxIndG        [][]int64   // [LocalNumRows][nonzerosInRow[i]] global column indices; may be nil'd after halo setup
	DiagonalIdx    []int       // [LocalNumRows] position of the diagonal entry within that row's slices

	Halo *HaloPlan // created by GenerateProblem with ExternalToLocalMap; BuildHaloPlan fills in the neighbor lists
	Mg   *MGData   // nil at the coarsest level
	Next *SparseMatrix // the next-coarser level's matrix; nil at the coarsest level

	// ColorSets is populated by kernels.OptimizeProblem: a partition of
	// [0,LocalNumRows) into independent sets so an optimized SYMGS can
	// sweep each set's rows in parallel.
	ColorSets [][]int
}

// Diagonal returns the diagonal coefficient of owned row i.
func (A *SparseMatrix) Diagonal(i int) float64 {
	return A.MatrixValues[i][A.DiagonalIdx[i]]
}

// DropGlobalIndices discards MtxIndG once halo setup no longer needs it, to
// free the per-row global-column slices once BuildHaloPlan has translated
// everything it needs into local indices. Safe to call multiple times or
// never; nothing downstream of BuildHaloPlan reads MtxIndG again.
func (A *SparseMatrix) DropGlobalIndices() {
	A.MtxIndG = nil
}
