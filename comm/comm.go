// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package comm wraps gosl/mpi for participant bootstrap, the halo-exchange
// wire protocol, and the global reductions DOT needs, so the rest of the
// benchmark never touches the message-passing layer directly.
package comm

import (
	"github.com/cpmech/gosl/mpi"
)

// Start brings up the message-passing layer; call once at process start,
// mirroring gofem's main.go (mpi.Start(false)).
func Start() {
	mpi.Start(false)
}

// Stop tears down the message-passing layer; deferred from main, mirroring
// gofem's main.go (mpi.Stop(false)).
func Stop() {
	mpi.Stop(false)
}

// Rank returns this participant's rank, or 0 outside a distributed run.
func Rank() int {
	if mpi.IsOn() {
		return mpi.Rank()
	}
	return 0
}

// Size returns the participant count, or 1 outside a distributed run.
func Size() int {
	if mpi.IsOn() {
		return mpi.Size()
	}
	return 1
}

// IsDistributed reports whether more than one participant is running.
func IsDistributed() bool {
	return mpi.IsOn() && mpi.Size() > 1
}

// Barrier synchronizes all participants. gosl/mpi's only collective this
// benchmark can ground against actual pack usage is the two-buffer
// AllReduceSum (fem/s_implicit.go, fem/s_linimp.go both call it as
// mpi.AllReduceSum(dest, orig); no dedicated barrier call is ever
// exercised anywhere in the pack); a one-element reduction is itself a
// collective every participant must enter together, so it stands in for
// a barrier.
func Barrier() {
	if IsDistributed() {
		GlobalSum(0)
	}
}

// GlobalSum all-reduces a single scalar across every participant, the
// collective DOT needs after its local owned-row sum. Mirrors
// mpi.AllReduceSum(dest, orig)'s two-buffer form used throughout gofem's
// implicit solver step (fem/s_implicit.go:192, fem/s_linimp.go:158).
func GlobalSum(local float64) float64 {
	if !IsDistributed() {
		return local
	}
	orig := []float64{local}
	dest := make([]float64, 1)
	mpi.AllReduceSum(dest, orig)
	return dest[0]
}

// GlobalSumVector all-reduces every element of orig across all
// participants into a freshly allocated buffer, the same
// mpi.AllReduceSum(dest, orig) call GlobalSum uses above, just over a
// longer slice; outside a distributed run orig itself is returned.
// ExchangeHalo's whole-grid scatter/gather is built on it.
func GlobalSumVector(orig []float64) []float64 {
	if !IsDistributed() {
		return orig
	}
	dest := make([]float64, len(orig))
	mpi.AllReduceSum(dest, orig)
	return dest
}
