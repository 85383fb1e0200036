// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelRows decomposes [0,n) into contiguous chunks, one per
// GOMAXPROCS worker, and runs fn(i) for every row index independently; the
// errgroup.Wait() call is the implicit barrier terminating the region.
// Used by SPMV, WAXPBY, Restrict and Prolong; DOT's local sum chunks the
// same way in localDot; the reference SYMGS never calls this; it is strictly
// serial per participant.
func parallelRows(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	g.Wait() // implicit barrier
}

// parallelIndices is parallelRows' counterpart for a non-contiguous row
// set (one multicoloring class): it chunks the given index slice across
// GOMAXPROCS workers the same way, so each color's sweep still gets the
// same fork-join shared-memory parallelism as SPMV/WAXPBY.
func parallelIndices(idx []int, fn func(i int)) {
	n := len(idx)
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for _, i := range idx {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for _, i := range idx[lo:hi] {
				fn(i)
			}
			return nil
		})
	}
	g.Wait()
}
