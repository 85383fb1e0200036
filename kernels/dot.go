// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"math"
	"runtime"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/comm"
	"github.com/cpmech/hpcg-mg/problem"
	"golang.org/x/sync/errgroup"
)

// Dot computes alpha <- x.y summed over this participant's owned rows,
// then all-reduces across every participant. A participant that
// owns no rows (none do in this benchmark, but the kernel stays honest
// about it) contributes zero to the sum.
//
// The local sum is accumulated chunk-by-chunk across GOMAXPROCS workers;
// each chunk's partial sum is combined in chunk-index order, so two runs
// with the same GOMAXPROCS reduce identically, but the order is not a
// promised invariant across different worker counts.
func Dot(n int, x, y problem.Vector) (alpha float64, err error) {
	if len(x) < n || len(y) < n {
		return 0, chk.Err("Dot: vector shorter than n=%d (x=%d y=%d)", n, len(x), len(y))
	}
	local := localDot(n, x, y)
	return comm.GlobalSum(local), nil
}

func localDot(n int, x, y problem.Vector) float64 {
	if n == 0 {
		return 0
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		var sum float64
		for i := 0; i < n; i++ {
			sum += x[i] * y[i]
		}
		return sum
	}

	chunk := (n + workers - 1) / workers
	partials := make([]float64, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			var sum float64
			for i := lo; i < hi; i++ {
				sum += x[i] * y[i]
			}
			partials[w] = sum
			return nil
		})
	}
	g.Wait()

	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// Norm2 returns sqrt(x.x) over n owned rows, the residual-norm primitive
// CGDriver and the validators use.
func Norm2(n int, x problem.Vector) (float64, error) {
	alpha, err := Dot(n, x, x)
	if err != nil {
		return 0, err
	}
	if alpha < 0 {
		alpha = 0
	}
	return math.Sqrt(alpha), nil
}
