// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/hpcg-mg/problem"
)

// WAXPBY computes w <- alpha*x + beta*y over owned rows; embarrassingly
// parallel over indices.
func WAXPBY(n int, alpha float64, x problem.Vector, beta float64, y problem.Vector, w problem.Vector) error {
	if len(x) < n || len(y) < n || len(w) < n {
		return chk.Err("WAXPBY: vector shorter than n=%d (x=%d y=%d w=%d)", n, len(x), len(y), len(w))
	}
	parallelRows(n, func(i int) {
		w[i] = alpha*x[i] + beta*y[i]
	})
	return nil
}
