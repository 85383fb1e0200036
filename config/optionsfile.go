// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// fromOptionsFile reads nx,ny,nz (and rt, if not already set) from the
// `hpcg.dat` options file: two ignored header lines, a third line
// "nx ny nz", a fourth line "rt" that is skipped if runtime is already
// set on the command line.
func (p *Params) fromOptionsFile(path string) error {
	buf, err := io.ReadFile(path)
	if err != nil {
		return chk.Err("cannot read options file %q: %v", path, err)
	}
	lines := strings.Split(string(buf), "\n")
	if len(lines) < 3 {
		return chk.Err("options file %q needs at least 3 lines, got %d", path, len(lines))
	}

	fields := strings.Fields(lines[2])
	if len(fields) < 3 {
		return chk.Err("options file %q: line 3 needs \"nx ny nz\", got %q", path, lines[2])
	}
	p.Nx = io.Atoi(fields[0])
	p.Ny = io.Atoi(fields[1])
	p.Nz = io.Atoi(fields[2])

	if p.Rt == 0 && len(lines) >= 4 {
		rtField := strings.TrimSpace(lines[3])
		if rtField != "" {
			p.Rt = io.Atof(rtField)
		}
	}
	return nil
}
