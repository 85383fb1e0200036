// Copyright 2016 The Hpcg-mg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	chk.PrintTitle("config01: flag form parses and normalizes small dims")

	p, err := Parse([]string{"--nx=8", "--ny=32", "--nz=32", "--rt=30"}, "")
	if err != nil {
		tst.Errorf("Parse failed: %v", err)
		return
	}
	chk.IntAssert(p.Nx, 32) // 8 < minDim, snapped to max(8,32,32)=32
	chk.IntAssert(p.Ny, 32)
	chk.IntAssert(p.Nz, 32)
	if p.Rt != 30 {
		tst.Errorf("Rt = %v, want 30", p.Rt)
	}
}

func Test_config02(tst *testing.T) {

	chk.PrintTitle("config02: legacy positional form nx ny nz rt")

	p, err := Parse([]string{"24", "24", "24", "60"}, "")
	if err != nil {
		tst.Errorf("Parse failed: %v", err)
		return
	}
	chk.IntAssert(p.Nx, 24)
	chk.IntAssert(p.Ny, 24)
	chk.IntAssert(p.Nz, 24)
	if p.Rt != 60 {
		tst.Errorf("Rt = %v, want 60", p.Rt)
	}
}

func Test_config03(tst *testing.T) {

	chk.PrintTitle("config03: no dims on the command line falls back to the options file")

	dir := tst.TempDir()
	path := filepath.Join(dir, "hpcg.dat")
	content := "HPCG benchmark input file\nSandia National Laboratories\n16 16 16\n30\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tst.Fatalf("WriteFile failed: %v", err)
	}

	p, err := Parse(nil, path)
	if err != nil {
		tst.Errorf("Parse failed: %v", err)
		return
	}
	chk.IntAssert(p.Nx, 16)
	chk.IntAssert(p.Ny, 16)
	chk.IntAssert(p.Nz, 16)
	if p.Rt != 30 {
		tst.Errorf("Rt = %v, want 30", p.Rt)
	}
}

func Test_config04(tst *testing.T) {

	chk.PrintTitle("config04: minimum dims floor at 16 even when all three are tiny")

	p, err := Parse([]string{"4", "4", "4"}, "")
	if err != nil {
		tst.Errorf("Parse failed: %v", err)
		return
	}
	chk.IntAssert(p.Nx, 16)
	chk.IntAssert(p.Ny, 16)
	chk.IntAssert(p.Nz, 16)
}
