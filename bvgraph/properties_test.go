// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/bvgraph/internal/intcode"
)

func TestPropertiesRoundTrip(t *testing.T) {
	cases := []Params{
		DefaultParams(1000, 5000),
		{
			Nodes: 10, Arcs: 0,
			WindowSize: 1, MaxRefCount: 1, MinIntervalLength: 2, ZetaK: 1,
			Outdegree: intcode.Delta, Reference: intcode.Gamma,
			Block: intcode.Delta, Interval: intcode.Delta, Residual: intcode.Gamma,
		},
		{
			Nodes: 999999, Arcs: 123456789,
			WindowSize: 7, MaxRefCount: 3, MinIntervalLength: 4, ZetaK: 7,
			Outdegree: intcode.Gamma, Reference: intcode.Unary,
			Block: intcode.Gamma, Interval: intcode.Gamma, Residual: intcode.Zeta,
		},
	}
	dir := t.TempDir()
	for i, want := range cases {
		path := filepath.Join(dir, "p"+string(rune('0'+i))+".properties")
		if err := SaveProperties(path, want); err != nil {
			t.Fatalf("SaveProperties: %v", err)
		}
		got, err := LoadProperties(path)
		if err != nil {
			t.Fatalf("LoadProperties: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("properties round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLoadPropertiesRejectsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.properties")
	if err := os.WriteFile(path, []byte("graphclass = bvgraph.v0\nnodes = 10\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := LoadProperties(path)
	var unsupported *UnsupportedVersionError
	if !errors.As(err, &unsupported) {
		t.Fatalf("LoadProperties error = %v, want *UnsupportedVersionError", err)
	}
}
