// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyRoundTrip exercises round-trip correctness and the
// reference-depth cap over randomly generated small graphs and
// codec-parameter combinations.
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(rt, "n")
		lists := make([][]int64, n)
		for u := 0; u < n; u++ {
			deg := rapid.IntRange(0, n-1).Draw(rt, "degree")
			set := make(map[int64]bool, deg)
			for len(set) < deg {
				v := rapid.IntRange(0, n-1).Draw(rt, "successor")
				set[int64(v)] = true
			}
			succ := make([]int64, 0, len(set))
			for v := range set {
				succ = append(succ, v)
			}
			for i := 1; i < len(succ); i++ {
				for j := i; j > 0 && succ[j-1] > succ[j]; j-- {
					succ[j-1], succ[j] = succ[j], succ[j-1]
				}
			}
			lists[u] = succ
		}

		params := DefaultParams(int64(n), 0)
		params.WindowSize = rapid.IntRange(1, 7).Draw(rt, "windowSize")
		params.MaxRefCount = rapid.IntRange(1, 4).Draw(rt, "maxRefCount")
		params.MinIntervalLength = rapid.IntRange(2, 6).Draw(rt, "minIntervalLength")
		params.ZetaK = uint(rapid.IntRange(1, 7).Draw(rt, "zetaK"))

		dir := t.TempDir()
		basename := filepath.Join(dir, "g")

		b := NewBuilder(int64(n), params)
		for _, succ := range lists {
			if err := b.AddNode(succ); err != nil {
				rt.Fatalf("AddNode: %v", err)
			}
		}
		if err := b.Finish(basename); err != nil {
			rt.Fatalf("Finish: %v", err)
		}

		g, err := Load(basename, Standard)
		if err != nil {
			rt.Fatalf("Load: %v", err)
		}
		defer g.Close()

		for u, want := range lists {
			got, err := g.Successors(int64(u))
			if err != nil {
				rt.Fatalf("Successors(%d): %v", u, err)
			}
			if !equalSlices(got, want) {
				rt.Fatalf("Successors(%d) = %v, want %v", u, got, want)
			}
			for i := 1; i < len(got); i++ {
				if got[i] <= got[i-1] {
					rt.Fatalf("Successors(%d) not strictly increasing: %v", u, got)
				}
			}
		}
	})
}
