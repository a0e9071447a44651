// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/bvgraph/internal/testutil"
)

func readFileBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// buildGraph runs lists (indexed by node) through a Builder under params
// and returns the basename of the resulting file triple.
func buildGraph(t *testing.T, dir string, params Params, lists [][]int64) string {
	t.Helper()
	basename := filepath.Join(dir, "g")
	b := NewBuilder(int64(len(lists)), params)
	for _, succ := range lists {
		if err := b.AddNode(succ); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	if err := b.Finish(basename); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return basename
}

func countArcs(lists [][]int64) int64 {
	var n int64
	for _, l := range lists {
		n += int64(len(l))
	}
	return n
}

func assertGraphEqual(t *testing.T, basename string, mode LoadMode, lists [][]int64) {
	t.Helper()
	g, err := Load(basename, mode)
	if err != nil {
		t.Fatalf("Load(%v): %v", mode, err)
	}
	defer g.Close()

	if got, want := g.NumNodes(), int64(len(lists)); got != want {
		t.Fatalf("NumNodes() = %d, want %d", got, want)
	}
	if got, want := g.NumArcs(), countArcs(lists); got != want {
		t.Fatalf("NumArcs() = %d, want %d", got, want)
	}
	for u, want := range lists {
		if got, err := g.Outdegree(int64(u)); err != nil {
			t.Fatalf("Outdegree(%d): %v", u, err)
		} else if got != len(want) {
			t.Fatalf("Outdegree(%d) = %d, want %d", u, got, len(want))
		}
		got, err := g.Successors(int64(u))
		if err != nil {
			t.Fatalf("Successors(%d): %v", u, err)
		}
		if !equalSlices(got, want) {
			t.Fatalf("Successors(%d) = %v, want %v", u, got, want)
		}
	}

	it, err := g.NodeIterator(0)
	if err != nil {
		t.Fatalf("NodeIterator: %v", err)
	}
	for u := 0; u < len(lists); u++ {
		node, succ, err := it.Next()
		if err != nil {
			t.Fatalf("iterator Next at node %d: %v", u, err)
		}
		if node != int64(u) {
			t.Fatalf("iterator returned node %d, want %d", node, u)
		}
		if !equalSlices(succ, lists[u]) {
			t.Fatalf("iterator successors(%d) = %v, want %v", u, succ, lists[u])
		}
	}
	if _, _, err := it.Next(); !errors.Is(err, ErrIterationDone) {
		t.Fatalf("iterator Next past end = %v, want ErrIterationDone", err)
	}
}

func equalSlices(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// a 3-cycle with every pairwise arc present.
func TestSmallCompleteCycle(t *testing.T) {
	lists := [][]int64{
		{1, 2},
		{0, 2},
		{0, 1},
	}
	params := DefaultParams(3, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)

	for _, mode := range []LoadMode{Standard, Mapped} {
		g, err := Load(basename, mode)
		if err != nil {
			t.Fatalf("Load(%v): %v", mode, err)
		}
		if got := g.NumArcs(); got != 6 {
			t.Fatalf("NumArcs() = %d, want 6", got)
		}
		if d, _ := g.Outdegree(1); d != 2 {
			t.Fatalf("Outdegree(1) = %d, want 2", d)
		}
		if s, _ := g.Successors(0); !equalSlices(s, []int64{1, 2}) {
			t.Fatalf("Successors(0) = %v, want [1 2]", s)
		}
		if s, _ := g.Successors(2); !equalSlices(s, []int64{0, 1}) {
			t.Fatalf("Successors(2) = %v, want [0 1]", s)
		}
		g.Close()
	}
}

// only node 2 has outgoing arcs.
func TestSingleSourceNode(t *testing.T) {
	lists := [][]int64{
		{},
		{},
		{0, 1},
	}
	params := DefaultParams(3, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	assertGraphEqual(t, basename, Standard, lists)
}

// a complete binary out-tree of depth 3 (15 nodes); consecutive nodes
// share no successors, so every record is encoded without a reference.
func TestBinaryOutTree(t *testing.T) {
	const n = 15
	lists := make([][]int64, n)
	for u := 0; u < n; u++ {
		var succ []int64
		if left := 2*u + 1; left < n {
			succ = append(succ, int64(left))
		}
		if right := 2*u + 2; right < n {
			succ = append(succ, int64(right))
		}
		lists[u] = succ
	}
	params := DefaultParams(n, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	assertGraphEqual(t, basename, Standard, lists)
	assertGraphEqual(t, basename, Mapped, lists)
}

// a directed cycle on 10 nodes, W=3: single-successor lists, no
// intervals, pure residual gap coding.
func TestDirectedCycleResidualOnly(t *testing.T) {
	const n = 10
	lists := make([][]int64, n)
	for u := 0; u < n; u++ {
		lists[u] = []int64{int64((u + 1) % n)}
	}
	params := DefaultParams(n, 0)
	params.WindowSize = 3
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	assertGraphEqual(t, basename, Standard, lists)

	g, err := Load(basename, Standard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()
	for u := 0; u < n; u++ {
		if d, _ := g.Outdegree(int64(u)); d != 1 {
			t.Fatalf("Outdegree(%d) = %d, want 1", u, d)
		}
	}
}

// an empty graph of 10 nodes with no arcs at all.
func TestEmptyGraph(t *testing.T) {
	const n = 10
	lists := make([][]int64, n)
	params := DefaultParams(n, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)

	g, err := Load(basename, Standard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()
	if got := g.NumArcs(); got != 0 {
		t.Fatalf("NumArcs() = %d, want 0", got)
	}
	for u := 0; u < n; u++ {
		if d, _ := g.Outdegree(int64(u)); d != 0 {
			t.Fatalf("Outdegree(%d) = %d, want 0", u, d)
		}
	}
}

// a random power-law graph with a fixed seed; round-trip must be
// exact and re-encoding the decoded graph byte-identical.
func TestPowerLawGraphReencodesByteIdentical(t *testing.T) {
	const n = 2000
	lists := testutil.PowerLawGraph(42, n, 12)
	params := DefaultParams(n, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	assertGraphEqual(t, basename, Standard, lists)

	g, err := Load(basename, Standard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	decoded := make([][]int64, n)
	for u := 0; u < n; u++ {
		decoded[u], err = g.Successors(int64(u))
		if err != nil {
			t.Fatalf("Successors(%d): %v", u, err)
		}
	}
	g.Close()

	reencoded := filepath.Join(dir, "g2")
	b := NewBuilder(int64(n), params)
	for _, succ := range decoded {
		if err := b.AddNode(succ); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	if err := b.Finish(reencoded); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	orig, err := readFileBytes(basename + ".graph")
	if err != nil {
		t.Fatalf("read original .graph: %v", err)
	}
	again, err := readFileBytes(reencoded + ".graph")
	if err != nil {
		t.Fatalf("read re-encoded .graph: %v", err)
	}
	if string(orig) != string(again) {
		t.Fatal("re-encoding the decoded graph did not reproduce a byte-identical .graph file")
	}
}

func TestBuilderRejectsNonMonotoneInput(t *testing.T) {
	b := NewBuilder(5, DefaultParams(5, 0))
	err := b.AddNode([]int64{2, 1})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("AddNode(non-monotone) error = %v, want *InvalidInputError", err)
	}
}

func TestBuilderRejectsOutOfRangeSuccessor(t *testing.T) {
	b := NewBuilder(5, DefaultParams(5, 0))
	err := b.AddNode([]int64{0, 5})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("AddNode(out-of-range) error = %v, want *InvalidInputError", err)
	}
}

func TestOutOfRangeQuery(t *testing.T) {
	lists := [][]int64{{1}, {0}}
	params := DefaultParams(2, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	g, err := Load(basename, Standard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()
	var oor *OutOfRangeError
	if _, err := g.Successors(5); !errors.As(err, &oor) {
		t.Fatalf("Successors(5) error = %v, want *OutOfRangeError", err)
	}
}

func TestOfflineModeRejectsRandomAccess(t *testing.T) {
	lists := [][]int64{{1}, {0}}
	params := DefaultParams(2, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	g, err := Load(basename, Offline)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()
	if g.RandomAccess() {
		t.Fatal("RandomAccess() = true for an Offline handle")
	}
	if _, err := g.Successors(0); err == nil {
		t.Fatal("Successors on an Offline handle should fail")
	}
	it, err := g.NodeIterator(0)
	if err != nil {
		t.Fatalf("NodeIterator: %v", err)
	}
	node, succ, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if node != 0 || !equalSlices(succ, lists[0]) {
		t.Fatalf("Next() = %d, %v, want 0, %v", node, succ, lists[0])
	}
}

func TestCopyIndependentHandles(t *testing.T) {
	lists := testutil.PowerLawGraph(7, 200, 6)
	params := DefaultParams(200, 0)
	dir := t.TempDir()
	basename := buildGraph(t, dir, params, lists)
	g, err := Load(basename, Standard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer g.Close()
	cp := g.Copy()
	defer cp.Close()

	for u := 0; u < len(lists); u += 7 {
		a, err := g.Successors(int64(u))
		if err != nil {
			t.Fatalf("Successors(%d) on g: %v", u, err)
		}
		b, err := cp.Successors(int64(len(lists) - 1 - u))
		if err != nil {
			t.Fatalf("Successors on cp: %v", err)
		}
		if !equalSlices(a, lists[u]) {
			t.Fatalf("g.Successors(%d) = %v, want %v", u, a, lists[u])
		}
		if !equalSlices(b, lists[len(lists)-1-u]) {
			t.Fatalf("cp.Successors(%d) = %v, want %v", len(lists)-1-u, b, lists[len(lists)-1-u])
		}
	}
}
