// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"os"

	"golang.org/x/exp/mmap"

	"github.com/dsnet/bvgraph/internal/bitio"
	"github.com/dsnet/bvgraph/internal/eliasfano"
	"github.com/dsnet/bvgraph/internal/intcode"
)

// seekableBitReader is satisfied by both bitio.RandomReader (Standard
// mode's in-memory []byte) and bitio.MappedReader (Mapped mode's
// golang.org/x/exp/mmap.ReaderAt) — the only difference between the two
// load modes that Graph's decode path needs to care about.
type seekableBitReader interface {
	bitio.BitReader
	SeekBit(pos uint64)
}

// Graph is the read-only public accessor over a compressed graph:
// num nodes/num arcs/outdegree/successors/node iterator/copy, plus the
// random-access predicate.
type Graph struct {
	params       Params
	basename     string
	randomAccess bool

	idx       *eliasfano.Sequence
	newReader func() seekableBitReader // nil in Offline mode

	data       []byte         // held only so Standard mode's backing array outlives the Graph
	mmapFile   *mmap.ReaderAt // non-nil in Mapped mode
	streamFile *os.File       // non-nil in Offline mode
}

// NumNodes returns N.
func (g *Graph) NumNodes() int64 { return g.params.Nodes }

// NumArcs returns A, as recorded in .properties.
func (g *Graph) NumArcs() int64 { return g.params.Arcs }

// RandomAccess reports whether Outdegree/Successors/SuccessorArray and a
// node_iterator(from) with from>0 are usable on this handle.
func (g *Graph) RandomAccess() bool { return g.randomAccess }

// Outdegree returns d(u) by decoding only Block A of u's record.
func (g *Graph) Outdegree(u int64) (int, error) {
	if err := g.checkRandomAccess(u); err != nil {
		return 0, err
	}
	r := g.newReader()
	r.SeekBit(g.idx.Get(int(u)))
	d, err := intcode.Read(r, g.params.Outdegree, g.params.ZetaK)
	if err != nil {
		return 0, &CorruptError{Node: u, Reason: err.Error()}
	}
	return int(d), nil
}

// Successors returns the full, freshly allocated, strictly increasing
// successor list of u. A Go []int64 already serves both as something a
// caller can range over and stop early on and as a materialized buffer,
// so there is no separate lazy-cursor type.
func (g *Graph) Successors(u int64) ([]int64, error) {
	if err := g.checkRandomAccess(u); err != nil {
		return nil, err
	}
	return g.decodeAt(u, g.params.MaxRefCount)
}

// SuccessorArray is an alias for Successors, kept for callers that want
// to name the materialized-array contract explicitly.
func (g *Graph) SuccessorArray(u int64) ([]int64, error) { return g.Successors(u) }

func (g *Graph) checkRandomAccess(u int64) error {
	if !g.randomAccess {
		return &OutOfRangeError{Node: u}
	}
	if u < 0 || u >= g.params.Nodes {
		return &OutOfRangeError{Node: u}
	}
	return nil
}

// decodeAt decodes u's record, recursively resolving its reference (if
// any) through the offset index. depthBudget starts at R and is
// decremented on every hop, catching a corrupt file whose reference chain
// exceeds the declared maximum before it recurses unboundedly.
func (g *Graph) decodeAt(u int64, depthBudget int) ([]int64, error) {
	r := g.newReader()
	r.SeekBit(g.idx.Get(int(u)))
	resolve := func(rnode int64) ([]int64, error) {
		if depthBudget <= 0 {
			return nil, &CorruptError{Node: u, Reason: "reference chain exceeds maximum depth"}
		}
		return g.decodeAt(rnode, depthBudget-1)
	}
	return decodeRecord(r, g.params, u, resolve)
}

// NodeIterator returns a sequential cursor starting at node from.
// Offline handles only support from==0.
func (g *Graph) NodeIterator(from int64) (*NodeIterator, error) {
	if from < 0 || from > g.params.Nodes {
		return nil, &OutOfRangeError{Node: from}
	}
	if g.streamFile != nil {
		if from != 0 {
			return nil, &OutOfRangeError{Node: from}
		}
		if _, err := g.streamFile.Seek(0, 0); err != nil {
			return nil, &IoError{Path: g.basename + ".graph", Err: err}
		}
		return newNodeIterator(g, from, newBufferedStream(g.streamFile)), nil
	}
	r := g.newReader()
	r.SeekBit(g.idx.Get(int(from)))
	return newNodeIterator(g, from, r), nil
}

// Copy returns a second handle sharing the underlying bit source and
// offset index but with independent decoder state, so the two handles may
// be driven from different goroutines without synchronization.
func (g *Graph) Copy() *Graph {
	cp := *g
	return &cp
}

// Close releases the underlying file descriptor or memory map. Safe to
// call on every load mode.
func (g *Graph) Close() error {
	if g.mmapFile != nil {
		return g.mmapFile.Close()
	}
	if g.streamFile != nil {
		return g.streamFile.Close()
	}
	return nil
}
