// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import "github.com/dsnet/bvgraph/internal/bitio"

// Builder is the one-shot sequential-to-compressed writer: feed it nodes
// 0..N-1 in order, each with a sorted successor list, and Finish emits
// the .graph/.offsets/.properties triple.
type Builder struct {
	params  Params
	w       *bitio.Writer
	offsets []int64
	ring    []windowEntry
	cur     int64
	arcs    int64
}

// NewBuilder returns a Builder for a graph of n nodes under params.
// params.Nodes is overwritten with n; params.Arcs is filled in by Finish.
func NewBuilder(n int64, params Params) *Builder {
	params.Nodes = n
	b := &Builder{
		params:  params,
		w:       bitio.NewWriter(),
		offsets: make([]int64, 0, n+1),
	}
	b.offsets = append(b.offsets, 0)
	return b
}

// AddNode encodes the successor list of the next node (node b.cur, i.e.
// nodes must be added in order 0..N-1). succ must be strictly increasing
// and every value must lie in [0, N); violations fail fast with
// InvalidInputError rather than producing a corrupt file.
func (b *Builder) AddNode(succ []int64) error {
	u := b.cur
	if u >= b.params.Nodes {
		return &InvalidInputError{Node: u, Reason: "more nodes added than declared node count"}
	}
	if err := validateSuccessors(u, succ, b.params.Nodes); err != nil {
		return err
	}

	ref, refList, depth := 0, []int64(nil), 0
	if u > 0 && len(succ) > 0 {
		ref, refList, depth = chooseReference(b.params, u, succ, b.ring)
	}
	encodeRecord(b.w, b.params, u, succ, ref, refList)

	b.offsets = append(b.offsets, int64(b.w.BitsWritten()))
	b.arcs += int64(len(succ))
	b.pushRing(u, succ, depth)
	b.cur++
	return nil
}

func validateSuccessors(u int64, succ []int64, n int64) error {
	var prev int64 = -1
	for i, v := range succ {
		if v < 0 || v >= n {
			return &InvalidInputError{Node: u, Reason: "successor value out of range [0, N)"}
		}
		if i > 0 && v <= prev {
			return &InvalidInputError{Node: u, Reason: "successor list is not strictly increasing"}
		}
		prev = v
	}
	return nil
}

func (b *Builder) pushRing(u int64, succ []int64, depth int) {
	b.ring = append(b.ring, windowEntry{node: u, succ: succ, depth: depth})
	if len(b.ring) > b.params.WindowSize {
		b.ring = b.ring[1:]
	}
}

// Finish writes basename+".graph", ".offsets", and ".properties". It
// fails with InvalidInputError if fewer than N nodes were added.
func (b *Builder) Finish(basename string) error {
	if b.cur != b.params.Nodes {
		return &InvalidInputError{Node: b.cur, Reason: "fewer nodes added than declared node count"}
	}
	b.params.Arcs = b.arcs

	f, err := createFile(basename + ".graph")
	if err != nil {
		return &IoError{Path: basename + ".graph", Err: err}
	}
	_, writeErr := f.Write(b.w.Bytes())
	closeErr := f.Close()
	if writeErr != nil {
		return &IoError{Path: basename + ".graph", Err: writeErr}
	}
	if closeErr != nil {
		return &IoError{Path: basename + ".graph", Err: closeErr}
	}

	if err := writeOffsetsFile(basename+".offsets", b.offsets); err != nil {
		return err
	}
	return SaveProperties(basename+".properties", b.params)
}
