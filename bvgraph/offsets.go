// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"bufio"
	"os"

	"github.com/dsnet/bvgraph/internal/bitio"
	"github.com/dsnet/bvgraph/internal/eliasfano"
	"github.com/dsnet/bvgraph/internal/intcode"
)

// offsetCacheSuffix names the serialized succinct sequence the "mapped"
// load mode caches alongside the graph, so a second open can skip
// re-streaming and rebuilding the Elias-Fano index from .offsets.
const offsetCacheSuffix = ".offsets.ef"

// writeOffsetsFile writes offsets (length N+1, strictly increasing,
// offsets[0]==0) as a γ-coded gap sequence.
func writeOffsetsFile(path string, offsets []int64) error {
	w := bitio.NewWriter()
	var prev int64
	for i, off := range offsets {
		gap := off
		if i > 0 {
			gap = off - prev
		}
		intcode.WriteGamma(w, uint64(gap))
		prev = off
	}
	f, err := createFile(path)
	if err != nil {
		return &IoError{Path: path, Err: err}
	}
	defer f.Close()
	if _, err := f.Write(w.Bytes()); err != nil {
		return &IoError{Path: path, Err: err}
	}
	return nil
}

// readOffsetsFile streams path and accumulates the N+1 absolute bit
// offsets it encodes.
func readOffsetsFile(path string, n int64) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	defer f.Close()

	sr := bitio.NewStreamReader(bufio.NewReader(f))
	offsets := make([]int64, n+1)
	var acc int64
	for i := range offsets {
		gap, err := intcode.ReadGamma(sr)
		if err != nil {
			return nil, &IoError{Path: path, Err: err}
		}
		acc += int64(gap)
		offsets[i] = acc
	}
	return offsets, nil
}

// buildOffsetIndex converts the accumulated offsets into the succinct
// monotone sequence needed for O(1) random access.
func buildOffsetIndex(offsets []int64) *eliasfano.Sequence {
	values := make([]uint64, len(offsets))
	for i, v := range offsets {
		values[i] = uint64(v)
	}
	return eliasfano.Build(values)
}

// saveOffsetCache serializes idx to path, the cache file a "mapped" open
// reads back on every open after the first.
func saveOffsetCache(path string, idx *eliasfano.Sequence) error {
	data, err := idx.MarshalBinary()
	if err != nil {
		return err
	}
	f, err := createFile(path)
	if err != nil {
		return &IoError{Path: path, Err: err}
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return &IoError{Path: path, Err: err}
	}
	return nil
}

// loadOffsetCache reads back a cache written by saveOffsetCache. Unlike
// the big .graph file, the cache is O(N) rather than O(arcs), so reading
// it fully into memory (rather than memory-mapping it too) is cheap even
// for the largest graphs this engine targets.
func loadOffsetCache(path string) (*eliasfano.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	idx, err := eliasfano.Unmarshal(data)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	return idx, nil
}
