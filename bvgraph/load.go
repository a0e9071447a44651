// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/dsnet/bvgraph/internal/bitio"
	"github.com/dsnet/bvgraph/internal/eliasfano"
)

// LoadMode selects how a Graph's bit source is materialized.
type LoadMode int

const (
	// Standard reads .graph fully into a heap-allocated []byte.
	Standard LoadMode = iota
	// Mapped memory-maps .graph and caches the offset index's succinct
	// sequence alongside it, so repeat opens skip rebuilding it.
	Mapped
	// Offline streams .graph sequentially and never loads .offsets;
	// only node_iterator(0) is available, never random access.
	Offline
)

// createFile truncates-or-creates path for writing, shared by
// SaveProperties, writeOffsetsFile, and saveOffsetCache.
func createFile(path string) (*os.File, error) {
	return os.Create(path)
}

// Load opens the compressed graph at basename (basename + ".graph" /
// ".offsets" / ".properties") under the given mode.
func Load(basename string, mode LoadMode) (*Graph, error) {
	params, err := LoadProperties(basename + ".properties")
	if err != nil {
		return nil, err
	}

	g := &Graph{params: params, basename: basename}

	switch mode {
	case Offline:
		f, err := os.Open(basename + ".graph")
		if err != nil {
			return nil, &IoError{Path: basename + ".graph", Err: err}
		}
		g.streamFile = f
		g.randomAccess = false
		return g, nil

	case Standard:
		data, err := os.ReadFile(basename + ".graph")
		if err != nil {
			return nil, &IoError{Path: basename + ".graph", Err: err}
		}
		g.data = data
		g.newReader = func() seekableBitReader {
			return bitio.NewRandomReader(data)
		}

	case Mapped:
		ra, err := mmap.Open(basename + ".graph")
		if err != nil {
			return nil, &IoError{Path: basename + ".graph", Err: err}
		}
		g.mmapFile = ra
		g.newReader = func() seekableBitReader {
			return bitio.NewMappedReader(ra)
		}

	default:
		return nil, &UnsupportedVersionError{Reason: "unknown load mode"}
	}

	idx, err := loadOrBuildIndex(basename, mode, params.Nodes)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.idx = idx
	g.randomAccess = true
	return g, nil
}

// loadOrBuildIndex provides two index paths: Standard streams .offsets
// and builds the succinct sequence fresh every open; Mapped tries the
// cache file first and falls back to building + persisting it on the
// first open of a basename.
func loadOrBuildIndex(basename string, mode LoadMode, n int64) (*eliasfano.Sequence, error) {
	if mode == Mapped {
		if idx, err := loadOffsetCache(basename + offsetCacheSuffix); err == nil {
			return idx, nil
		}
	}

	offsets, err := readOffsetsFile(basename+".offsets", n)
	if err != nil {
		return nil, err
	}
	idx := buildOffsetIndex(offsets)

	if mode == Mapped {
		if err := saveOffsetCache(basename+offsetCacheSuffix, idx); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// closer is satisfied by both *os.File and *mmap.ReaderAt.
type closer interface {
	Close() error
}

var _ closer = (*os.File)(nil)
var _ closer = (*mmap.ReaderAt)(nil)
var _ io.ReaderAt = (*mmap.ReaderAt)(nil)

// newBufferedStream wraps an *os.File for sequential bit reads.
func newBufferedStream(f *os.File) *bitio.StreamReader {
	return bitio.NewStreamReader(bufio.NewReader(f))
}
