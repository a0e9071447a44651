// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"io"

	"github.com/dsnet/golib/bits"
	"github.com/dsnet/golib/ioutil"
)

// StreamReader is a sequential-only, MSB-first bit source over an
// io.Reader. It never seeks, so it is cheaper than RandomReader when the
// caller only ever walks a graph node-by-node from the start — the
// "offline" load mode, and the fallback used by node_iterator when a
// handle was opened without an offset index.
//
// It embeds bits.Reader as scratch state for the sequential bit cursor.
type StreamReader struct {
	br  bits.Reader
	brd ioutil.ByteReader // lazily wraps rd if it isn't already an io.ByteReader
	cnt uint64            // bits consumed so far
}

// NewStreamReader wraps rd for sequential bit reads.
func NewStreamReader(rd io.Reader) *StreamReader {
	sr := &StreamReader{}
	sr.Reset(rd)
	return sr
}

// Reset rebinds the reader to a new underlying io.Reader.
func (sr *StreamReader) Reset(rd io.Reader) {
	brd, ok := rd.(interface {
		io.Reader
		io.ByteReader
	})
	if !ok {
		sr.brd = ioutil.ByteReader{Reader: rd}
		brd = &sr.brd
	}
	sr.br.Reset(brd)
	sr.cnt = 0
}

// BitsRead reports the total number of bits consumed so far.
func (sr *StreamReader) BitsRead() uint64 {
	return sr.cnt
}

// ReadBit reads a single bit, translating unexpected EOF into ErrCorrupt.
func (sr *StreamReader) ReadBit() (bool, error) {
	v, err := sr.br.ReadBit()
	if err != nil {
		return false, ErrCorrupt
	}
	sr.cnt++
	return v, nil
}

// ReadBits reads n (<=64) bits, most-significant bit first.
func (sr *StreamReader) ReadBits(n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	v, _, err := sr.br.ReadBits(int(n))
	if err != nil {
		return 0, ErrCorrupt
	}
	sr.cnt += uint64(n)
	return uint64(v), nil
}

// Align skips any remaining bits in the current byte, matching a writer's
// trailing WriteAligned padding.
func (sr *StreamReader) Align() {
	if sr.br.ReadAligned() {
		return
	}
}
