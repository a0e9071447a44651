// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import "github.com/dsnet/golib/bits"

// RandomReader is a seekable, MSB-first bit source over an already
// materialized byte slice — the heap-allocated copy of .graph that the
// "standard" load mode reads (the "mapped" load mode uses MappedReader
// instead). SeekBit is O(1).
//
// Bit extraction itself is delegated to bits.Get/bits.GetN, driven by an
// arbitrary caller-chosen offset instead of a monotonically advancing
// one.
type RandomReader struct {
	data []byte
	pos  uint64 // absolute bit position
	nbit uint64 // len(data)*8, cached
}

// NewRandomReader wraps data for random-access bit reads starting at bit 0.
func NewRandomReader(data []byte) *RandomReader {
	return &RandomReader{data: data, nbit: uint64(len(data)) * 8}
}

// SeekBit repositions the reader to the given absolute bit offset.
func (r *RandomReader) SeekBit(pos uint64) {
	r.pos = pos
}

// Tell reports the current absolute bit offset.
func (r *RandomReader) Tell() uint64 {
	return r.pos
}

// BitsRead is not meaningful for a random-access reader's absolute
// position, so it reports the current bit offset; callers that need a
// monotone "bits consumed since X" quantity should diff two Tell calls.
func (r *RandomReader) BitsRead() uint64 {
	return r.pos
}

// ReadBit reads a single bit and advances the cursor.
func (r *RandomReader) ReadBit() (bool, error) {
	if r.pos >= r.nbit {
		return false, ErrCorrupt
	}
	v := bits.Get(r.data, int(r.pos))
	r.pos++
	return v, nil
}

// ReadBits reads n (<=64) bits, most-significant bit first, and advances
// the cursor. n may be zero, returning 0.
func (r *RandomReader) ReadBits(n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 64 {
		panic("bitio: ReadBits width exceeds 64")
	}
	if r.pos+uint64(n) > r.nbit {
		return 0, ErrCorrupt
	}
	v := uint64(bits.GetN(r.data, int(n), int(r.pos)))
	r.pos += uint64(n)
	return v, nil
}
