// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

// ByteSource is the minimal random-access byte source a MappedReader needs.
// A plain []byte satisfies it via sliceSource below; so does
// golang.org/x/exp/mmap.ReaderAt, whose Len()/At() methods have exactly
// this shape — so the "mapped" load mode can hand a *mmap.ReaderAt to
// MappedReader directly, with no intermediate copy into a []byte.
type ByteSource interface {
	Len() int
	At(i int) byte
}

// MappedReader is a seekable, MSB-first bit source over any ByteSource.
// It is the random-access reader bvgraph's mapped load mode uses: reading
// a node's record only faults in the underlying file pages it actually
// touches.
type MappedReader struct {
	src  ByteSource
	pos  uint64
	nbit uint64
}

// NewMappedReader wraps src for random-access bit reads starting at bit 0.
func NewMappedReader(src ByteSource) *MappedReader {
	return &MappedReader{src: src, nbit: uint64(src.Len()) * 8}
}

// SeekBit repositions the reader to the given absolute bit offset.
func (r *MappedReader) SeekBit(pos uint64) { r.pos = pos }

// Tell reports the current absolute bit offset.
func (r *MappedReader) Tell() uint64 { return r.pos }

// BitsRead reports the current absolute bit offset (see RandomReader's
// BitsRead doc for why this isn't a "since last reset" count).
func (r *MappedReader) BitsRead() uint64 { return r.pos }

// ReadBit reads a single bit and advances the cursor.
func (r *MappedReader) ReadBit() (bool, error) {
	if r.pos >= r.nbit {
		return false, ErrCorrupt
	}
	b := r.src.At(int(r.pos / 8))
	bit := b>>(7-r.pos%8)&1 != 0
	r.pos++
	return bit, nil
}

// ReadBits reads n (<=64) bits, most-significant bit first.
func (r *MappedReader) ReadBits(n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 64 {
		panic("bitio: ReadBits width exceeds 64")
	}
	if r.pos+uint64(n) > r.nbit {
		return 0, ErrCorrupt
	}
	var v uint64
	for i := uint(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

// sliceSource adapts a plain []byte to ByteSource, for callers that have
// already materialized the whole file. bvgraph's load modes do not use it:
// the "standard" load mode reads its []byte through RandomReader.
type sliceSource []byte

func (s sliceSource) Len() int      { return len(s) }
func (s sliceSource) At(i int) byte { return s[i] }

// NewSliceSource wraps a []byte as a ByteSource.
func NewSliceSource(data []byte) ByteSource { return sliceSource(data) }
