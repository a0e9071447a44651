// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import "github.com/dsnet/golib/bits"

// Writer is a growable, non-seekable, MSB-first bit sink used only by the
// sequential builder (bvgraph's compressed-graph writer never seeks
// backwards, so it never needs RandomReader's capabilities). It embeds
// bits.Buffer as a reusable scratch accumulator.
type Writer struct {
	buf bits.Buffer
}

// NewWriter returns an empty Writer ready to accept bits.
func NewWriter() *Writer {
	w := &Writer{}
	w.buf.Reset()
	return w
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit bool) {
	v := uint64(0)
	if bit {
		v = 1
	}
	w.buf.WriteBits(v, 1)
}

// WriteBits writes the low n bits of v, most-significant bit first.
func (w *Writer) WriteBits(v uint64, n uint) {
	if n == 0 {
		return
	}
	w.buf.WriteBits(v, n)
}

// BitsWritten reports the total number of bits written so far.
func (w *Writer) BitsWritten() uint64 {
	return uint64(w.buf.BitsWritten())
}

// Bytes returns the written bits, zero-padded up to the next byte boundary.
// The caller must not rely on the padding bits having any particular value
// beyond "zero".
func (w *Writer) Bytes() []byte {
	w.buf.WriteAligned()
	return w.buf.Bytes()
}

// Reset discards all written bits, preparing the Writer for reuse. The
// builder reuses a single Writer across the life of one compressed-graph
// file rather than allocating per node.
func (w *Writer) Reset() {
	w.buf.Reset()
}
