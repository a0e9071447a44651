// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio implements the bit-granular read and write primitives that
// every code in internal/intcode is built from: single bits, fixed-width
// binary, and byte-aligned bulk transfers, all using MSB-first bit order.
//
// Two concrete readers exist because the graph accessor needs two very
// different access patterns: RandomReader seeks to an arbitrary absolute
// bit offset in O(1), which only makes sense over a
// fully materialized or memory-mapped []byte; StreamReader only ever moves
// forward over an io.ByteReader and is cheaper when random access isn't
// needed (the "offline" load mode, or walking a sequential-only handle).
package bitio

import "errors"

// ErrCorrupt is returned when a codeword runs past the end of the
// underlying data before completing.
var ErrCorrupt = errors.New("bitio: truncated bit stream")

// BitWriter is the minimal sink that internal/intcode writes codes to.
type BitWriter interface {
	WriteBit(bit bool)
	WriteBits(v uint64, n uint)
	BitsWritten() uint64
}

// BitReader is the minimal source that internal/intcode reads codes from.
// ReadBit and ReadBits return an error only on truncation; a well-formed
// stream with a correct declared length never triggers one.
type BitReader interface {
	ReadBit() (bool, error)
	ReadBits(n uint) (uint64, error)
	BitsRead() uint64
}

// MaxUnaryLength bounds a single unary codeword to 63 leading bits.
const MaxUnaryLength = 63
