// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package eliasfano implements a succinct, immutable, monotone sequence of
// non-negative integers with O(1) random access: the in-memory structure
// the offset index is converted into once .offsets has been streamed and
// gap-decoded, so that random-access successor queries can find
// offset(u) without scanning.
//
// The representation follows the classic Elias-Fano scheme: each of the n
// values is split into a high part (stored as a unary-coded bit vector of
// length O(n + universe/2^l)) and a low part (l = floor(log2(universe/n))
// fixed-width bits per value, packed into a flat bit array). Both bit
// arrays are manipulated with the free functions from
// github.com/dsnet/golib/bits (Get/Set/GetN/SetN), reused here
// for the high/low bit vectors.
package eliasfano

import (
	"encoding/binary"
	"errors"
	"math/bits"

	dbits "github.com/dsnet/golib/bits"
)

// selectSampleRate is the number of one-bits between consecutive entries
// of the select inventory: a Select query never has to scan more than
// this many one-bits from its sampled checkpoint.
const selectSampleRate = 64

// Sequence is a succinct monotone list of n values in [0, universe).
// The zero value is an empty Sequence of length 0.
type Sequence struct {
	n         int
	universe  uint64
	l         uint     // low bits per value
	low       []byte   // n*l bits, packed MSB-first
	high      []byte   // unary-coded high bits
	highNBits int      // valid bit length of high
	sample    []uint32 // high-bit position of every selectSampleRate-th one bit
}

// Build constructs a Sequence from values, which MUST be non-decreasing.
// The caller (the offset index loader) is responsible for that invariant
// since it already owns the decoded gap sequence.
func Build(values []uint64) *Sequence {
	n := len(values)
	s := &Sequence{n: n}
	if n == 0 {
		s.universe = 1
		return s
	}
	s.universe = values[n-1] + 1

	avg := s.universe / uint64(n)
	var l uint
	if avg > 1 {
		l = uint(bits.Len64(avg)) - 1
	}
	s.l = l

	lowBytes := (n*int(l) + 7) / 8
	s.low = make([]byte, lowBytes)

	maxBucket := values[n-1] >> l
	s.highNBits = int(maxBucket) + n + 1
	highBytes := (s.highNBits + 7) / 8
	s.high = make([]byte, highBytes)

	for i, v := range values {
		if l > 0 {
			dbits.SetN(s.low, uint(v&lowMask(l)), int(l), i*int(l))
		}
		bucket := int(v >> l)
		dbits.Set(s.high, true, bucket+i)
	}
	s.buildSample()
	return s
}

// Len reports the number of values in the sequence.
func (s *Sequence) Len() int { return s.n }

// Universe reports the exclusive upper bound every value is below.
func (s *Sequence) Universe() uint64 { return s.universe }

// Get returns the i-th value in O(1).
func (s *Sequence) Get(i int) uint64 {
	if i < 0 || i >= s.n {
		panic("eliasfano: index out of range")
	}
	pos := s.selectHigh(i)
	bucket := uint64(pos - i)
	if s.l == 0 {
		return bucket
	}
	low := uint64(dbits.GetN(s.low, int(s.l), i*int(s.l)))
	return (bucket << s.l) | low
}

// selectHigh returns the bit position of the i-th one bit (0-indexed) in
// the high bit vector, using the sampled inventory to bound the scan to at
// most selectSampleRate-1 one bits.
func (s *Sequence) selectHigh(i int) int {
	base := int(s.sample[i/selectSampleRate])
	need := i % selectSampleRate
	if need == 0 {
		return base
	}
	pos := base
	found := 0
	for {
		pos++
		if dbits.Get(s.high, pos) {
			found++
			if found == need {
				return pos
			}
		}
	}
}

// buildSample scans the high bit vector once, recording the position of
// every selectSampleRate-th one bit (0-indexed from 0).
func (s *Sequence) buildSample() {
	s.sample = make([]uint32, 0, s.n/selectSampleRate+1)
	ones := 0
	for pos := 0; pos < s.highNBits; pos++ {
		if dbits.Get(s.high, pos) {
			if ones%selectSampleRate == 0 {
				s.sample = append(s.sample, uint32(pos))
			}
			ones++
		}
	}
	if ones != s.n {
		panic("eliasfano: internal high-bit count mismatch")
	}
}

// MarshalBinary serializes the sequence for the "mapped" load mode's
// on-disk cache file.
func (s *Sequence) MarshalBinary() ([]byte, error) {
	var hdr [40]byte
	binary.BigEndian.PutUint64(hdr[0:8], uint64(s.n))
	binary.BigEndian.PutUint64(hdr[8:16], s.universe)
	binary.BigEndian.PutUint64(hdr[16:24], uint64(s.l))
	binary.BigEndian.PutUint64(hdr[24:32], uint64(s.highNBits))
	binary.BigEndian.PutUint64(hdr[32:40], uint64(len(s.sample)))

	out := make([]byte, 0, len(hdr)+len(s.low)+len(s.high)+4*len(s.sample))
	out = append(out, hdr[:]...)
	out = append(out, s.low...)
	out = append(out, s.high...)
	for _, v := range s.sample {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		out = append(out, b[:]...)
	}
	return out, nil
}

// Unmarshal parses a cache file produced by MarshalBinary. When data comes
// from a memory-mapped file, the returned Sequence's low/high slices
// reference data directly: no copy is made.
func Unmarshal(data []byte) (*Sequence, error) {
	if len(data) < 40 {
		return nil, errors.New("eliasfano: truncated header")
	}
	s := &Sequence{}
	s.n = int(binary.BigEndian.Uint64(data[0:8]))
	s.universe = binary.BigEndian.Uint64(data[8:16])
	s.l = uint(binary.BigEndian.Uint64(data[16:24]))
	s.highNBits = int(binary.BigEndian.Uint64(data[24:32]))
	nSample := int(binary.BigEndian.Uint64(data[32:40]))

	off := 40
	lowBytes := (s.n*int(s.l) + 7) / 8
	if off+lowBytes > len(data) {
		return nil, errors.New("eliasfano: truncated low bits")
	}
	s.low = data[off : off+lowBytes]
	off += lowBytes

	highBytes := (s.highNBits + 7) / 8
	if off+highBytes > len(data) {
		return nil, errors.New("eliasfano: truncated high bits")
	}
	s.high = data[off : off+highBytes]
	off += highBytes

	s.sample = make([]uint32, nSample)
	for i := 0; i < nSample; i++ {
		if off+4 > len(data) {
			return nil, errors.New("eliasfano: truncated select sample")
		}
		s.sample[i] = binary.BigEndian.Uint32(data[off : off+4])
		off += 4
	}
	return s, nil
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
