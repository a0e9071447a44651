// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package intcode implements the universal integer codes bvgraph encodes
// every field with: unary, γ (gamma), δ (delta), and the parameterized ζ_k
// (zeta) family, plus the minimal-binary code zeta is built from, plus the
// sign-folding bijection ℤ→ℕ used for signed gaps.
//
// This is a thin dispatcher: it holds no state of its own and defers all
// bit-level work to internal/bitio. The Code identifying which universal
// code a given field uses is read once from .properties and fixed for the
// life of a Graph handle.
package intcode

import (
	"math/bits"

	"github.com/dsnet/bvgraph/internal/bitio"
)

// Code identifies a universal code. The zero value is Gamma.
type Code int

const (
	Gamma Code = iota
	Delta
	Zeta
	Unary
)

func (c Code) String() string {
	switch c {
	case Gamma:
		return "GAMMA"
	case Delta:
		return "DELTA"
	case Zeta:
		return "ZETA"
	case Unary:
		return "UNARY"
	default:
		return "UNKNOWN"
	}
}

// Write encodes v with the named code. k is only consulted for Zeta.
func Write(w bitio.BitWriter, code Code, k uint, v uint64) {
	switch code {
	case Gamma:
		WriteGamma(w, v)
	case Delta:
		WriteDelta(w, v)
	case Zeta:
		WriteZeta(w, v, k)
	case Unary:
		WriteUnary(w, v)
	default:
		panic("intcode: unknown code")
	}
}

// Read decodes a value with the named code. k is only consulted for Zeta.
func Read(r bitio.BitReader, code Code, k uint) (uint64, error) {
	switch code {
	case Gamma:
		return ReadGamma(r)
	case Delta:
		return ReadDelta(r)
	case Zeta:
		return ReadZeta(r, k)
	case Unary:
		return ReadUnary(r)
	default:
		panic("intcode: unknown code")
	}
}

// WriteUnary writes v as v zero bits followed by a one bit. v must not
// exceed bitio.MaxUnaryLength; every caller in this module either bounds v
// structurally (γ/δ/ζ exponents never exceed 63 for a uint64 payload) or
// passes a reference offset, which is at most the window size. The window
// size itself is not range-checked; a larger v panics here.
func WriteUnary(w bitio.BitWriter, v uint64) {
	if v > bitio.MaxUnaryLength {
		panic("intcode: unary value exceeds MaxUnaryLength")
	}
	for i := uint64(0); i < v; i++ {
		w.WriteBit(false)
	}
	w.WriteBit(true)
}

// ReadUnary reads a unary codeword, returning bitio.ErrCorrupt if more than
// bitio.MaxUnaryLength zero bits are seen without a terminating one.
func ReadUnary(r bitio.BitReader) (uint64, error) {
	var v uint64
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			return v, nil
		}
		v++
		if v > bitio.MaxUnaryLength {
			return 0, bitio.ErrCorrupt
		}
	}
}

// WriteGamma writes n (n>=0) as unary(floor(log2(n+1))) followed by the
// low floor(log2(n+1)) bits of n+1.
func WriteGamma(w bitio.BitWriter, n uint64) {
	m := n + 1
	length := bits.Len64(m) - 1
	WriteUnary(w, uint64(length))
	if length > 0 {
		w.WriteBits(m&lowMask(uint(length)), uint(length))
	}
}

// ReadGamma is the inverse of WriteGamma.
func ReadGamma(r bitio.BitReader) (uint64, error) {
	length, err := ReadUnary(r)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return 0, nil
	}
	rest, err := r.ReadBits(uint(length))
	if err != nil {
		return 0, err
	}
	m := (uint64(1) << length) | rest
	return m - 1, nil
}

// WriteDelta writes n (n>=0) as gamma(floor(log2(n+1))) followed by the low
// floor(log2(n+1)) bits of n+1.
func WriteDelta(w bitio.BitWriter, n uint64) {
	m := n + 1
	length := bits.Len64(m) - 1
	WriteGamma(w, uint64(length))
	if length > 0 {
		w.WriteBits(m&lowMask(uint(length)), uint(length))
	}
}

// ReadDelta is the inverse of WriteDelta.
func ReadDelta(r bitio.BitReader) (uint64, error) {
	length, err := ReadGamma(r)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return 0, nil
	}
	rest, err := r.ReadBits(uint(length))
	if err != nil {
		return 0, err
	}
	m := (uint64(1) << length) | rest
	return m - 1, nil
}

// WriteZeta writes n (n>=0) using the zeta_k code: unary(h) followed by
// n+1-2^(hk) in minimal binary over [0, 2^((h+1)k)-2^(hk)), where
// h = floor(log2(n+1)/k). k must be in [1,7].
func WriteZeta(w bitio.BitWriter, n uint64, k uint) {
	if k < 1 || k > 7 {
		panic("intcode: zeta k out of range")
	}
	m := n + 1
	length := uint(bits.Len64(m) - 1)
	h := length / k
	WriteUnary(w, uint64(h))
	lo := uint64(1) << (k * h)
	hi := uint64(1) << (k * (h + 1))
	WriteMinimalBinary(w, m-lo, hi-lo)
}

// ReadZeta is the inverse of WriteZeta.
func ReadZeta(r bitio.BitReader, k uint) (uint64, error) {
	if k < 1 || k > 7 {
		panic("intcode: zeta k out of range")
	}
	h, err := ReadUnary(r)
	if err != nil {
		return 0, err
	}
	lo := uint64(1) << (k * uint(h))
	hi := uint64(1) << (k * uint(h+1))
	v, err := ReadMinimalBinary(r, hi-lo)
	if err != nil {
		return 0, err
	}
	return v + lo - 1, nil
}

// WriteMinimalBinary writes v (0<=v<z) using the length-optimal prefix code
// for a uniform distribution over [0,z): s=ceil(log2 z), t=2^s-z; v<t is
// written in s-1 bits, otherwise v+t is written in s bits.
func WriteMinimalBinary(w bitio.BitWriter, v, z uint64) {
	if z <= 1 {
		return
	}
	s := ceilLog2(z)
	t := (uint64(1) << s) - z
	if v < t {
		w.WriteBits(v, s-1)
	} else {
		w.WriteBits(v+t, s)
	}
}

// ReadMinimalBinary is the inverse of WriteMinimalBinary.
func ReadMinimalBinary(r bitio.BitReader, z uint64) (uint64, error) {
	if z <= 1 {
		return 0, nil
	}
	s := ceilLog2(z)
	t := (uint64(1) << s) - z
	x, err := r.ReadBits(s - 1)
	if err != nil {
		return 0, err
	}
	if x < t {
		return x, nil
	}
	b, err := r.ReadBits(1)
	if err != nil {
		return 0, err
	}
	return ((x << 1) | b) - t, nil
}

// Len reports the bit length Write(code, k, v) would produce, without
// writing anything. The builder's reference cost model (bvgraph's
// reference.go) calls this for every candidate window position, so it must
// match Write exactly.
func Len(code Code, k uint, v uint64) uint {
	switch code {
	case Gamma:
		return LenGamma(v)
	case Delta:
		return LenDelta(v)
	case Zeta:
		return LenZeta(v, k)
	case Unary:
		return LenUnary(v)
	default:
		panic("intcode: unknown code")
	}
}

// LenUnary reports the bit length of WriteUnary(v).
func LenUnary(v uint64) uint { return uint(v) + 1 }

// LenGamma reports the bit length of WriteGamma(n).
func LenGamma(n uint64) uint {
	length := uint(bits.Len64(n+1) - 1)
	return 2*length + 1
}

// LenDelta reports the bit length of WriteDelta(n).
func LenDelta(n uint64) uint {
	length := uint(bits.Len64(n+1) - 1)
	return LenGamma(uint64(length)) + length
}

// LenZeta reports the bit length of WriteZeta(n, k).
func LenZeta(n uint64, k uint) uint {
	m := n + 1
	length := uint(bits.Len64(m) - 1)
	h := length / k
	lo := uint64(1) << (k * h)
	hi := uint64(1) << (k * (h + 1))
	return LenUnary(h) + LenMinimalBinaryValue(m-lo, hi-lo)
}

// LenMinimalBinaryValue reports the exact bit length WriteMinimalBinary(v,
// z) uses for a specific v.
func LenMinimalBinaryValue(v, z uint64) uint {
	if z <= 1 {
		return 0
	}
	s := ceilLog2(z)
	t := (uint64(1) << s) - z
	if v < t {
		return s - 1
	}
	return s
}

// FoldSigned maps a signed gap to a non-negative integer: n>=0 becomes 2n,
// n<0 becomes -2n-1.
func FoldSigned(n int64) uint64 {
	if n >= 0 {
		return uint64(n) * 2
	}
	return uint64(-n)*2 - 1
}

// UnfoldSigned is the inverse of FoldSigned.
func UnfoldSigned(v uint64) int64 {
	if v%2 == 0 {
		return int64(v / 2)
	}
	return -int64((v + 1) / 2)
}

func ceilLog2(z uint64) uint {
	if z <= 1 {
		return 0
	}
	return uint(bits.Len64(z - 1))
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
