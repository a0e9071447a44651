// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package eliasfano

import "testing"

func TestEmpty(t *testing.T) {
	s := Build(nil)
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestGetRoundTrip(t *testing.T) {
	values := []uint64{0, 3, 3, 7, 8, 100, 101, 101, 1 << 20, 1 << 30}
	s := Build(values)
	if s.Len() != len(values) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(values))
	}
	for i, want := range values {
		if got := s.Get(i); got != want {
			t.Fatalf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestGetManyValues(t *testing.T) {
	const n = 5000
	values := make([]uint64, n)
	var acc uint64
	for i := range values {
		acc += uint64(i%7) * 3
		values[i] = acc
	}
	s := Build(values)
	for i, want := range values {
		if got := s.Get(i); got != want {
			t.Fatalf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 1, 5, 9, 9, 9, 40, 1000}
	s := Build(values)
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Len() != s.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), s.Len())
	}
	for i, want := range values {
		if v := got.Get(i); v != want {
			t.Fatalf("Get(%d) = %d, want %d", i, v, want)
		}
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	s := Build([]uint64{1, 2, 3})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	s.Get(3)
}
