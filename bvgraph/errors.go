// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"fmt"
)

// bvgraphError is the marker method every error type in this package
// implements: a lightweight, comparable error taxonomy instead of a tree
// of wrapped error structs.
type bvgraphError interface {
	error
	bvgraphError()
}

// CorruptError reports that a decoder invariant was violated: an
// outdegree out of range, a reference chain deeper than R, or an
// end-of-stream mid-codeword.
type CorruptError struct {
	Node   int64
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("bvgraph: corrupt record for node %d: %s", e.Node, e.Reason)
}
func (*CorruptError) bvgraphError() {}

// OutOfRangeError reports a random-access query on a node outside
// [0, N), or any random-access query against a sequential-only handle.
type OutOfRangeError struct {
	Node int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bvgraph: node %d out of range", e.Node)
}
func (*OutOfRangeError) bvgraphError() {}

// InvalidInputError reports that the builder's node source produced a
// non-monotone successor list, a duplicate successor, a value >= N, or a
// negative value.
type InvalidInputError struct {
	Node   int64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("bvgraph: invalid input at node %d: %s", e.Node, e.Reason)
}
func (*InvalidInputError) bvgraphError() {}

// UnsupportedVersionError reports that .properties names a codec
// combination this package does not implement, or is missing a required
// key. A missing key is always a hard failure — never an undocumented
// default.
type UnsupportedVersionError struct {
	Reason string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("bvgraph: unsupported or incomplete properties: %s", e.Reason)
}
func (*UnsupportedVersionError) bvgraphError() {}

// IoError wraps an underlying file or memory-map error with context about
// which artifact failed.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("bvgraph: %s: %v", e.Path, e.Err)
}
func (e *IoError) Unwrap() error { return e.Err }
func (*IoError) bvgraphError()   {}
