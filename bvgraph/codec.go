// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"errors"

	"github.com/dsnet/golib/errs"

	"github.com/dsnet/bvgraph/internal/bitio"
	"github.com/dsnet/bvgraph/internal/intcode"
)

// errNonIncreasingMerge signals that the three decoded blocks overlapped or
// were out of order — always wrapped into a CorruptError before it escapes
// decodeRecord.
var errNonIncreasingMerge = errors.New("merged successor values are not strictly increasing")

// interval is a maximal run of consecutive integers in a successor list:
// [left, left+length).
type interval struct {
	left   int64
	length int
}

// refResolver supplies node r's already-decoded successor list to
// decodeRecord when r is used as a reference. Graph and nodeIterator each
// provide one: Graph's goes through the random-access offset index and
// recurses (bounded by MaxRefCount), nodeIterator's reads its ring buffer
// of the last W+1 decoded lists and, on a random-access handle, falls back
// to Graph's path for a node outside that buffer.
type refResolver func(r int64) ([]int64, error)

// encodeRecord writes u's successor-list record — outdegree, reference
// offset, copy-run block, interval block, then residual block — to w.
// ref is the reference offset already chosen by chooseReference (0
// means no reference); refList is S(u-ref), required non-nil when
// ref>0.
func encodeRecord(w bitio.BitWriter, p Params, u int64, succ []int64, ref int, refList []int64) {
	intcode.Write(w, p.Outdegree, p.ZetaK, uint64(len(succ)))
	if len(succ) == 0 {
		return
	}

	intcode.Write(w, p.Reference, p.ZetaK, uint64(ref))

	var copied []int64
	if ref > 0 {
		mask := copyMask(refList, succ)
		writeCopyBlock(w, p, mask)
		copied = selectMasked(refList, mask)
	}

	residualSet := sortedDifference(succ, copied)
	ivals, residuals := extractIntervals(residualSet, p.MinIntervalLength)
	writeIntervals(w, p, u, ivals)
	writeResiduals(w, p, u, residuals)
}

// decodeRecord reconstructs u's successor list from r, the inverse of
// encodeRecord. resolve supplies S(u-ref) on demand and is only called
// when ref>0.
//
// Every fallible step panics through errs.Panic/errs.Assert and is caught
// once at the top by errs.Recover, rather than threading an
// if-err-return-err chain through every block.
func decodeRecord(r bitio.BitReader, p Params, u int64, resolve refResolver) (succ []int64, err error) {
	defer func() {
		if errors.Is(err, bitio.ErrCorrupt) {
			err = &CorruptError{Node: u, Reason: err.Error()}
		}
	}()
	defer errs.Recover(&err)

	d, err := intcode.Read(r, p.Outdegree, p.ZetaK)
	errs.Panic(err)
	if d == 0 {
		return []int64{}, nil
	}
	errs.Assert(d <= uint64(p.Nodes), &CorruptError{Node: u, Reason: "outdegree exceeds node count"})

	refVal, err := intcode.Read(r, p.Reference, p.ZetaK)
	errs.Panic(err)
	errs.Assert(refVal <= uint64(p.WindowSize), &CorruptError{Node: u, Reason: "reference offset exceeds window size"})

	var copied []int64
	if refVal > 0 {
		rnode := u - int64(refVal)
		errs.Assert(rnode >= 0, &CorruptError{Node: u, Reason: "reference points before node 0"})
		refList, err := resolve(rnode)
		errs.Panic(err)
		mask, err := readCopyBlock(r, p, len(refList), u)
		errs.Panic(err)
		copied = selectMasked(refList, mask)
	}

	ivals, err := readIntervals(r, p, u)
	errs.Panic(err)
	ivalCount := 0
	for _, iv := range ivals {
		ivalCount += iv.length
	}

	rho := int(d) - len(copied) - ivalCount
	errs.Assert(rho >= 0, &CorruptError{Node: u, Reason: "interval and copy blocks overrun outdegree"})
	residuals, err := readResiduals(r, p, u, rho)
	errs.Panic(err)

	out, mergeErr := mergeThreeWay(copied, expandIntervals(ivals), residuals)
	if mergeErr != nil {
		errs.Panic(&CorruptError{Node: u, Reason: mergeErr.Error()})
	}
	errs.Assert(len(out) == int(d), &CorruptError{Node: u, Reason: "decoded successor count does not match outdegree"})
	return out, nil
}

// copyMask reports, for each element of refList, whether it also appears
// in succ. Both slices are sorted increasing.
func copyMask(refList, succ []int64) []bool {
	mask := make([]bool, len(refList))
	j := 0
	for i, v := range refList {
		for j < len(succ) && succ[j] < v {
			j++
		}
		if j < len(succ) && succ[j] == v {
			mask[i] = true
		}
	}
	return mask
}

// selectMasked returns the elements of refList whose mask bit is set.
func selectMasked(refList []int64, mask []bool) []int64 {
	out := make([]int64, 0, len(refList))
	for i, v := range refList {
		if mask[i] {
			out = append(out, v)
		}
	}
	return out
}

// sortedDifference returns a minus b; both sorted increasing and b a
// subset of a.
func sortedDifference(a, b []int64) []int64 {
	if len(b) == 0 {
		out := make([]int64, len(a))
		copy(out, a)
		return out
	}
	out := make([]int64, 0, len(a)-len(b))
	j := 0
	for _, v := range a {
		if j < len(b) && b[j] == v {
			j++
			continue
		}
		out = append(out, v)
	}
	return out
}

// maskRuns decomposes mask into run lengths alternating 0-run, 1-run,
// 0-run, ... starting with a (possibly zero-length) 0-run, the encoding
// the copy-run block uses to describe which reference-list elements
// carry over.
func maskRuns(mask []bool) []uint64 {
	if len(mask) == 0 {
		return nil
	}
	var runs []uint64
	expect := false
	count := uint64(0)
	for _, b := range mask {
		if b == expect {
			count++
			continue
		}
		runs = append(runs, count)
		expect = !expect
		count = 1
	}
	return append(runs, count)
}

func writeCopyBlock(w bitio.BitWriter, p Params, mask []bool) {
	runs := maskRuns(mask)
	intcode.Write(w, p.Block, p.ZetaK, uint64(len(runs)))
	for _, run := range runs {
		intcode.Write(w, p.Block, p.ZetaK, run)
	}
}

func readCopyBlock(r bitio.BitReader, p Params, refLen int, u int64) ([]bool, error) {
	mask := make([]bool, refLen)
	if refLen == 0 {
		// Still consume the run count the encoder wrote (always 0 here).
		n, err := intcode.Read(r, p.Block, p.ZetaK)
		if err != nil {
			return nil, err
		}
		if n != 0 {
			return nil, &CorruptError{Node: u, Reason: "copy-run block non-empty against empty reference list"}
		}
		return mask, nil
	}
	numRuns, err := intcode.Read(r, p.Block, p.ZetaK)
	if err != nil {
		return nil, err
	}
	expect := false
	idx := 0
	for i := uint64(0); i < numRuns; i++ {
		run, err := intcode.Read(r, p.Block, p.ZetaK)
		if err != nil {
			return nil, err
		}
		if idx+int(run) > refLen {
			return nil, &CorruptError{Node: u, Reason: "copy-run block overruns reference list"}
		}
		for j := uint64(0); j < run; j++ {
			mask[idx] = expect
			idx++
		}
		expect = !expect
	}
	if idx != refLen {
		return nil, &CorruptError{Node: u, Reason: "copy-run block does not cover reference list"}
	}
	return mask, nil
}

// extractIntervals greedily pulls maximal runs of consecutive integers of
// length >= minLen out of the sorted, duplicate-free values, returning the
// intervals (in increasing order) and the leftover residuals.
func extractIntervals(values []int64, minLen int) ([]interval, []int64) {
	var ivals []interval
	var residuals []int64
	i := 0
	for i < len(values) {
		j := i + 1
		for j < len(values) && values[j] == values[j-1]+1 {
			j++
		}
		runLen := j - i
		if runLen >= minLen {
			ivals = append(ivals, interval{left: values[i], length: runLen})
		} else {
			residuals = append(residuals, values[i:j]...)
		}
		i = j
	}
	return ivals, residuals
}

func expandIntervals(ivals []interval) []int64 {
	var out []int64
	for _, iv := range ivals {
		for k := 0; k < iv.length; k++ {
			out = append(out, iv.left+int64(k))
		}
	}
	return out
}

func writeIntervals(w bitio.BitWriter, p Params, u int64, ivals []interval) {
	intcode.Write(w, p.Interval, p.ZetaK, uint64(len(ivals)))
	var cursorEnd int64
	for j, iv := range ivals {
		if j == 0 {
			intcode.Write(w, p.Interval, p.ZetaK, intcode.FoldSigned(iv.left-u))
		} else {
			intcode.Write(w, p.Interval, p.ZetaK, uint64(iv.left-cursorEnd-1))
		}
		intcode.Write(w, p.Interval, p.ZetaK, uint64(iv.length-p.MinIntervalLength))
		cursorEnd = iv.left + int64(iv.length)
	}
}

func readIntervals(r bitio.BitReader, p Params, u int64) ([]interval, error) {
	count, err := intcode.Read(r, p.Interval, p.ZetaK)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	ivals := make([]interval, count)
	var cursorEnd int64
	for j := range ivals {
		gap, err := intcode.Read(r, p.Interval, p.ZetaK)
		if err != nil {
			return nil, err
		}
		var left int64
		if j == 0 {
			left = u + intcode.UnfoldSigned(gap)
		} else {
			left = cursorEnd + int64(gap) + 1
		}
		lenOff, err := intcode.Read(r, p.Interval, p.ZetaK)
		if err != nil {
			return nil, err
		}
		length := int(lenOff) + p.MinIntervalLength
		if length < p.MinIntervalLength {
			return nil, &CorruptError{Node: u, Reason: "interval length below minimum"}
		}
		ivals[j] = interval{left: left, length: length}
		cursorEnd = left + int64(length)
	}
	return ivals, nil
}

func writeResiduals(w bitio.BitWriter, p Params, u int64, residuals []int64) {
	var prev int64
	for j, v := range residuals {
		if j == 0 {
			intcode.Write(w, p.Residual, p.ZetaK, intcode.FoldSigned(v-u))
		} else {
			intcode.Write(w, p.Residual, p.ZetaK, uint64(v-prev-1))
		}
		prev = v
	}
}

func readResiduals(r bitio.BitReader, p Params, u int64, rho int) ([]int64, error) {
	if rho == 0 {
		return nil, nil
	}
	out := make([]int64, rho)
	for j := range out {
		gap, err := intcode.Read(r, p.Residual, p.ZetaK)
		if err != nil {
			return nil, err
		}
		if j == 0 {
			out[j] = u + intcode.UnfoldSigned(gap)
		} else {
			out[j] = out[j-1] + int64(gap) + 1
		}
	}
	return out, nil
}

// mergeThreeWay merges copied, intervalValues, and residuals — each
// already strictly increasing and pairwise disjoint by construction — into
// a single strictly increasing slice.
func mergeThreeWay(copied, intervalValues, residuals []int64) ([]int64, error) {
	total := len(copied) + len(intervalValues) + len(residuals)
	out := make([]int64, 0, total)
	i, j, k := 0, 0, 0
	var last int64
	haveLast := false
	for i < len(copied) || j < len(intervalValues) || k < len(residuals) {
		var v int64
		switch {
		case i < len(copied) && (j >= len(intervalValues) || copied[i] < intervalValues[j]) && (k >= len(residuals) || copied[i] < residuals[k]):
			v = copied[i]
			i++
		case j < len(intervalValues) && (k >= len(residuals) || intervalValues[j] < residuals[k]):
			v = intervalValues[j]
			j++
		default:
			v = residuals[k]
			k++
		}
		if haveLast && v <= last {
			return nil, errNonIncreasingMerge
		}
		out = append(out, v)
		last, haveLast = v, true
	}
	return out, nil
}
