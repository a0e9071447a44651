// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import "github.com/dsnet/bvgraph/internal/intcode"

// windowEntry is one slot of the builder's ring buffer of the last W raw
// successor lists.
type windowEntry struct {
	node  int64
	succ  []int64
	depth int // depth(node), the length of node's own reference chain
}

// chooseReference picks the cheapest reference for u among window
// (window holds the up-to-W most recent nodes u-W..u-1, oldest first).
// Among equal-cost candidates the larger ref value (the one further
// back) wins, which this implements simply by scanning window from its
// end, in ascending ref order, and replacing the incumbent on a tie as
// well as on a strict improvement.
//
// It returns ref=0 (with a nil list) when every candidate costs more than
// the no-reference encoding, or when u is 0 (forced, since no candidate
// exists).
func chooseReference(p Params, u int64, succ []int64, window []windowEntry) (ref int, refList []int64, depth int) {
	bestCost := referenceCost(p, u, succ, 0, nil)
	bestRef := 0
	var bestList []int64
	bestDepth := 0

	for i := len(window) - 1; i >= 0; i-- {
		w := window[i]
		dist := int(u - w.node)
		if dist < 1 || dist > p.WindowSize {
			continue
		}
		if w.depth >= p.MaxRefCount {
			continue
		}
		cost := referenceCost(p, u, succ, dist, w.succ)
		if cost <= bestCost {
			bestCost, bestRef, bestList, bestDepth = cost, dist, w.succ, w.depth+1
		}
	}
	return bestRef, bestList, bestDepth
}

// referenceCost reports the exact bit cost of the reference, copy-run,
// interval, and residual blocks when encoding succ against the given
// ref/refList, mirroring
// encodeRecord's write calls with intcode.Len in place of intcode.Write.
// This MUST stay in lockstep with encodeRecord: the reference chosen is
// only the cheapest one if the predicted cost matches the actual write.
// (The builder's offsets themselves come from the writer's bit count.)
func referenceCost(p Params, u int64, succ []int64, ref int, refList []int64) uint64 {
	cost := uint64(intcode.Len(p.Reference, p.ZetaK, uint64(ref)))

	var copied []int64
	if ref > 0 {
		mask := copyMask(refList, succ)
		runs := maskRuns(mask)
		cost += uint64(intcode.Len(p.Block, p.ZetaK, uint64(len(runs))))
		for _, run := range runs {
			cost += uint64(intcode.Len(p.Block, p.ZetaK, run))
		}
		copied = selectMasked(refList, mask)
	}

	residualSet := sortedDifference(succ, copied)
	ivals, residuals := extractIntervals(residualSet, p.MinIntervalLength)
	cost += intervalsCost(p, u, ivals)
	cost += residualsCost(p, u, residuals)
	return cost
}

func intervalsCost(p Params, u int64, ivals []interval) uint64 {
	cost := uint64(intcode.Len(p.Interval, p.ZetaK, uint64(len(ivals))))
	var cursorEnd int64
	for j, iv := range ivals {
		if j == 0 {
			cost += uint64(intcode.Len(p.Interval, p.ZetaK, intcode.FoldSigned(iv.left-u)))
		} else {
			cost += uint64(intcode.Len(p.Interval, p.ZetaK, uint64(iv.left-cursorEnd-1)))
		}
		cost += uint64(intcode.Len(p.Interval, p.ZetaK, uint64(iv.length-p.MinIntervalLength)))
		cursorEnd = iv.left + int64(iv.length)
	}
	return cost
}

func residualsCost(p Params, u int64, residuals []int64) uint64 {
	var cost uint64
	var prev int64
	for j, v := range residuals {
		if j == 0 {
			cost += uint64(intcode.Len(p.Residual, p.ZetaK, intcode.FoldSigned(v-u)))
		} else {
			cost += uint64(intcode.Len(p.Residual, p.ZetaK, uint64(v-prev-1)))
		}
		prev = v
	}
	return cost
}
