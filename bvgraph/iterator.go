// Copyright 2026, The bvgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bvgraph

import (
	"errors"

	"github.com/dsnet/bvgraph/internal/bitio"
)

// ErrIterationDone is returned by NodeIterator.Next once every node up to
// N-1 has been visited.
var ErrIterationDone = errors.New("bvgraph: no more nodes")

// NodeIterator walks a Graph node by node, caching the last
// WindowSize+1 decoded successor lists so references within the window
// resolve from cache instead of reseeking through the offset index.
type NodeIterator struct {
	g   *Graph
	cur int64
	r   bitio.BitReader

	ring      map[int64][]int64
	ringOrder []int64
}

func newNodeIterator(g *Graph, from int64, r bitio.BitReader) *NodeIterator {
	return &NodeIterator{
		g:   g,
		cur: from,
		r:   r,
		ring: make(map[int64][]int64, g.params.WindowSize+1),
	}
}

// Next decodes the next node, returning ErrIterationDone once cur reaches
// N.
func (it *NodeIterator) Next() (u int64, succ []int64, err error) {
	if it.cur >= it.g.params.Nodes {
		return 0, nil, ErrIterationDone
	}
	u = it.cur
	resolve := func(r int64) ([]int64, error) {
		if list, ok := it.ring[r]; ok {
			return list, nil
		}
		if it.g.randomAccess {
			return it.g.decodeAt(r, it.g.params.MaxRefCount-1)
		}
		return nil, &CorruptError{Node: u, Reason: "reference points outside the decoded window"}
	}
	succ, err = decodeRecord(it.r, it.g.params, u, resolve)
	if err != nil {
		return 0, nil, err
	}
	it.cache(u, succ)
	it.cur++
	return u, succ, nil
}

func (it *NodeIterator) cache(u int64, succ []int64) {
	it.ring[u] = succ
	it.ringOrder = append(it.ringOrder, u)
	if len(it.ringOrder) > it.g.params.WindowSize+1 {
		evict := it.ringOrder[0]
		it.ringOrder = it.ringOrder[1:]
		delete(it.ring, evict)
	}
}
