// Copyright 2024-2026 The Fathom Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package interval provides lane assignment for closed intervals: a
// first-fit greedy coloring that places each interval on the lowest lane
// where it overlaps nothing already placed there.
//
// Insertion order matters and is part of the contract: callers that need a
// stable layout must insert in a deterministic order.
package interval

import (
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Entry is an interval stored in a [Lanes], along with its value.
type Entry[K Endpoint, V any] struct {
	Start, End K // The interval range, inclusive.
	Value      V
}

// Contains returns whether an entry contains a given point.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point <= e.End
}

// Lanes is a collection of closed intervals partitioned into lanes, such
// that the intervals within one lane are pairwise disjoint.
//
// Inserting n intervals is worst-case O(n^2 log n), but the number of
// lanes in practice is the maximum overlap depth, which is tiny.
type Lanes[K Endpoint, V any] struct {
	// Keys in each tree are the ends of the intervals it holds.
	lanes []*btree.Map[K, *Entry[K, V]]
}

// Len returns the number of lanes allocated so far.
func (l *Lanes[K, V]) Len() int {
	return len(l.lanes)
}

// Clear resets this collection without discarding allocated memory
// (where possible).
func (l *Lanes[K, V]) Clear() {
	for _, lane := range l.lanes {
		lane.Clear()
	}
	l.lanes = l.lanes[:0]
}

// Assign places [start, end] on the lowest lane where it overlaps no
// interval already present, allocating a new lane if none fits, and
// returns that lane's index.
func (l *Lanes[K, V]) Assign(start, end K, value V) int {
	idx := -1
	for i, lane := range l.lanes {
		// The candidate conflicts with a lane iff some interval [c, d] in
		// it has c <= end and start <= d. Seeking on start finds the
		// interval with the smallest d >= start; it is the only one that
		// can conflict.
		iter := lane.Iter()
		if !iter.Seek(start) || end < iter.Value().Start {
			idx = i
			break
		}
	}

	if idx == -1 {
		idx = len(l.lanes)
		l.lanes = append(l.lanes, new(btree.Map[K, *Entry[K, V]]))
	}

	l.lanes[idx].Set(end, &Entry[K, V]{Start: start, End: end, Value: value})
	return idx
}

// Lane returns an iterator over the intervals in lane i, in ascending
// order.
func (l *Lanes[K, V]) Lane(i int) iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		if i >= len(l.lanes) {
			return
		}
		l.lanes[i].Scan(func(_ K, value *Entry[K, V]) bool { return yield(*value) })
	}
}
