// Package selectidx answers select1/select0 queries by binary-searching a
// rank.Index's monotone rank function. It owns no table of its own; all
// state lives in the shared RankIndex.
package selectidx

import "github.com/sakateka/succinct/rank"

// Index shares a *rank.Index and answers select1/select0 in O(log n) via
// binary search over the rank function. Its lifetime is bounded by the
// RankIndex it references; there is no independent storage to free.
type Index struct {
	rank *rank.Index
}

// From wraps an existing RankIndex. The RankIndex is shared, never copied.
func From(r *rank.Index) *Index {
	return &Index{rank: r}
}

// Rank exposes the underlying RankIndex, e.g. so a caller can reach the
// bits and rank1 queries behind this select index.
func (s *Index) Rank() *rank.Index {
	return s.rank
}

// Select1 returns the smallest j in [0, n] with Rank1(j) >= k. For k = 0,
// returns 0. For k greater than the total number of 1-bits, returns n.
func (s *Index) Select1(k uint64) uint64 {
	n := s.rank.Store().Len()
	return bisectLeft(0, n, func(j uint64) int64 {
		return int64(s.rank.Rank1(j)) - int64(k)
	})
}

// Select0 returns the smallest j in [0, n] with Rank0(j) >= k.
func (s *Index) Select0(k uint64) uint64 {
	n := s.rank.Store().Len()
	return bisectLeft(0, n, func(j uint64) int64 {
		return int64(s.rank.Rank0(j)) - int64(k)
	})
}

// Overhead forwards to the underlying RankIndex; SelectIndex holds no
// auxiliary table of its own.
func (s *Index) Overhead() uint64 {
	return s.rank.Overhead()
}

// bisectLeft finds the smallest j in [left, right] with cmp(j) >= 0,
// assuming cmp is non-decreasing over that range. This is the classic
// lower-bound binary search, tie-broken toward the leftmost satisfying
// index.
func bisectLeft(left, right uint64, cmp func(uint64) int64) uint64 {
	for left < right {
		center := left + (right-left)/2
		if cmp(center) < 0 {
			left = center + 1
		} else {
			right = center
		}
	}
	return left
}
