// Package succinct implements a small family of succinct data structures:
// constant-time binary rank, logarithmic-time select, and a sparse array
// built on top of them.
//
// # Overview
//
// The library is layered, leaves first:
//
//	bitstore   - immutable packed bit sequence with windowed bit reads
//	packedvec  - bit-packed vector of fixed-width integers
//	rank       - two-level cumulative popcount index; O(1) rank1/rank0
//	selectidx  - binary search over a rank index; O(log n) select1/select0
//	sparse     - a logical array of length N with only k << N occupied
//	             positions, backed by a values slice and a rank/select index
//	persist    - byte-exact little-endian save/load for rank and sparse
//
// A bitstore.Store is built once, via a Builder, and is immutable
// thereafter. A rank.Index is built over it and shared (by pointer, never
// copied) with a selectidx.Index. A sparse.Array owns a dense values slice
// and shares a rank/select index pair the same way.
//
// # Basic Usage
//
// Build a sparse array from the positions that have a value:
//
//	builder := sparse.Create[string](1000)
//	builder.Append("first", 10)
//	builder.Append("second", 500)
//	arr := builder.Finalize()
//
//	value := arr.GetAtIndex(10) // *string pointing at "first"
//
// Or build a rank/select index directly over a bit sequence:
//
//	store := bitstore.FromBits([]bool{false, true, true, true, false})
//	idx := rank.Build(store)
//	idx.Rank1(3) // 2
//
//	sel := selectidx.From(idx)
//	sel.Select1(2) // 3
//
// # Performance Characteristics
//
//   - Rank1/Rank0: O(1), two packed-vector lookups plus one hardware popcount
//   - Select1/Select0: O(log n), binary search using Rank1/Rank0 as the probe
//   - Auxiliary space: o(n) bits over an n-bit sequence (both packed tables
//     shrink relative to n as n grows)
//
// # Persistence
//
// Both rank.Index and sparse.Array can be serialized to a byte-exact,
// little-endian format via the persist package and reloaded without
// re-deriving the tables bit by bit.
//
// # Thread Safety
//
// Every structure here is immutable after construction and safe to share
// by reference across goroutines for reads. Construction itself (the
// Builder phase) is not safe for concurrent use from multiple goroutines.
package succinct
