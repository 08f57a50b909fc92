// Package sparse implements SparseArray, a logical array of length N with
// only k << N occupied positions, backed by a dense values slice plus a
// rank/select index over the occupancy bitmap.
//
// Construction goes through a Builder: the builder holds a mutable zeroed
// bitstore.Builder and a growing values slice, and Finalize freezes both,
// builds the rank and select indexes, and returns an immutable Array. As
// with bitstore.Builder/Store, the open/sealed split is a distinct type, not
// a mutable flag.
package sparse

import (
	"github.com/sakateka/succinct/bitstore"
	"github.com/sakateka/succinct/rank"
	"github.com/sakateka/succinct/selectidx"
)

// Builder accumulates values at strictly increasing positions before
// Finalize produces an immutable Array.
type Builder[T any] struct {
	values []T
	marks  *bitstore.Builder
}

// Create returns a Builder for a sparse array of logical length n.
func Create[T any](n uint64) *Builder[T] {
	return &Builder[T]{
		values: make([]T, 0, n),
		marks:  bitstore.NewBuilder(n),
	}
}

// Append records value at position pos. Callers must supply strictly
// increasing positions across calls (pos < n, pos > every previous pos).
// A pos >= n panics in bitstore.Builder.SetBit; a non-increasing pos is a
// caller bug and is not detected, matching the
// teacher's monotone-append-without-validation style in LPM's block
// propagation path.
func (b *Builder[T]) Append(value T, pos uint64) {
	b.values = append(b.values, value)
	b.marks.SetBit(pos, true)
}

// Finalize freezes the occupancy bitmap, builds the rank and select
// indexes, and returns an immutable Array. The builder must not be reused.
func (b *Builder[T]) Finalize() *Array[T] {
	store := b.marks.Freeze()
	r := rank.Build(store)
	s := selectidx.From(r)
	return &Array[T]{
		values: b.values,
		rank:   r,
		sel:    s,
	}
}

// Array is an immutable sparse array: a dense values slice plus a shared
// rank/select index over the occupancy bitmap marking which of the N
// logical positions are present.
type Array[T any] struct {
	values []T
	rank   *rank.Index
	sel    *selectidx.Index
}

// New builds a sealed Array directly from a values slice and an occupancy
// bitstore, bypassing the Builder when both pieces already exist (e.g. when
// reconstructing from persisted bytes).
func New[T any](values []T, store *bitstore.Store) *Array[T] {
	r := rank.Build(store)
	return &Array[T]{
		values: values,
		rank:   r,
		sel:    selectidx.From(r),
	}
}

// FromParts assembles a sealed Array directly from a values slice and an
// already-built RankIndex, deriving the SelectIndex from it. Used by
// persist when reconstructing from bytes, since the RankIndex is decoded
// once and should not be rebuilt from scratch.
func FromParts[T any](values []T, r *rank.Index) *Array[T] {
	return &Array[T]{
		values: values,
		rank:   r,
		sel:    selectidx.From(r),
	}
}

// FromDenseVec lowers a dense slice of optional values into a sparse Array,
// appending for every present element in order.
func FromDenseVec[T any](values []*T) *Array[T] {
	builder := Create[T](uint64(len(values)))
	for pos, v := range values {
		if v != nil {
			builder.Append(*v, uint64(pos))
		}
	}
	return builder.Finalize()
}

// FromDense lowers an arbitrary sequence of optional values (as produced by
// iterating values and testing presence with ok) into a sparse Array. It is
// the Go analogue of a generator yielding Option<T>: callers pass the
// parallel values/present slices that their iteration already produced.
func FromDense[T any](values []T, present []bool) *Array[T] {
	if len(values) != len(present) {
		panic("sparse: FromDense values/present length mismatch")
	}
	builder := Create[T](uint64(len(values)))
	for pos, ok := range present {
		if ok {
			builder.Append(values[pos], uint64(pos))
		}
	}
	return builder.Finalize()
}

// Size returns N, the logical length of the dense array this sparse array
// represents.
func (a *Array[T]) Size() uint64 {
	return a.rank.Store().Len()
}

// NumElem returns k, the number of present elements.
func (a *Array[T]) NumElem() uint64 {
	return uint64(len(a.values))
}

// NumElemAt returns the number of present elements in [0, i] inclusive.
// Requires i < Size().
func (a *Array[T]) NumElemAt(i uint64) uint64 {
	if i >= a.Size() {
		panic("sparse: NumElemAt index out of range")
	}
	return a.rank.Rank1(i + 1)
}

// GetAtRank returns a pointer to the rth value in the dense values slice
// (0-based), or nil if r >= NumElem().
func (a *Array[T]) GetAtRank(r uint64) *T {
	if r >= uint64(len(a.values)) {
		return nil
	}
	return &a.values[r]
}

// GetAtIndex returns a pointer to the value stored at logical position i,
// or nil if i is out of range or unmarked.
func (a *Array[T]) GetAtIndex(i uint64) *T {
	if i >= a.Size() {
		return nil
	}
	if !a.rank.Store().GetBit(i) {
		return nil
	}
	return a.GetAtRank(a.rank.Rank1(i))
}

// GetIndexOf returns the logical position of the rth present element
// (1-based rank), or nil for r == 0 or r > NumElem().
//
// select1 returns the smallest j with rank1(j) = r, and rank counts bits
// strictly below j, so the set bit itself sits at j-1.
func (a *Array[T]) GetIndexOf(r uint64) *uint64 {
	k := a.NumElem()
	if r == 0 || r > k {
		return nil
	}
	idx := a.sel.Select1(r) - 1
	return &idx
}

// Overhead returns the auxiliary bits used by this array beyond its values:
// the occupancy bitstore plus the select index overhead plus a fixed
// 64-bit constant for the structure's own bookkeeping fields.
func (a *Array[T]) Overhead() uint64 {
	return a.rank.Store().PackedBits() + a.sel.Overhead() + 64
}

// Rank exposes the underlying RankIndex so persist can serialize it without
// Array needing to know the on-disk format itself.
func (a *Array[T]) Rank() *rank.Index {
	return a.rank
}

// Values exposes the dense values slice for serialization.
func (a *Array[T]) Values() []T {
	return a.values
}
