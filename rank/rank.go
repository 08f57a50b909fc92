// Package rank builds a two-level cumulative popcount index over a
// bitstore.Store and answers rank1/rank0 queries in O(1).
//
// The index never copies the underlying store: Build takes a *bitstore.Store
// and keeps a reference to it, the same way the teacher's LPM blocks were
// referenced rather than duplicated across shared and dynamic storage.
//
// The O(1) bound assumes the 64-bit popcount of the block tail is a
// single constant-time operation, as with a hardware popcount instruction.
package rank

import (
	"fmt"
	"math/bits"

	"github.com/robskie/bit"

	"github.com/sakateka/succinct/bitstore"
	"github.com/sakateka/succinct/packedvec"
)

// Index answers rank1/rank0 queries over a bitstore.Store in O(1), backed by
// two packed cumulative-count tables (superblocks and blocks).
type Index struct {
	store *bitstore.Store

	superblocks *packedvec.Vector
	blocks      *packedvec.Vector

	s uint32 // superblock size in bits (fits u16 on disk, kept wider in memory for arithmetic)
	b uint32 // block size in bits (fits u8 on disk)
}

// options configure Build. Only the block-size policy varies today; kept as
// a functional-option set so future policies (e.g. a superblock multiplier)
// don't require changing every call site.
type options struct {
	fixedBlockSize uint64
}

// Option configures a call to Build.
type Option func(*options)

// WithFixedBlockSize selects the alternative fixed block-size policy
// (b = 64) instead of the theoretically optimal b = ceil(ceil(log2 n)/2).
// Both policies satisfy the rank contract; only overhead and constant
// factors differ.
func WithFixedBlockSize(b uint64) Option {
	return func(o *options) {
		o.fixedBlockSize = b
	}
}

// Build constructs a RankIndex over store. It makes one windowed popcount
// per block of b bits rather than one per 64-bit word, so its cost is
// Theta(n/b) popcounts plus Theta(n/b) packed-vector pushes.
func Build(store *bitstore.Store, opts ...Option) *Index {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	n := store.Len()
	l := log2Ceil(n)
	if l < 1 {
		l = 1
	}

	var blockSize uint64
	if o.fixedBlockSize != 0 {
		blockSize = o.fixedBlockSize
	} else {
		blockSize = ceilDiv(l, 2)
		if blockSize < 1 {
			blockSize = 1
		}
	}

	blocksPerSuperblock := ceilDiv(l*l, blockSize)
	if blocksPerSuperblock < 1 {
		blocksPerSuperblock = 1
	}
	superblockSize := blockSize * blocksPerSuperblock

	numSuperblocks := (n / superblockSize) + 1
	numBlocks := blocksPerSuperblock * numSuperblocks

	superblockWidth := log2Ceil(n + 1)
	if superblockWidth < 1 {
		superblockWidth = 1
	}
	blockWidth := log2Ceil(superblockSize)
	if blockWidth < 1 {
		blockWidth = 1
	}

	superblocks := packedvec.New(superblockWidth, numSuperblocks)
	blocks := packedvec.New(blockWidth, numBlocks)

	var cumulative uint64
	var lastSuperblockCumulative uint64
	var position uint64

	for blockIdx := uint64(0); blockIdx < numBlocks; blockIdx++ {
		if blockIdx%blocksPerSuperblock == 0 {
			superblocks.Push(cumulative)
			lastSuperblockCumulative = cumulative
		}
		blocks.Push(cumulative - lastSuperblockCumulative)

		blockLen := blockSize
		if remaining := n - position; remaining < blockLen {
			blockLen = remaining
		}
		cumulative += uint64(popcountBits(store, position, blockLen))
		position += blockLen
	}

	return &Index{
		store:       store,
		superblocks: superblocks,
		blocks:      blocks,
		s:           uint32(superblockSize),
		b:           uint32(blockSize),
	}
}

// popcountBits counts the set bits in store[pos, pos+length), reading up to
// 64 bits at a time via GetBits and delegating the actual count to
// github.com/robskie/bit, mirroring the pack's own rank/select bit vector.
func popcountBits(store *bitstore.Store, pos, length uint64) int {
	count := 0
	for length > 0 {
		chunk := length
		if chunk > 64 {
			chunk = 64
		}
		count += bit.PopCount(store.GetBits(pos, chunk))
		pos += chunk
		length -= chunk
	}
	return count
}

// Store returns the underlying bit store. Exposed so SelectIndex and
// SparseArray can reach the raw bits (e.g. to bound a binary search) without
// duplicating it.
func (idx *Index) Store() *bitstore.Store {
	return idx.store
}

// Superblocks exposes the superblock cumulative-popcount table, read-only
// by convention. Used by persist to emit the on-disk format.
func (idx *Index) Superblocks() *packedvec.Vector {
	return idx.superblocks
}

// Blocks exposes the per-superblock-relative block cumulative-popcount
// table, read-only by convention. Used by persist to emit the on-disk
// format.
func (idx *Index) Blocks() *packedvec.Vector {
	return idx.blocks
}

// SuperblockSize returns s, the superblock size in bits, as stored on disk
// (u16).
func (idx *Index) SuperblockSize() uint16 {
	return uint16(idx.s)
}

// BlockSize returns b, the block size in bits, as stored on disk (u8).
func (idx *Index) BlockSize() uint8 {
	return uint8(idx.b)
}

// FromParts reconstructs a RankIndex from its already-decoded pieces.
// Used by persist.FromBytes; not a general-purpose constructor since it
// trusts its inputs to already satisfy the RankIndex invariants.
func FromParts(store *bitstore.Store, superblocks, blocks *packedvec.Vector, s uint16, b uint8) *Index {
	return &Index{
		store:       store,
		superblocks: superblocks,
		blocks:      blocks,
		s:           uint32(s),
		b:           uint32(b),
	}
}

// Rank1 returns the number of 1-bits in positions [0, i). Requires
// 0 <= i <= store.Len().
func (idx *Index) Rank1(i uint64) uint64 {
	n := idx.store.Len()
	if i > n {
		panic(fmt.Sprintf("rank: Rank1 index %d exceeds length %d", i, n))
	}

	s := uint64(idx.s)
	b := uint64(idx.b)

	superblockPos := i / s
	blockPos := i / b
	offset := i % b
	start := i - offset

	sb := idx.superblocks.Get(superblockPos)
	bb := idx.blocks.Get(blockPos)
	tail := idx.store.GetBits(start, offset)
	tb := uint64(bit.PopCount(tail))

	return sb + bb + tb
}

// Rank0 returns the number of 0-bits in positions [0, i).
func (idx *Index) Rank0(i uint64) uint64 {
	return i - idx.Rank1(i)
}

// Overhead returns the total bits of auxiliary space used by the index
// (superblocks table + blocks table + the s/b fields), excluding the
// underlying bit store.
func (idx *Index) Overhead() uint64 {
	superblockBits := idx.superblocks.Len() * idx.superblocks.Width()
	blockBits := idx.blocks.Len() * idx.blocks.Width()
	const fieldBits = 16 + 8 // s (u16) + b (u8)
	return superblockBits + blockBits + fieldBits
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		panic("rank: division by zero")
	}
	return (a + b - 1) / b
}

// log2Ceil returns ceil(log2(n)), treating n=0 and n=1 as 0.
func log2Ceil(n uint64) uint64 {
	if n <= 1 {
		return 0
	}
	return uint64(bits.Len64(n - 1))
}
