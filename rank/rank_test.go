package rank

import (
	"math/rand"
	"testing"

	"github.com/sakateka/succinct/bitstore"
)

func TestTinyRank(t *testing.T) {
	store := bitstore.FromBits([]bool{false, true, true, true, false})
	idx := Build(store)

	wantRank1 := []uint64{0, 0, 1, 2, 3, 3}
	wantRank0 := []uint64{0, 1, 1, 1, 1, 2}

	for i := uint64(0); i <= 5; i++ {
		if got := idx.Rank1(i); got != wantRank1[i] {
			t.Errorf("Rank1(%d) = %d, want %d", i, got, wantRank1[i])
		}
		if got := idx.Rank0(i); got != wantRank0[i] {
			t.Errorf("Rank0(%d) = %d, want %d", i, got, wantRank0[i])
		}
	}
}

func TestOffByOne(t *testing.T) {
	store := bitstore.FromBits([]bool{true, false, false, true})
	idx := Build(store)

	if got := idx.Rank1(3); got != 1 {
		t.Errorf("Rank1(3) = %d, want 1", got)
	}
	if got := idx.Rank1(4); got != 2 {
		t.Errorf("Rank1(4) = %d, want 2", got)
	}
}

func TestRankZeroPlusOneIdentity(t *testing.T) {
	for n := uint64(0); n < 2; n++ {
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = true
		}
		store := bitstore.FromBits(bits)
		idx := Build(store)
		if got := idx.Rank1(n); got != n {
			t.Errorf("n=%d: Rank1(n) = %d, want %d", n, got, n)
		}
		if got := idx.Rank0(n); got != 0 {
			t.Errorf("n=%d: Rank0(n) = %d, want 0", n, got)
		}
	}
}

func TestBoundarySizes(t *testing.T) {
	sizes := []uint64{0, 1, 63, 64, 65}
	for _, n := range sizes {
		for _, fixed := range []bool{false, true} {
			bits := make([]bool, n)
			rng := rand.New(rand.NewSource(int64(n)))
			for i := range bits {
				bits[i] = rng.Intn(2) == 1
			}
			store := bitstore.FromBits(bits)

			var idx *Index
			if fixed {
				idx = Build(store, WithFixedBlockSize(64))
			} else {
				idx = Build(store)
			}

			var expected uint64
			for i := uint64(0); i <= n; i++ {
				if got := idx.Rank1(i); got != expected {
					t.Fatalf("n=%d fixed=%v: Rank1(%d) = %d, want %d", n, fixed, i, got, expected)
				}
				if i < n && bits[i] {
					expected++
				}
			}
		}
	}
}

func TestMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bits := make([]bool, 300)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}
	store := bitstore.FromBits(bits)
	idx := Build(store)

	var prev uint64
	for i := uint64(0); i <= uint64(len(bits)); i++ {
		cur := idx.Rank1(i)
		if cur < prev {
			t.Fatalf("rank1 not monotone at %d: %d < %d", i, cur, prev)
		}
		prev = cur
	}
}

func TestAllZerosAndAllOnes(t *testing.T) {
	n := uint64(300)

	zeros := make([]bool, n)
	idxZeros := Build(bitstore.FromBits(zeros))
	if got := idxZeros.Rank1(n); got != 0 {
		t.Errorf("all-zero Rank1(n) = %d, want 0", got)
	}
	if got := idxZeros.Rank0(n); got != n {
		t.Errorf("all-zero Rank0(n) = %d, want %d", got, n)
	}

	ones := make([]bool, n)
	for i := range ones {
		ones[i] = true
	}
	idxOnes := Build(bitstore.FromBits(ones))
	if got := idxOnes.Rank1(n); got != n {
		t.Errorf("all-one Rank1(n) = %d, want %d", got, n)
	}
	if got := idxOnes.Rank0(n); got != 0 {
		t.Errorf("all-one Rank0(n) = %d, want 0", got)
	}
}

func TestRandomisedCrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for size := uint64(10000); size < 10128; size++ {
		bits := make([]bool, size)
		for i := range bits {
			bits[i] = rng.Intn(2) == 1
		}

		expected := make([]uint64, size+1)
		var counter uint64
		for i, v := range bits {
			expected[i] = counter
			if v {
				counter++
			}
		}
		expected[size] = counter

		idx := Build(bitstore.FromBits(bits))
		for pos, want := range expected {
			if got := idx.Rank1(uint64(pos)); got != want {
				t.Fatalf("size=%d pos=%d: Rank1 = %d, want %d", size, pos, got, want)
			}
		}
	}
}

func TestOverheadIsSublinear(t *testing.T) {
	small := Build(bitstore.FromBits(make([]bool, 1<<10)))
	large := Build(bitstore.FromBits(make([]bool, 1<<20)))

	smallRatio := float64(small.Overhead()) / float64(1<<10)
	largeRatio := float64(large.Overhead()) / float64(1<<20)

	if largeRatio >= smallRatio {
		t.Errorf("overhead ratio did not shrink as n grew: small=%f large=%f", smallRatio, largeRatio)
	}
}
