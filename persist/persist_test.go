package persist

import (
	"encoding/binary"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakateka/succinct/bitstore"
	"github.com/sakateka/succinct/rank"
	"github.com/sakateka/succinct/sparse"
)

func uint32Codec() Codec[uint32] {
	return Codec[uint32]{
		Encode: func(v uint32) []byte {
			buf := make([]byte, 4)
			binary.LittleEndian.PutUint32(buf, v)
			return buf
		},
		Decode: func(b []byte) (uint32, error) {
			return binary.LittleEndian.Uint32(b), nil
		},
	}
}

func TestRankIndexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	bits := make([]bool, 2000)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}

	idx := rank.Build(bitstore.FromBits(bits))
	encoded := ToBytes(idx)

	decoded, err := FromBytes(encoded)
	require.NoError(t, err)

	for i := uint64(0); i <= uint64(len(bits)); i++ {
		assert.Equal(t, idx.Rank1(i), decoded.Rank1(i), "mismatch at %d", i)
	}
}

func TestRankIndexSaveLoad(t *testing.T) {
	idx := rank.Build(bitstore.FromBits([]bool{true, false, true, true, false, false, true}))

	path := filepath.Join(t.TempDir(), "rank.bin")
	require.NoError(t, Save(idx, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	for i := uint64(0); i <= 7; i++ {
		assert.Equal(t, idx.Rank1(i), loaded.Rank1(i))
	}
}

func TestFromBytesTruncated(t *testing.T) {
	idx := rank.Build(bitstore.FromBits([]bool{true, false, true}))
	full := ToBytes(idx)

	_, err := FromBytes(full[:len(full)-1])
	assert.Error(t, err)
}

func TestSparseSaveLoad(t *testing.T) {
	builder := sparse.Create[uint32](5)
	builder.Append(1, 1)
	builder.Append(2, 3)
	builder.Append(3, 4)
	arr := builder.Finalize()

	path := filepath.Join(t.TempDir(), "sparse.bin")
	codec := uint32Codec()
	require.NoError(t, SaveSparse(arr, path, codec))

	loaded, err := LoadSparse[uint32](path, codec)
	require.NoError(t, err)

	assert.EqualValues(t, 1, *loaded.GetAtIndex(1))
	assert.EqualValues(t, 1, loaded.NumElemAt(1))
	assert.EqualValues(t, 1, *loaded.GetIndexOf(1))
	assert.EqualValues(t, 3, *loaded.GetIndexOf(2))
	assert.EqualValues(t, 4, *loaded.GetIndexOf(3))
	assert.Nil(t, loaded.GetIndexOf(4))
}
