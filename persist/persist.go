// Package persist implements the byte-exact, little-endian on-disk format
// for RankIndex and SparseArray.
//
// The teacher's LPM trie serializes its own binary layout by casting a
// StorageHeader struct directly onto a byte slice with unsafe.Pointer, which
// is fast but ties the format to the host's native struct layout and
// padding. That format isn't portable across fields-with-prefixes the way
// this library needs: every table here carries its own length and width
// prefix so FromBytes can reconstruct tables of unknown size
// without a fixed header. So the encode/decode here is built on
// encoding/binary's explicit little-endian primitives instead of an unsafe
// struct overlay — same "pack a header, then pack the payload" shape as
// StorageHeader, just field-by-field instead of via pointer cast.
package persist

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/sakateka/succinct/bitstore"
	"github.com/sakateka/succinct/packedvec"
	"github.com/sakateka/succinct/rank"
	"github.com/sakateka/succinct/sparse"
)

// Codec supplies the per-element encode/decode pair a caller needs to
// persist a SparseArray[T]; T itself is opaque to this package. Each
// encoded entry is additionally length-prefixed here so Decode never needs
// to guess where one entry ends and the next begins, satisfying the
// "deterministic and length-recoverable" requirement on the element
// encoding without constraining what that encoding looks like.
type Codec[T any] struct {
	Encode func(T) []byte
	Decode func([]byte) (T, error)
}

// SaveSparse writes arr to path as a length-prefixed pair: the rank bundle
// bytes, then a u64 element count followed by length-prefixed encoded
// entries.
func SaveSparse[T any](arr *sparse.Array[T], path string, codec Codec[T]) error {
	data := SparseToBytes(arr, codec)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: failed to save sparse array to %s: %w", path, err)
	}
	return nil
}

// LoadSparse reads a SparseArray[T] previously written by SaveSparse. The
// SelectIndex is rebuilt from the reconstructed RankIndex; it has no
// independent storage of its own.
func LoadSparse[T any](path string, codec Codec[T]) (*sparse.Array[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: failed to open sparse array file %s: %w", path, err)
	}
	arr, err := SparseFromBytes[T](data, codec)
	if err != nil {
		return nil, fmt.Errorf("persist: failed to load sparse array from %s: %w", path, err)
	}
	return arr, nil
}

// SparseToBytes emits a SparseArray as the byte-exact format described in
// persist's package doc: u64 rank-bundle length, rank bundle bytes, u64
// element count, then length-prefixed encoded entries.
func SparseToBytes[T any](arr *sparse.Array[T], codec Codec[T]) []byte {
	rankBytes := ToBytes(arr.Rank())

	var buf []byte
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(rankBytes)))
	buf = append(buf, rankBytes...)

	values := arr.Values()
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(values)))
	for _, v := range values {
		encoded := codec.Encode(v)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(encoded)))
		buf = append(buf, encoded...)
	}
	return buf
}

// SparseFromBytes reconstructs a SparseArray from bytes produced by
// SparseToBytes.
func SparseFromBytes[T any](data []byte, codec Codec[T]) (*sparse.Array[T], error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("persist: decoding sparse array: truncated rank-bundle length, need 8 bytes, got %d", len(data))
	}
	rankLen := binary.LittleEndian.Uint64(data[:8])
	rest := data[8:]
	if uint64(len(rest)) < rankLen {
		return nil, fmt.Errorf("persist: decoding sparse array: truncated rank bundle, need %d bytes, got %d", rankLen, len(rest))
	}

	r, err := FromBytes(rest[:rankLen])
	if err != nil {
		return nil, fmt.Errorf("persist: decoding sparse array rank bundle: %w", err)
	}
	rest = rest[rankLen:]

	if len(rest) < 8 {
		return nil, fmt.Errorf("persist: decoding sparse array: truncated element count, need 8 bytes, got %d", len(rest))
	}
	count := binary.LittleEndian.Uint64(rest[:8])
	rest = rest[8:]

	values := make([]T, 0, count)
	for i := uint64(0); i < count; i++ {
		if len(rest) < 4 {
			return nil, fmt.Errorf("persist: decoding sparse array: truncated entry %d length, need 4 bytes, got %d", i, len(rest))
		}
		entryLen := binary.LittleEndian.Uint32(rest[:4])
		rest = rest[4:]
		if uint64(len(rest)) < uint64(entryLen) {
			return nil, fmt.Errorf("persist: decoding sparse array: truncated entry %d, need %d bytes, got %d", i, entryLen, len(rest))
		}
		v, err := codec.Decode(rest[:entryLen])
		if err != nil {
			return nil, fmt.Errorf("persist: decoding sparse array entry %d: %w", i, err)
		}
		values = append(values, v)
		rest = rest[entryLen:]
	}

	return sparse.FromParts(values, r), nil
}

// ToBytes emits a RankIndex as a byte-exact record: BitStore bytes,
// superblocks bytes, blocks bytes, s (u16 LE), b (u8), per the published
// format.
func ToBytes(idx *rank.Index) []byte {
	var buf []byte
	buf = appendStore(buf, idx.Store())
	buf = appendVector(buf, idx.Superblocks())
	buf = appendVector(buf, idx.Blocks())
	buf = binary.LittleEndian.AppendUint16(buf, idx.SuperblockSize())
	buf = append(buf, idx.BlockSize())
	return buf
}

// FromBytes reconstructs a RankIndex from bytes produced by ToBytes.
// Returns a SerialisationFailure-flavored error on truncated or malformed
// input.
func FromBytes(data []byte) (*rank.Index, error) {
	store, rest, err := readStore(data)
	if err != nil {
		return nil, fmt.Errorf("persist: decoding rank index bit store: %w", err)
	}
	superblocks, rest, err := readVector(rest)
	if err != nil {
		return nil, fmt.Errorf("persist: decoding rank index superblocks: %w", err)
	}
	blocks, rest, err := readVector(rest)
	if err != nil {
		return nil, fmt.Errorf("persist: decoding rank index blocks: %w", err)
	}
	if len(rest) < 3 {
		return nil, fmt.Errorf("persist: decoding rank index: truncated trailer, need 3 bytes, got %d", len(rest))
	}
	s := binary.LittleEndian.Uint16(rest[:2])
	b := rest[2]

	return rank.FromParts(store, superblocks, blocks, s, b), nil
}

// Save writes a RankIndex to path.
func Save(idx *rank.Index, path string) error {
	if err := os.WriteFile(path, ToBytes(idx), 0o644); err != nil {
		return fmt.Errorf("persist: failed to save rank index to %s: %w", path, err)
	}
	return nil
}

// Load reads a RankIndex previously written by Save.
func Load(path string) (*rank.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: failed to open rank index file %s: %w", path, err)
	}
	idx, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("persist: failed to load rank index from %s: %w", path, err)
	}
	return idx, nil
}

func appendStore(buf []byte, s *bitstore.Store) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, s.Len())
	for _, w := range s.Words() {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return buf
}

func readStore(data []byte) (*bitstore.Store, []byte, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("truncated bit store length, need 8 bytes, got %d", len(data))
	}
	n := binary.LittleEndian.Uint64(data[:8])
	rest := data[8:]

	wordCount := (n + 63) / 64
	needed := wordCount * 8
	if uint64(len(rest)) < needed {
		return nil, nil, fmt.Errorf("truncated bit store words, need %d bytes, got %d", needed, len(rest))
	}

	words := make([]uint64, wordCount)
	for i := uint64(0); i < wordCount; i++ {
		words[i] = binary.LittleEndian.Uint64(rest[i*8 : i*8+8])
	}
	return bitstore.FromWords(words, n), rest[needed:], nil
}

func appendVector(buf []byte, v *packedvec.Vector) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, v.Len())
	buf = binary.LittleEndian.AppendUint64(buf, v.Width())
	for _, w := range v.Words() {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return buf
}

func readVector(data []byte) (*packedvec.Vector, []byte, error) {
	if len(data) < 16 {
		return nil, nil, fmt.Errorf("truncated packed vector header, need 16 bytes, got %d", len(data))
	}
	count := binary.LittleEndian.Uint64(data[:8])
	width := binary.LittleEndian.Uint64(data[8:16])
	rest := data[16:]

	bitCount := count * width
	wordCount := (bitCount + 63) / 64
	needed := wordCount * 8
	if uint64(len(rest)) < needed {
		return nil, nil, fmt.Errorf("truncated packed vector words, need %d bytes, got %d", needed, len(rest))
	}

	words := make([]uint64, wordCount)
	for i := uint64(0); i < wordCount; i++ {
		words[i] = binary.LittleEndian.Uint64(rest[i*8 : i*8+8])
	}
	return packedvec.FromWords(words, width, count), rest[needed:], nil
}
