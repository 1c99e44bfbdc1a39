// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

const (
	// Size is the default digest length in bytes. Longer and shorter
	// outputs are available through [Hasher.Digest] and [Hasher.XOF];
	// every output length is a prefix of every longer one.
	Size = 32

	// KeySize is the exact key length in bytes accepted by [NewKeyed]
	// and [KeyedSum]. Keys of any other length are rejected with
	// [ErrInvalidKeyLength].
	KeySize = 32

	// BlockSize is the message block length in bytes of the
	// compression function.
	BlockSize = 64

	// ChunkSize is the number of input bytes hashed into one leaf of
	// the hash tree. Every chunk except the last is exactly this size.
	ChunkSize = 1024
)

// blocksPerChunk is the number of compression blocks in a full chunk.
const blocksPerChunk = ChunkSize / BlockSize

// Domain flags. Each compression carries the bitwise OR of the flags
// describing its structural role. The values are protocol constants
// from the BLAKE3 specification — changing any of them changes every
// digest.
const (
	flagChunkStart        uint32 = 1 << 0
	flagChunkEnd          uint32 = 1 << 1
	flagParent            uint32 = 1 << 2
	flagRoot              uint32 = 1 << 3
	flagKeyedHash         uint32 = 1 << 4
	flagDeriveKeyContext  uint32 = 1 << 5
	flagDeriveKeyMaterial uint32 = 1 << 6
)

// iv is the BLAKE3 initialization vector: the first eight words of the
// SHA-256 IV. It serves as the chaining key in default hashing mode and
// supplies words 8-11 of every compression state.
var iv = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// msgPermutation maps message word i of the next round to word
// msgPermutation[i] of the current round. Applied between each of the
// seven compression rounds.
var msgPermutation = [16]uint8{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}
