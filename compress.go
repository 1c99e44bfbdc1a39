// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"encoding/binary"
	"math/bits"
)

// g is the quarter-round mixing function. It updates four state words
// in place using two message words: add, XOR, and right-rotate by the
// fixed distances 16, 12, 8, and 7.
func g(state *[16]uint32, a, b, c, d int, mx, my uint32) {
	state[a] += state[b] + mx
	state[d] = bits.RotateLeft32(state[d]^state[a], -16)
	state[c] += state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], -12)
	state[a] += state[b] + my
	state[d] = bits.RotateLeft32(state[d]^state[a], -8)
	state[c] += state[d]
	state[b] = bits.RotateLeft32(state[b]^state[c], -7)
}

// compress is the BLAKE3 compression function. It maps a chaining
// value, a 16-word message block, the block's 64-bit counter, the
// number of meaningful message bytes, and the domain flags to a full
// 16-word output state.
//
// Callers that propagate the result onward use only the first eight
// output words (the new chaining value); the full state matters only
// for the root node, whose second half seeds extended output.
func compress(chainingValue *[8]uint32, block *[16]uint32, counter uint64, blockLen uint32, flags uint32) [16]uint32 {
	state := [16]uint32{
		chainingValue[0], chainingValue[1], chainingValue[2], chainingValue[3],
		chainingValue[4], chainingValue[5], chainingValue[6], chainingValue[7],
		iv[0], iv[1], iv[2], iv[3],
		uint32(counter), uint32(counter >> 32), blockLen, flags,
	}

	m := *block
	for round := 0; ; round++ {
		// Columns.
		g(&state, 0, 4, 8, 12, m[0], m[1])
		g(&state, 1, 5, 9, 13, m[2], m[3])
		g(&state, 2, 6, 10, 14, m[4], m[5])
		g(&state, 3, 7, 11, 15, m[6], m[7])
		// Diagonals.
		g(&state, 0, 5, 10, 15, m[8], m[9])
		g(&state, 1, 6, 11, 12, m[10], m[11])
		g(&state, 2, 7, 8, 13, m[12], m[13])
		g(&state, 3, 4, 9, 14, m[14], m[15])

		if round == 6 {
			break
		}
		var next [16]uint32
		for i := range next {
			next[i] = m[msgPermutation[i]]
		}
		m = next
	}

	// Feed-forward: the first half absorbs the second, the second half
	// absorbs the input chaining value.
	for i := 0; i < 8; i++ {
		state[i] ^= state[i+8]
		state[i+8] ^= chainingValue[i]
	}
	return state
}

// firstEightWords truncates a full compression output to its chaining
// value.
func firstEightWords(state [16]uint32) (chainingValue [8]uint32) {
	copy(chainingValue[:], state[:8])
	return chainingValue
}

// wordsFromBytes decodes 64 message bytes into 16 little-endian words.
// The input slice must hold at least BlockSize bytes.
func wordsFromBytes(block []byte, words *[16]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(block[4*i:])
	}
}

// keyWordsFromBytes decodes a 32-byte key into the eight little-endian
// words used as the initial chaining value of every keyed compression.
func keyWordsFromBytes(key []byte) (words [8]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	return words
}
