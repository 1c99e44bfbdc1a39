// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"encoding/binary"
	"math/bits"
)

// vec8 holds one state or message word across eight lanes. The wide
// kernels keep the entire compression state transposed this way —
// word-major, lane-minor — so every arithmetic step is a short
// fixed-length lane loop the compiler can turn into one vector
// instruction.
type vec8 [8]uint32

// broadcast8 fills all eight lanes with the same word.
func broadcast8(word uint32) (v vec8) {
	for lane := range v {
		v[lane] = word
	}
	return v
}

// g8 is the quarter-round across eight lanes: the scalar g applied to
// all lanes in lockstep.
func g8(state *[16]vec8, a, b, c, d int, mx, my *vec8) {
	for lane := 0; lane < 8; lane++ {
		sa := state[a][lane] + state[b][lane] + mx[lane]
		sd := bits.RotateLeft32(state[d][lane]^sa, -16)
		sc := state[c][lane] + sd
		sb := bits.RotateLeft32(state[b][lane]^sc, -12)
		sa += sb + my[lane]
		sd = bits.RotateLeft32(sd^sa, -8)
		sc += sd
		sb = bits.RotateLeft32(sb^sc, -7)
		state[a][lane] = sa
		state[b][lane] = sb
		state[c][lane] = sc
		state[d][lane] = sd
	}
}

// compressChunks8 computes the chaining values of eight consecutive
// complete chunks in lockstep. input holds the eight chunks back to
// back; counter is the index of the chunk in lane 0, with lane i
// hashing chunk counter+i. Results are de-transposed into out in
// chunk order and are bit-identical to eight scalar
// chunkChainingValue calls.
func compressChunks8(input []byte, key *[8]uint32, counter uint64, flags uint32, out [][8]uint32) {
	var chainingValues [8]vec8
	for word := range chainingValues {
		chainingValues[word] = broadcast8(key[word])
	}

	var counterLow, counterHigh vec8
	for lane := 0; lane < 8; lane++ {
		laneCounter := counter + uint64(lane)
		counterLow[lane] = uint32(laneCounter)
		counterHigh[lane] = uint32(laneCounter >> 32)
	}

	var m [16]vec8
	for block := 0; block < blocksPerChunk; block++ {
		// Transpose the block's message words: m[w][lane] is word w
		// of lane (lane)'s current block.
		for word := range m {
			for lane := 0; lane < 8; lane++ {
				m[word][lane] = binary.LittleEndian.Uint32(
					input[lane*ChunkSize+block*BlockSize+4*word:])
			}
		}

		blockFlags := flags
		if block == 0 {
			blockFlags |= flagChunkStart
		}
		if block == blocksPerChunk-1 {
			blockFlags |= flagChunkEnd
		}

		state := [16]vec8{
			chainingValues[0], chainingValues[1], chainingValues[2], chainingValues[3],
			chainingValues[4], chainingValues[5], chainingValues[6], chainingValues[7],
			broadcast8(iv[0]), broadcast8(iv[1]), broadcast8(iv[2]), broadcast8(iv[3]),
			counterLow, counterHigh, broadcast8(BlockSize), broadcast8(blockFlags),
		}

		for round := 0; ; round++ {
			g8(&state, 0, 4, 8, 12, &m[0], &m[1])
			g8(&state, 1, 5, 9, 13, &m[2], &m[3])
			g8(&state, 2, 6, 10, 14, &m[4], &m[5])
			g8(&state, 3, 7, 11, 15, &m[6], &m[7])
			g8(&state, 0, 5, 10, 15, &m[8], &m[9])
			g8(&state, 1, 6, 11, 12, &m[10], &m[11])
			g8(&state, 2, 7, 8, 13, &m[12], &m[13])
			g8(&state, 3, 4, 9, 14, &m[14], &m[15])

			if round == 6 {
				break
			}
			var next [16]vec8
			for word := range next {
				next[word] = m[msgPermutation[word]]
			}
			m = next
		}

		// Feed-forward. Only the chaining-value half is needed: no
		// lane of a wide batch can be the root node.
		for word := 0; word < 8; word++ {
			for lane := 0; lane < 8; lane++ {
				chainingValues[word][lane] = state[word][lane] ^ state[word+8][lane]
			}
		}
	}

	for lane := 0; lane < 8; lane++ {
		for word := 0; word < 8; word++ {
			out[lane][word] = chainingValues[word][lane]
		}
	}
}
