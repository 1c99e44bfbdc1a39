// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"encoding/binary"
	"math/bits"
)

// vec4 is the 4-lane counterpart of vec8, sized for 128-bit vector
// units. The kernel below mirrors compressChunks8 at half the width;
// the two are kept as separate concrete functions because each lane
// loop must have a fixed length for the compiler to vectorize it.
type vec4 [4]uint32

func broadcast4(word uint32) (v vec4) {
	for lane := range v {
		v[lane] = word
	}
	return v
}

// g4 is the quarter-round across four lanes.
func g4(state *[16]vec4, a, b, c, d int, mx, my *vec4) {
	for lane := 0; lane < 4; lane++ {
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

// compressChunks4 computes the chaining values of four consecutive
// complete chunks in lockstep. Semantics match compressChunks8 with
// four lanes.
func compressChunks4(input []byte, key *[8]uint32, counter uint64, flags uint32, out [][8]uint32) {
	var chainingValues [8]vec4
	for word := range chainingValues {
		chainingValues[word] = broadcast4(key[word])
	}

	var counterLow, counterHigh vec4
	for lane := 0; lane < 4; lane++ {
		laneCounter := counter + uint64(lane)
		counterLow[lane] = uint32(laneCounter)
		counterHigh[lane] = uint32(laneCounter >> 32)
	}

	var m [16]vec4
	for block := 0; block < blocksPerChunk; block++ {
		for word := range m {
			for lane := 0; lane < 4; lane++ {
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

		state := [16]vec4{
			chainingValues[0], chainingValues[1], chainingValues[2], chainingValues[3],
			chainingValues[4], chainingValues[5], chainingValues[6], chainingValues[7],
			broadcast4(iv[0]), broadcast4(iv[1]), broadcast4(iv[2]), broadcast4(iv[3]),
			counterLow, counterHigh, broadcast4(BlockSize), broadcast4(blockFlags),
		}

		for round := 0; ; round++ {
			g4(&state, 0, 4, 8, 12, &m[0], &m[1])
			g4(&state, 1, 5, 9, 13, &m[2], &m[3])
			g4(&state, 2, 6, 10, 14, &m[4], &m[5])
			g4(&state, 3, 7, 11, 15, &m[6], &m[7])
			g4(&state, 0, 5, 10, 15, &m[8], &m[9])
			g4(&state, 1, 6, 11, 12, &m[10], &m[11])
			g4(&state, 2, 7, 8, 13, &m[12], &m[13])
			g4(&state, 3, 4, 9, 14, &m[14], &m[15])

			if round == 6 {
				break
			}
			var next [16]vec4
			for word := range next {
				next[word] = m[msgPermutation[word]]
			}
			m = next
		}

		for word := 0; word < 8; word++ {
			for lane := 0; lane < 4; lane++ {
				chainingValues[word][lane] = state[word][lane] ^ state[word+8][lane]
			}
		}
	}

	for lane := 0; lane < 4; lane++ {
		for word := 0; word < 8; word++ {
			out[lane][word] = chainingValues[word][lane]
		}
	}
}
