// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

// maxBatchChunks is the most chunks hashed in one batch, equal to the
// widest kernel's lane count. Callers size their chaining-value
// scratch space to this.
const maxBatchChunks = 8

// hashChunks computes the chaining values of len(out) consecutive
// complete chunks. input holds the chunks back to back
// (len(out)*ChunkSize bytes); counter is the index of the first chunk.
// Results land in out in chunk order regardless of which kernels ran,
// and are bit-identical across kernels: the wide paths are strictly a
// throughput strategy.
func hashChunks(input []byte, key *[8]uint32, counter uint64, flags uint32, out [][8]uint32) {
	for len(out) > 0 {
		switch chooseStrategy(len(out), vectorLanes) {
		case strategyWide8:
			compressChunks8(input[:8*ChunkSize], key, counter, flags, out[:8])
			input = input[8*ChunkSize:]
			out = out[8:]
			counter += 8
		case strategyWide4:
			compressChunks4(input[:4*ChunkSize], key, counter, flags, out[:4])
			input = input[4*ChunkSize:]
			out = out[4:]
			counter += 4
		default:
			out[0] = chunkChainingValue(input[:ChunkSize], key, counter, flags)
			input = input[ChunkSize:]
			out = out[1:]
			counter++
		}
	}
}
