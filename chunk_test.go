// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import "testing"

func TestEmptyChunkOutput(t *testing.T) {
	// A zero-length input is still one valid chunk: a single
	// zero-length block carrying both boundary flags.
	chunk := newChunkState(iv, 0, 0)
	output := chunk.output()

	if output.blockLen != 0 {
		t.Errorf("empty chunk block length = %d, want 0", output.blockLen)
	}
	wantFlags := flagChunkStart | flagChunkEnd
	if output.flags != wantFlags {
		t.Errorf("empty chunk flags = %#x, want %#x", output.flags, wantFlags)
	}
}

func TestChunkStartFlagOnlyOnFirstBlock(t *testing.T) {
	chunk := newChunkState(iv, 0, 0)
	if chunk.startFlag() != flagChunkStart {
		t.Error("fresh chunk should carry the start flag")
	}

	// Crossing into the second block clears the start flag.
	chunk.update(testInput(BlockSize + 1))
	if chunk.startFlag() != 0 {
		t.Error("chunk with a compressed block should not carry the start flag")
	}
	if chunk.blocksCompressed != 1 {
		t.Errorf("blocksCompressed = %d, want 1", chunk.blocksCompressed)
	}
}

func TestChunkStateMatchesFullChunkPath(t *testing.T) {
	// The incremental chunk engine and the full-chunk scalar path must
	// agree on a complete chunk.
	input := testInput(ChunkSize)
	const counter = uint64(42)

	chunk := newChunkState(iv, counter, 0)
	chunk.update(input)
	if chunk.length() != ChunkSize {
		t.Fatalf("chunk length = %d, want %d", chunk.length(), ChunkSize)
	}
	output := chunk.output()
	got := output.chainingValue()

	want := chunkChainingValue(input, &iv, counter, 0)
	if got != want {
		t.Error("incremental chunk state disagrees with the full-chunk path")
	}
}

func TestChunkPartialBlockZeroPadding(t *testing.T) {
	// Writing past a block and then ending mid-block must leave the
	// tail of the buffer zeroed; a stale byte would change the digest.
	chunk := newChunkState(iv, 0, 0)
	chunk.update(testInput(BlockSize))
	chunk.update([]byte{0xff})

	for i := 1; i < BlockSize; i++ {
		if chunk.block[i] != 0 {
			t.Fatalf("block byte %d = %#x after partial refill, want 0", i, chunk.block[i])
		}
	}
}
