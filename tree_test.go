// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"math/bits"
	"testing"
)

func TestStackDepthTracksPopCount(t *testing.T) {
	// The stack holds exactly one entry per set bit of the chunk
	// count: subtree sizes are strictly decreasing powers of two that
	// sum to the count.
	var stack chainingValueStack
	key := iv

	for chunk := uint64(1); chunk <= 300; chunk++ {
		stack.appendChunk(chunkChainingValue(testInput(ChunkSize), &key, chunk-1, 0), &key, 0)
		if want := bits.OnesCount64(chunk); stack.depth != want {
			t.Fatalf("after %d chunks: stack depth %d, want %d", chunk, stack.depth, want)
		}
		if stack.totalChunks != chunk {
			t.Fatalf("totalChunks = %d, want %d", stack.totalChunks, chunk)
		}
	}
}

func TestRootOutputDoesNotMutateStack(t *testing.T) {
	var stack chainingValueStack
	key := iv
	for chunk := uint64(0); chunk < 5; chunk++ {
		stack.appendChunk(chunkChainingValue(testInput(ChunkSize), &key, chunk, 0), &key, 0)
	}

	depthBefore := stack.depth
	entriesBefore := stack.entries

	last := newChunkState(key, 5, 0)
	last.update([]byte("tail"))
	first := stack.rootOutput(last.output(), &key, 0)
	second := stack.rootOutput(last.output(), &key, 0)

	if stack.depth != depthBefore || stack.entries != entriesBefore {
		t.Error("rootOutput modified the stack")
	}
	if first != second {
		t.Error("repeated rootOutput calls disagree")
	}
}

func TestResetEmptiesStack(t *testing.T) {
	var stack chainingValueStack
	key := iv
	stack.appendChunk(iv, &key, 0)
	stack.appendChunk(iv, &key, 0)
	stack.reset()
	if stack.depth != 0 || stack.totalChunks != 0 {
		t.Errorf("after reset: depth %d, totalChunks %d", stack.depth, stack.totalChunks)
	}
}
