// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import "golang.org/x/sys/cpu"

// vectorLanes is the lane width of the widest vector unit the running
// CPU offers: 8 with 256-bit vectors (AVX2), 4 with 128-bit vectors
// (SSE4.1, NEON), 1 otherwise. It is probed once at package
// initialization and never written afterwards, so concurrent sessions
// read it without synchronization. Tests override it to force each
// kernel through the same inputs as the scalar path.
var vectorLanes = probeVectorLanes()

func probeVectorLanes() int {
	switch {
	case cpu.X86.HasAVX2:
		return 8
	case cpu.X86.HasSSE41:
		return 4
	case cpu.ARM64.HasASIMD:
		return 4
	default:
		return 1
	}
}

// strategy selects how a run of complete chunks is compressed. The
// value is the lane width of the chosen kernel.
type strategy uint8

const (
	// strategyScalar compresses one chunk at a time with the
	// reference compression function.
	strategyScalar strategy = 1

	// strategyWide4 compresses four chunks in lockstep across
	// 4-wide lanes.
	strategyWide4 strategy = 4

	// strategyWide8 compresses eight chunks in lockstep across
	// 8-wide lanes.
	strategyWide8 strategy = 8
)

// chooseStrategy is the batching policy: a pure function of how many
// complete chunks are available and how many lanes the CPU offers. A
// kernel is chosen only when it can be filled completely — a full
// batch is at least lanes*ChunkSize input bytes, which amortizes the
// transpose setup; partially filled lanes would do the same per-chunk
// work as the scalar path plus the transpose overhead.
func chooseStrategy(availableChunks, lanes int) strategy {
	switch {
	case availableChunks >= 8 && lanes >= 8:
		return strategyWide8
	case availableChunks >= 4 && lanes >= 4:
		return strategyWide4
	default:
		return strategyScalar
	}
}
