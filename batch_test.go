// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"strconv"
	"testing"

	"lukechampine.com/frand"
)

// withVectorLanes runs a test body with the capability probe result
// pinned to a specific lane width, forcing chooseStrategy down one
// path. The probe is immutable in production; this seam exists so the
// wide kernels can be checked against the scalar oracle on any
// machine.
func withVectorLanes(t *testing.T, lanes int, body func(t *testing.T)) {
	t.Helper()
	saved := vectorLanes
	vectorLanes = lanes
	defer func() { vectorLanes = saved }()
	body(t)
}

func TestChooseStrategy(t *testing.T) {
	tests := []struct {
		availableChunks int
		lanes           int
		want            strategy
	}{
		{0, 8, strategyScalar},
		{1, 8, strategyScalar},
		{3, 8, strategyScalar},
		{4, 8, strategyWide4},
		{7, 8, strategyWide4},
		{8, 8, strategyWide8},
		{100, 8, strategyWide8},
		{8, 4, strategyWide4},
		{4, 4, strategyWide4},
		{3, 4, strategyScalar},
		{100, 1, strategyScalar},
	}
	for _, test := range tests {
		got := chooseStrategy(test.availableChunks, test.lanes)
		if got != test.want {
			t.Errorf("chooseStrategy(%d chunks, %d lanes) = %d, want %d",
				test.availableChunks, test.lanes, got, test.want)
		}
	}
}

func TestWideKernelsMatchScalar(t *testing.T) {
	key := keyWordsFromBytes(testInput(KeySize))
	input := frand.Bytes(8 * ChunkSize)
	const counter = uint64(12345)
	const flags = flagKeyedHash

	var want [8][8]uint32
	for i := range want {
		want[i] = chunkChainingValue(input[i*ChunkSize:(i+1)*ChunkSize], &key, counter+uint64(i), flags)
	}

	var wide8 [8][8]uint32
	compressChunks8(input, &key, counter, flags, wide8[:])
	if wide8 != want {
		t.Error("compressChunks8 disagrees with the scalar path")
	}

	var wide4 [4][8]uint32
	compressChunks4(input[:4*ChunkSize], &key, counter, flags, wide4[:])
	for i := range wide4 {
		if wide4[i] != want[i] {
			t.Errorf("compressChunks4 lane %d disagrees with the scalar path", i)
		}
	}
}

func TestWideKernelCounterSplit(t *testing.T) {
	// Lane counters must carry into the high word: start just below
	// the 32-bit boundary so lanes straddle it.
	key := iv
	input := frand.Bytes(8 * ChunkSize)
	counter := uint64(1)<<32 - 3

	var want [8][8]uint32
	for i := range want {
		want[i] = chunkChainingValue(input[i*ChunkSize:(i+1)*ChunkSize], &key, counter+uint64(i), 0)
	}

	var got [8][8]uint32
	compressChunks8(input, &key, counter, 0, got[:])
	if got != want {
		t.Error("compressChunks8 mishandles the 64-bit counter split across lanes")
	}
}

func TestStrategyEquivalence(t *testing.T) {
	// Scalar, 4-wide, and 8-wide paths must produce identical digests
	// for every boundary size in every mode.
	lengths := []int{0, 64, 65, 1023, 1024, 1025, 4095, 4096, 4097,
		8191, 8192, 8193, 12288, 31744, 102400}
	key := testInput(KeySize)

	type result struct {
		plain   [Size]byte
		keyed   [Size]byte
		derived []byte
	}

	results := make(map[int]map[int]result)
	for _, lanes := range []int{1, 4, 8} {
		results[lanes] = make(map[int]result)
		withVectorLanes(t, lanes, func(t *testing.T) {
			for _, length := range lengths {
				input := testInput(length)
				var r result
				r.plain = Sum256(input)
				keyed, err := KeyedSum256(key, input)
				if err != nil {
					t.Fatalf("KeyedSum256: %v", err)
				}
				r.keyed = keyed
				r.derived, err = DeriveKey("bureau.example strategy equivalence", input, Size)
				if err != nil {
					t.Fatalf("DeriveKey: %v", err)
				}
				results[lanes][length] = r
			}
		})
	}

	for _, lanes := range []int{4, 8} {
		for _, length := range lengths {
			got, want := results[lanes][length], results[1][length]
			if got.plain != want.plain {
				t.Errorf("lanes=%d, length %d: default-mode digest differs from scalar", lanes, length)
			}
			if got.keyed != want.keyed {
				t.Errorf("lanes=%d, length %d: keyed digest differs from scalar", lanes, length)
			}
			if string(got.derived) != string(want.derived) {
				t.Errorf("lanes=%d, length %d: derived key differs from scalar", lanes, length)
			}
		}
	}
}

func TestProbeReportsUsableWidth(t *testing.T) {
	switch vectorLanes {
	case 1, 4, 8:
	default:
		t.Errorf("probeVectorLanes() = %d, want 1, 4, or 8", vectorLanes)
	}
}

func BenchmarkHashChunks(b *testing.B) {
	input := testInput(8 * ChunkSize)
	key := iv
	var out [8][8]uint32

	for _, lanes := range []int{1, 4, 8} {
		b.Run(strconv.Itoa(lanes)+"-lanes", func(b *testing.B) {
			saved := vectorLanes
			vectorLanes = lanes
			defer func() { vectorLanes = saved }()
			b.SetBytes(8 * ChunkSize)
			for i := 0; i < b.N; i++ {
				hashChunks(input, &key, 0, 0, out[:])
			}
		})
	}
}
