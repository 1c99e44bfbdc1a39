// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

// chainingValueStack incrementally reduces per-chunk chaining values
// into the root of a left-complete binary tree. At any point the stack
// holds one entry per set bit of totalChunks, ordered from largest
// subtree at the bottom to smallest at the top; the subtree sizes are
// strictly decreasing powers of two summing to totalChunks.
//
// 54 entries cover any input size expressible in a uint64 byte count
// (2^64 bytes is 2^54 chunks).
type chainingValueStack struct {
	entries     [54][8]uint32
	depth       int
	totalChunks uint64
}

// appendChunk pushes the next chunk's chaining value and performs the
// merges it completes: one parent merge per trailing zero bit of the
// new 1-based chunk count. Chunks must be appended in chunk order.
func (s *chainingValueStack) appendChunk(chainingValue [8]uint32, key *[8]uint32, flags uint32) {
	s.totalChunks++
	for total := s.totalChunks; total&1 == 0; total >>= 1 {
		s.depth--
		chainingValue = parentChainingValue(s.entries[s.depth], chainingValue, key, flags)
	}
	s.entries[s.depth] = chainingValue
	s.depth++
}

// rootOutput combines the stack with the pending output of the final
// (possibly partial, possibly empty) chunk into the root node's
// pending compression. Entries fold right to left, so the final chunk
// ends up in the rightmost leaf position. The receiver is not
// modified; finalization can be repeated and hashing can continue
// afterwards.
//
// When no chunks were ever completed the stack is empty and the final
// chunk's own compression is the root.
func (s *chainingValueStack) rootOutput(lastChunk nodeOutput, key *[8]uint32, flags uint32) nodeOutput {
	output := lastChunk
	for i := s.depth - 1; i >= 0; i-- {
		output = parentOutput(s.entries[i], output.chainingValue(), key, flags)
	}
	return output
}

// reset empties the stack for reuse without reallocation.
func (s *chainingValueStack) reset() {
	s.depth = 0
	s.totalChunks = 0
}
