// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// nodeOutput is a pending compression: the full set of inputs needed
// to run the compression function, captured before deciding whether
// the node is interior (only the chaining value is used) or the root
// (the same inputs are recompressed with flagRoot for each output
// block). flagRoot is applied only inside root expansion, never to a
// value that propagates further up the tree.
type nodeOutput struct {
	inputChainingValue [8]uint32
	blockWords         [16]uint32
	counter            uint64
	blockLen           uint32
	flags              uint32
}

// chainingValue runs the pending compression and truncates the result
// to the eight-word chaining value passed up the tree.
func (o *nodeOutput) chainingValue() [8]uint32 {
	return firstEightWords(compress(
		&o.inputChainingValue,
		&o.blockWords,
		o.counter,
		o.blockLen,
		o.flags,
	))
}

// parentOutput returns the pending compression of an interior tree
// node: the concatenation of two child chaining values compressed
// under the session key with flagParent. The counter of a parent
// compression is always zero.
func parentOutput(left, right [8]uint32, key *[8]uint32, flags uint32) nodeOutput {
	var blockWords [16]uint32
	copy(blockWords[:8], left[:])
	copy(blockWords[8:], right[:])
	return nodeOutput{
		inputChainingValue: *key,
		blockWords:         blockWords,
		counter:            0,
		blockLen:           BlockSize,
		flags:              flags | flagParent,
	}
}

// parentChainingValue merges two child chaining values into their
// parent's chaining value.
func parentChainingValue(left, right [8]uint32, key *[8]uint32, flags uint32) [8]uint32 {
	output := parentOutput(left, right, key, flags)
	return output.chainingValue()
}

// outputBlock produces the 64-byte extended-output block with the
// given block counter by recompressing the root inputs with flagRoot.
func (o *nodeOutput) outputBlock(blockCounter uint64, block *[BlockSize]byte) {
	words := compress(
		&o.inputChainingValue,
		&o.blockWords,
		blockCounter,
		o.blockLen,
		o.flags|flagRoot,
	)
	for i, word := range words {
		binary.LittleEndian.PutUint32(block[4*i:], word)
	}
}

// fillOutput writes len(out) extended-output bytes starting at output
// offset zero.
func (o *nodeOutput) fillOutput(out []byte) {
	var block [BlockSize]byte
	for blockCounter := uint64(0); len(out) > 0; blockCounter++ {
		o.outputBlock(blockCounter, &block)
		n := copy(out, block[:])
		out = out[n:]
	}
}

// An OutputReader reads extended output from a finalized root node.
// The stream is unbounded: Read never returns io.EOF. Every prefix of
// the stream equals the digest of that length, so readers of different
// lengths over the same root agree on their common prefix.
//
// OutputReader implements [io.Reader] and [io.Seeker]. Seeking is
// cheap — the target output block is recomputed directly from the
// root, not by re-reading the stream.
type OutputReader struct {
	node        nodeOutput
	block       [BlockSize]byte
	offset      uint64
	blockLoaded bool
}

// Read fills p with the next len(p) output bytes. It always returns
// len(p) and a nil error.
func (r *OutputReader) Read(p []byte) (int, error) {
	read := len(p)
	for len(p) > 0 {
		blockOffset := int(r.offset % BlockSize)
		if !r.blockLoaded || blockOffset == 0 {
			r.node.outputBlock(r.offset/BlockSize, &r.block)
			r.blockLoaded = true
		}
		n := copy(p, r.block[blockOffset:])
		r.offset += uint64(n)
		p = p[n:]
	}
	return read, nil
}

// Seek repositions the stream. io.SeekEnd is not supported because the
// stream has no end.
func (r *OutputReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(r.offset) + offset
	case io.SeekEnd:
		return 0, errors.New("seeking from the end of an unbounded output stream")
	default:
		return 0, fmt.Errorf("invalid seek whence %d", whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("seeking to negative offset %d", target)
	}
	r.offset = uint64(target)
	r.blockLoaded = false
	return target, nil
}
