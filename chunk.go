// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

// chunkState hashes one chunk of up to ChunkSize input bytes. It
// buffers the current partial block and compresses a block only once a
// byte beyond it arrives, so the final block — which must carry
// flagChunkEnd — always remains buffered until finalization.
type chunkState struct {
	chainingValue    [8]uint32
	chunkCounter     uint64
	block            [BlockSize]byte
	blockLen         uint8
	blocksCompressed uint8
	flags            uint32
}

func newChunkState(key [8]uint32, chunkCounter uint64, flags uint32) chunkState {
	return chunkState{
		chainingValue: key,
		chunkCounter:  chunkCounter,
		flags:         flags,
	}
}

// length reports the number of chunk bytes consumed so far, including
// bytes still buffered in the partial block.
func (c *chunkState) length() int {
	return BlockSize*int(c.blocksCompressed) + int(c.blockLen)
}

// startFlag returns flagChunkStart for the first block of the chunk
// and zero for every later block.
func (c *chunkState) startFlag() uint32 {
	if c.blocksCompressed == 0 {
		return flagChunkStart
	}
	return 0
}

// update absorbs input into the chunk. The caller must not pass more
// bytes than the chunk has remaining capacity for.
func (c *chunkState) update(input []byte) {
	for len(input) > 0 {
		// A full buffered block plus pending input means the buffered
		// block cannot be the chunk's last: compress it.
		if c.blockLen == BlockSize {
			var blockWords [16]uint32
			wordsFromBytes(c.block[:], &blockWords)
			c.chainingValue = firstEightWords(compress(
				&c.chainingValue,
				&blockWords,
				c.chunkCounter,
				BlockSize,
				c.flags|c.startFlag(),
			))
			c.blocksCompressed++
			// Zero the buffer so a shorter final block is correctly
			// zero-padded when it is loaded as words.
			clear(c.block[:])
			c.blockLen = 0
		}

		n := copy(c.block[c.blockLen:], input)
		c.blockLen += uint8(n)
		input = input[n:]
	}
}

// output returns the pending final compression of the chunk, with
// flagChunkEnd set. An empty chunk degenerates to a single zero-length
// block carrying both flagChunkStart and flagChunkEnd. The receiver is
// not modified, so finalization can be repeated.
func (c *chunkState) output() nodeOutput {
	var blockWords [16]uint32
	wordsFromBytes(c.block[:], &blockWords)
	return nodeOutput{
		inputChainingValue: c.chainingValue,
		blockWords:         blockWords,
		counter:            c.chunkCounter,
		blockLen:           uint32(c.blockLen),
		flags:              c.flags | c.startFlag() | flagChunkEnd,
	}
}

// chunkChainingValue compresses one complete ChunkSize-byte chunk and
// returns its chaining value. This is the scalar leaf path used for
// chunk counts below the batching threshold and as the oracle the wide
// kernels are checked against.
func chunkChainingValue(chunk []byte, key *[8]uint32, chunkCounter uint64, flags uint32) [8]uint32 {
	chainingValue := *key
	var blockWords [16]uint32
	for block := 0; block < blocksPerChunk; block++ {
		wordsFromBytes(chunk[block*BlockSize:], &blockWords)
		blockFlags := flags
		if block == 0 {
			blockFlags |= flagChunkStart
		}
		if block == blocksPerChunk-1 {
			blockFlags |= flagChunkEnd
		}
		chainingValue = firstEightWords(compress(
			&chainingValue,
			&blockWords,
			chunkCounter,
			BlockSize,
			blockFlags,
		))
	}
	return chainingValue
}
