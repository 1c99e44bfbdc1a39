// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blake3

import (
	"errors"
	"fmt"
	"hash"
)

// ErrInvalidKeyLength is returned when a keyed-mode constructor is
// given a key whose length is not exactly KeySize bytes. Validation
// happens before any compression work.
var ErrInvalidKeyLength = errors.New("blake3: key length must be 32 bytes")

// ErrInvalidOutputLength is returned when a negative output length is
// requested.
var ErrInvalidOutputLength = errors.New("blake3: output length must not be negative")

// A Hasher is an incremental BLAKE3 hashing session. It buffers the
// in-progress chunk, reduces completed chunks into the hash tree, and
// holds the session key and mode flags, which are fixed for its
// lifetime. The zero value is not usable; construct with [New],
// [NewKeyed], or [NewDeriveKey].
//
// A Hasher owns all of its state exclusively: independent sessions
// never share mutable data and may run on separate goroutines without
// synchronization. A single Hasher must not be used concurrently.
//
// Hasher implements [hash.Hash] with Size 32 and BlockSize 64.
type Hasher struct {
	chunk chunkState
	key   [8]uint32
	stack chainingValueStack
	flags uint32
}

var _ hash.Hash = (*Hasher)(nil)

func newHasher(key [8]uint32, flags uint32) *Hasher {
	return &Hasher{
		chunk: newChunkState(key, 0, flags),
		key:   key,
		flags: flags,
	}
}

// New returns a Hasher for the default (unkeyed) hash function.
func New() *Hasher {
	return newHasher(iv, 0)
}

// NewKeyed returns a Hasher for the keyed hash function (a MAC or
// PRF). The key must be exactly KeySize bytes; any other length is
// rejected with [ErrInvalidKeyLength].
func NewKeyed(key []byte) (*Hasher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("keyed hasher: got %d key bytes: %w", len(key), ErrInvalidKeyLength)
	}
	return newHasher(keyWordsFromBytes(key), flagKeyedHash), nil
}

// NewDeriveKey returns a Hasher for the key derivation function. The
// context string should be hardcoded, globally unique, and
// application-specific. The material written to the returned Hasher is
// the input key material; the digest is the derived key, at any
// requested length.
func NewDeriveKey(context string) *Hasher {
	// Phase one: hash the context string under the default IV to
	// obtain the context key.
	contextHasher := newHasher(iv, flagDeriveKeyContext)
	contextHasher.writeBytes([]byte(context))
	var contextKey [KeySize]byte
	contextRoot := contextHasher.rootOutput()
	contextRoot.fillOutput(contextKey[:])

	// Phase two: the context key becomes the session key for the
	// material.
	return newHasher(keyWordsFromBytes(contextKey[:]), flagDeriveKeyMaterial)
}

// Write absorbs input into the session. It accepts any slicing of the
// input: the digest depends only on the concatenation of all writes.
// The returned error is always nil.
func (h *Hasher) Write(p []byte) (int, error) {
	h.writeBytes(p)
	return len(p), nil
}

func (h *Hasher) writeBytes(p []byte) {
	for len(p) > 0 {
		// The buffered chunk filled up and more input exists, so it
		// is not the final chunk: close it into the tree.
		if h.chunk.length() == ChunkSize {
			chunkOutput := h.chunk.output()
			chainingValue := chunkOutput.chainingValue()
			h.stack.appendChunk(chainingValue, &h.key, h.flags)
			h.chunk = newChunkState(h.key, h.stack.totalChunks, h.flags)
		}

		// With an empty chunk buffer, complete chunks can be hashed
		// straight from p, batched across lanes when enough are
		// available. The final ChunkSize bytes always stay behind: if
		// the stream ends there, that chunk must be finalized as the
		// last chunk, not closed here.
		if h.chunk.length() == 0 {
			if fullChunks := (len(p) - 1) / ChunkSize; fullChunks > 0 {
				counter := h.chunk.chunkCounter
				var batch [maxBatchChunks][8]uint32
				for fullChunks > 0 {
					n := min(fullChunks, maxBatchChunks)
					hashChunks(p[:n*ChunkSize], &h.key, counter, h.flags, batch[:n])
					for i := 0; i < n; i++ {
						h.stack.appendChunk(batch[i], &h.key, h.flags)
					}
					counter += uint64(n)
					p = p[n*ChunkSize:]
					fullChunks -= n
				}
				h.chunk = newChunkState(h.key, counter, h.flags)
				continue
			}
		}

		n := ChunkSize - h.chunk.length()
		if n > len(p) {
			n = len(p)
		}
		h.chunk.update(p[:n])
		p = p[n:]
	}
}

// rootOutput captures the root node's pending compression without
// modifying the session, so finalization is idempotent and hashing can
// continue after a digest is taken.
func (h *Hasher) rootOutput() nodeOutput {
	return h.stack.rootOutput(h.chunk.output(), &h.key, h.flags)
}

// Digest finalizes the data written so far and returns size output
// bytes. It does not modify the session: calling it repeatedly without
// intervening writes returns identical bytes, and writes may continue
// afterwards. Shorter digests are prefixes of longer ones.
func (h *Hasher) Digest(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("digest of %d bytes: %w", size, ErrInvalidOutputLength)
	}
	out := make([]byte, size)
	root := h.rootOutput()
	root.fillOutput(out)
	return out, nil
}

// XOF finalizes the data written so far and returns a reader over the
// unbounded extended output. The reader is independent of the session
// and of any other reader: each starts at offset zero and may be read
// or seeked freely.
func (h *Hasher) XOF() *OutputReader {
	return &OutputReader{node: h.rootOutput()}
}

// Sum appends the default-length digest to b and returns the result,
// satisfying [hash.Hash]. Like [Hasher.Digest] it does not modify the
// session.
func (h *Hasher) Sum(b []byte) []byte {
	var digest [Size]byte
	root := h.rootOutput()
	root.fillOutput(digest[:])
	return append(b, digest[:]...)
}

// Reset returns the session to its just-constructed state, keeping
// the same key and mode. No allocation is performed.
func (h *Hasher) Reset() {
	h.chunk = newChunkState(h.key, 0, h.flags)
	h.stack.reset()
}

// Size returns the default digest length, Size.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the compression function's block length,
// BlockSize.
func (h *Hasher) BlockSize() int { return BlockSize }

// Sum256 returns the default-mode BLAKE3 digest of data.
func Sum256(data []byte) [Size]byte {
	hasher := New()
	hasher.writeBytes(data)
	var digest [Size]byte
	root := hasher.rootOutput()
	root.fillOutput(digest[:])
	return digest
}

// Sum returns the default-mode BLAKE3 digest of data at the requested
// output length.
func Sum(data []byte, size int) ([]byte, error) {
	hasher := New()
	hasher.writeBytes(data)
	return hasher.Digest(size)
}

// KeyedSum256 returns the keyed BLAKE3 digest of data under a KeySize
// byte key.
func KeyedSum256(key, data []byte) ([Size]byte, error) {
	digest, err := KeyedSum(key, data, Size)
	if err != nil {
		return [Size]byte{}, err
	}
	return [Size]byte(digest), nil
}

// KeyedSum returns the keyed BLAKE3 digest of data at the requested
// output length. The key must be exactly KeySize bytes.
func KeyedSum(key, data []byte, size int) ([]byte, error) {
	hasher, err := NewKeyed(key)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("digest of %d bytes: %w", size, ErrInvalidOutputLength)
	}
	hasher.writeBytes(data)
	return hasher.Digest(size)
}

// DeriveKey derives a size-byte key from the given input key material,
// bound to the context string. Different contexts yield independent
// keys from the same material.
func DeriveKey(context string, material []byte, size int) ([]byte, error) {
	hasher := NewDeriveKey(context)
	if size < 0 {
		return nil, fmt.Errorf("derived key of %d bytes: %w", size, ErrInvalidOutputLength)
	}
	hasher.writeBytes(material)
	return hasher.Digest(size)
}
