// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package blake3 implements the BLAKE3 cryptographic hash function
// with extendable output.
//
// Bureau uses BLAKE3 for content addressing, keyed domain hashing, and
// key derivation. This package is a self-contained implementation of
// the hash itself: input is split into 1024-byte chunks, each chunk is
// compressed into an 8-word chaining value, and chaining values merge
// pairwise into a binary tree whose root yields the digest. Runs of
// complete chunks are compressed in lockstep across vector lanes (8 or
// 4 chunks at a time, chosen by a one-time CPU capability probe); the
// batched paths are strictly a throughput strategy and produce
// bit-identical digests to the scalar path.
//
// Three modes are available, fixed at construction:
//
//   - [New], [Sum256], [Sum] -- the default hash function
//   - [NewKeyed], [KeyedSum256], [KeyedSum] -- keyed hashing (MAC/PRF)
//     under an exactly 32-byte key
//   - [NewDeriveKey], [DeriveKey] -- key derivation bound to a
//     hardcoded, globally unique context string
//
// Every mode supports output of any length through [Hasher.Digest] and
// [Hasher.XOF]. Shorter outputs are always prefixes of longer outputs
// of the same session, so truncation is safe and cheap.
//
// A [Hasher] owns all of its state: independent sessions may run on
// separate goroutines with no synchronization, while a single session
// must not be shared. [Hasher.Digest] is idempotent and does not
// disturb hashing progress, so intermediate digests of a growing
// stream are free.
//
// This package has no dependencies on other Bureau packages.
package blake3
