// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps passwords and bearer tokens out of swappable,
// garbage-collected memory for as long as the client controls them.
//
// A [Buffer] is an mmap(MAP_ANONYMOUS) region outside the Go heap,
// locked with mlock and marked MADV_DONTDUMP. Passwords typed at the
// login prompt or read from a password file land in a Buffer and are
// converted to a string only at the moment the login request body is
// built. [Zero] wipes heap copies (session file bytes, request bodies)
// once they are no longer needed.
package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrEmpty is returned when a secret source contains nothing but
// whitespace.
var ErrEmpty = errors.New("secret is empty")

// Buffer holds one secret in locked memory. Close wipes and releases
// it; any read after Close panics. A Buffer must not be copied.
type Buffer struct {
	mu     sync.Mutex
	region []byte
	closed bool
}

// NewFromBytes moves source into a new Buffer and wipes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, ErrEmpty
	}

	region, err := unix.Mmap(-1, 0, len(source), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	// Not every kernel honors MADV_DONTDUMP; the region is still
	// locked against swap without it.
	_ = unix.Madvise(region, unix.MADV_DONTDUMP)

	copy(region, source)
	Zero(source)
	return &Buffer{region: region}, nil
}

// Bytes returns the secret in place. The slice aliases locked memory
// and is invalid after Close.
func (buffer *Buffer) Bytes() []byte {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	if buffer.closed {
		panic("secret: read from closed buffer")
	}
	return buffer.region
}

// String returns a heap copy of the secret, for APIs that only take
// strings (JSON request bodies).
func (buffer *Buffer) String() string {
	return string(buffer.Bytes())
}

// Len returns the secret's length in bytes, or 0 after Close.
func (buffer *Buffer) Len() int {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return len(buffer.region)
}

// Close wipes the secret and releases the locked region. Calling
// Close more than once is harmless.
func (buffer *Buffer) Close() error {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	if buffer.closed {
		return nil
	}
	buffer.closed = true

	Zero(buffer.region)
	unlockErr := unix.Munlock(buffer.region)
	unmapErr := unix.Munmap(buffer.region)
	buffer.region = nil
	if unlockErr != nil {
		return fmt.Errorf("secret: munlock: %w", unlockErr)
	}
	if unmapErr != nil {
		return fmt.Errorf("secret: munmap: %w", unmapErr)
	}
	return nil
}

// Zero overwrites data with zero bytes.
func Zero(data []byte) {
	clear(data)
}
