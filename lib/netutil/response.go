// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP response reads for the marketplace API
// client. Every JSON response body goes through [ReadResponse] so that
// a misbehaving server cannot make the client allocate without limit.
package netutil

import (
	"errors"
	"io"
)

// MaxResponseSize bounds JSON API response reads at 32 MB. The largest
// legitimate response is the full ticket collection, which is far
// smaller.
const MaxResponseSize int64 = 32 << 20

// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// ReadResponse reads a response body up to MaxResponseSize bytes.
// Bodies that exceed the limit fail rather than being silently
// truncated into invalid JSON.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return data, nil
}
