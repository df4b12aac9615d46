// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package market

// Envelope is the backend's standard response wrapper. Success false
// with a Message is an application-level failure even when the HTTP
// status is 2xx.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}
