// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// Fallback messages shown when the backend gives no message of its own.
const (
	LoginFailedMessage  = "Login failed. Please try again."
	SignupFailedMessage = "Signup failed. Please try again."
)

// Login exchanges credentials for a bearer token. It does not touch
// the session: the caller decides whether to persist the token.
func (c *Client) Login(ctx context.Context, credentials market.Credentials) (market.LoginResponse, error) {
	body, err := c.do(ctx, call{
		operation: "login",
		method:    http.MethodPost,
		path:      "/api/v1/login",
		body:      credentials,
	})
	if err != nil {
		return market.LoginResponse{}, err
	}

	var response market.LoginResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return market.LoginResponse{}, fmt.Errorf("apiclient: decoding login response: %w", err)
	}
	if response.Token == "" {
		return market.LoginResponse{}, &Error{
			Operation:  "login",
			Kind:       KindApplication,
			StatusCode: http.StatusOK,
			Message:    response.Message,
		}
	}
	return response, nil
}

// Signup creates an account. The caller signs in separately.
func (c *Client) Signup(ctx context.Context, request market.SignupRequest) error {
	_, err := c.do(ctx, call{
		operation: "signup",
		method:    http.MethodPost,
		path:      "/api/v1/signup",
		body:      request,
	})
	return err
}

// Logout tells the backend to end the session and then clears the
// local session unconditionally. The token is local state, so a
// failing endpoint must not leave the user signed in; the endpoint
// error is still returned for logging.
func (c *Client) Logout(ctx context.Context) error {
	_, endpointErr := c.do(ctx, call{
		operation:     "logout",
		method:        http.MethodGet,
		path:          "/api/v1/logout",
		authenticated: true,
	})
	return errors.Join(endpointErr, c.session.SignOut())
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (market.Profile, error) {
	body, err := c.do(ctx, call{
		operation:     "get profile",
		method:        http.MethodGet,
		path:          "/api/v1/profile/get",
		authenticated: true,
	})
	if err != nil {
		return market.Profile{}, err
	}
	return decodeEnvelope[market.Profile]("get profile", body)
}

// EditProfile saves profile changes and returns the updated profile.
func (c *Client) EditProfile(ctx context.Context, update market.ProfileUpdate) (market.Profile, error) {
	body, err := c.do(ctx, call{
		operation:     "edit profile",
		method:        http.MethodPut,
		path:          "/api/v1/profile/edit",
		body:          update,
		authenticated: true,
	})
	if err != nil {
		return market.Profile{}, err
	}
	return decodeEnvelope[market.Profile]("edit profile", body)
}
