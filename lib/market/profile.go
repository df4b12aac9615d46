// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Profile is the signed-in user's account record.
type Profile struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Gender        Gender    `json:"gender"`
	ProfileImage  string    `json:"profileImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	TicketsSold   int       `json:"ticketsSold"`
	TicketsBought int       `json:"ticketsBought"`
}

// MemberSince returns the account creation month ("March 2024"), or ""
// when the backend did not report one.
func (profile Profile) MemberSince() string {
	if profile.CreatedAt.IsZero() {
		return ""
	}
	return profile.CreatedAt.Format("January 2006")
}

// Update returns a [ProfileUpdate] pre-filled from the profile, for
// edit forms.
func (profile Profile) Update() ProfileUpdate {
	return ProfileUpdate{
		Name:         profile.Name,
		Phone:        profile.Phone,
		Gender:       profile.Gender,
		ProfileImage: profile.ProfileImage,
	}
}

// ProfileUpdate is the payload of an edit-profile request. Email is
// the account identity and cannot be changed.
type ProfileUpdate struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Gender       Gender `json:"gender"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Validate checks the update before it is sent.
func (update ProfileUpdate) Validate() error {
	var problems []error
	if strings.TrimSpace(update.Name) == "" {
		problems = append(problems, errors.New("name is required"))
	}
	if update.Gender != "" {
		if _, err := ParseGender(string(update.Gender)); err != nil {
			problems = append(problems, err)
		}
	}
	return errors.Join(problems...)
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both fields.
func (credentials Credentials) Validate() error {
	var problems []error
	if strings.TrimSpace(credentials.Email) == "" {
		problems = append(problems, errors.New("email is required"))
	}
	if credentials.Password == "" {
		problems = append(problems, errors.New("password is required"))
	}
	return errors.Join(problems...)
}

// SignupRequest is the account creation body. The backend checks
// ConfirmPassword too, but mismatches are rejected locally first.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Gender          Gender `json:"gender"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmpassword"`
}

// ErrPasswordMismatch is returned by [SignupRequest.Validate] when the
// two password fields differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Validate checks required fields, the email address, the gender
// value, and that both passwords match.
func (request SignupRequest) Validate() error {
	var problems []error
	if strings.TrimSpace(request.Name) == "" {
		problems = append(problems, errors.New("name is required"))
	}
	if strings.TrimSpace(request.Email) == "" {
		problems = append(problems, errors.New("email is required"))
	} else if _, err := mail.ParseAddress(request.Email); err != nil {
		problems = append(problems, fmt.Errorf("invalid email %q", request.Email))
	}
	if strings.TrimSpace(request.Phone) == "" {
		problems = append(problems, errors.New("phone is required"))
	}
	if _, err := ParseGender(string(request.Gender)); err != nil {
		problems = append(problems, err)
	}
	if request.Password == "" {
		problems = append(problems, errors.New("password is required"))
	} else if request.Password != request.ConfirmPassword {
		problems = append(problems, ErrPasswordMismatch)
	}
	return errors.Join(problems...)
}

// LoginResponse is the body of a successful login. The login endpoint
// does not use the standard envelope.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}
