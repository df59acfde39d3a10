// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package account manages user accounts: registration, login, password
recovery, email verification, public profiles, and moderation state.

# Core Responsibility

  - Identity: Defines the [Account] entity and its credentials.
  - Authentication: Issues JWT access tokens on register/login.
  - Recovery: Password-reset and email-verification flows backed by
    short-lived opaque tokens.
  - Moderation: Ban flag checked on every login.

Passwords are stored as bcrypt hashes and never leave this package.
*/
package account

import "time"

// # Core Entities

// Account represents a registered user.
type Account struct {
	ID            int64     `json:"account_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	Biography     *string   `json:"biography,omitempty"`
	ProfileURL    *string   `json:"profile_url,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Banned        bool      `json:"-"`
	Joined        time.Time `json:"joined"`
}

// AuthResponse is returned by every successful authentication: register,
// login, and password-reset confirmation.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Profile is the public view of an account with its owned comics.
type Profile struct {
	Username  string         `json:"username"`
	Biography *string        `json:"biography,omitempty"`
	Joined    time.Time      `json:"joined"`
	Comics    []ProfileComic `json:"comics"`
}

// ProfileComic is a comic summary shown on a public profile.
type ProfileComic struct {
	ComicID      int64  `json:"comic_id"`
	Title        string `json:"title"`
	ComicURL     string `json:"comic_url"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// # Field Identifiers

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldUsernameOrEmail = "username_or_email"
	FieldProfileURL      = "profile_url"
	FieldBiography       = "biography"
	FieldToken           = "token"
)
