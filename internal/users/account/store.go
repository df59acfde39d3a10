// Copyright (c) 2026 ComicHub. All rights reserved.

package account

import (
	"context"
	"time"
)

// # Account Data Access

// Repository defines the data access contract for accounts.
type Repository interface {

	/*
		Create persists a new account (ID and Joined populated on return).

		Parameters:
		  - ctx: context.Context
		  - account: *Account (PasswordHash already computed)

		Returns:
		  - error: Conflict on duplicate username or email
	*/
	Create(ctx context.Context, account *Account) error

	/*
		FindByUsernameOrEmail retrieves an account by either identifier.
		Emails are matched lowercase.

		Parameters:
		  - ctx: context.Context
		  - usernameOrEmail: string

		Returns:
		  - *Account: Hydrated entity including credentials
		  - error: ErrNotFound if missing
	*/
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*Account, error)

	/*
		FindByID retrieves an account by its primary key.
	*/
	FindByID(ctx context.Context, accountID int64) (*Account, error)

	/*
		UpdatePassword replaces an account's password hash and returns the
		refreshed account for a new auth response.
	*/
	UpdatePassword(ctx context.Context, accountID int64, passwordHash string) (*Account, error)

	/*
		MarkEmailVerified flips the email verification flag.
	*/
	MarkEmailVerified(ctx context.Context, accountID int64) error

	// # Moderation

	/*
		Ban flags an account as banned. Banned accounts fail login.
	*/
	Ban(ctx context.Context, accountID int64) error

	/*
		BanState reports whether the named account is banned.

		Returns:
		  - bool: True when banned
		  - error: ErrNotFound if no such username
	*/
	BanState(ctx context.Context, username string) (bool, error)

	/*
		AdminExists reports whether any admin account is registered.
	*/
	AdminExists(ctx context.Context) (bool, error)

	// # Availability

	/*
		UsernameTaken reports whether a username is registered.
	*/
	UsernameTaken(ctx context.Context, username string) (bool, error)

	/*
		EmailTaken reports whether an email is registered (lowercase match).
	*/
	EmailTaken(ctx context.Context, email string) (bool, error)

	// # Profiles

	/*
		ProfileByURL retrieves the public profile and owned comic summaries.

		Parameters:
		  - ctx: context.Context
		  - profileURL: string

		Returns:
		  - *Profile: Public profile view
		  - error: ErrNotFound if no account uses that URL
	*/
	ProfileByURL(ctx context.Context, profileURL string) (*Profile, error)

	/*
		EnableProfile sets an account's profile URL and biography.
	*/
	EnableProfile(ctx context.Context, accountID int64, profileURL string, biography *string) error

	/*
		EditProfile replaces an account's username and biography.
	*/
	EditProfile(ctx context.Context, accountID int64, username string, biography *string) error
}

// # Volatile Token Storage

// TokenRepository stores short-lived opaque tokens for password resets and
// email verification. Tokens are single-use: consuming one deletes it.
type TokenRepository interface {

	/*
		StoreResetToken binds a password-reset token to an account with a TTL.
	*/
	StoreResetToken(ctx context.Context, token string, accountID int64, ttl time.Duration) error

	/*
		ConsumeResetToken resolves and deletes a password-reset token.

		Returns:
		  - int64: Bound account ID
		  - error: ErrNotFound when expired, unknown, or already used
	*/
	ConsumeResetToken(ctx context.Context, token string) (int64, error)

	/*
		StoreVerifyToken binds an email-verification token to an account.
	*/
	StoreVerifyToken(ctx context.Context, token string, accountID int64, ttl time.Duration) error

	/*
		ConsumeVerifyToken resolves and deletes an email-verification token.
	*/
	ConsumeVerifyToken(ctx context.Context, token string) (int64, error)
}
