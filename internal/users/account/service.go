// Copyright (c) 2026 ComicHub. All rights reserved.

package account

import (
	"context"
	"log/slog"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/constants"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/validate"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/pkg/slug"
)

// Mailer sends the account lifecycle emails. Satisfied by the platform SMTP
// mailer; tests substitute a recorder.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// # Service Layer

// Service orchestrates account registration, authentication, recovery, and
// moderation.
type Service struct {
	repo   Repository
	tokens TokenRepository
	jwt    *sec.TokenService
	mailer Mailer
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, tokens TokenRepository, jwt *sec.TokenService, mailer Mailer, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		jwt:    jwt,
		mailer: mailer,
		logger: logger,
	}
}

// authResponse signs a fresh access token for the account.
func (service *Service) authResponse(account *Account) (*AuthResponse, error) {
	token, err := service.jwt.GenerateAccessToken(account.ID, account.Username, account.Role, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthResponse{
		Token:    token,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}

// # Registration & Login

/*
Register creates a new user account and mails a verification token.

Description: The account works immediately; the emailVerified flag only
flips once the mailed token is confirmed. A failed email send does not fail
registration, it is logged and the user can re-request.

Parameters:
  - ctx: context.Context
  - username, email, password: string

Returns:
  - *AuthResponse: Signed token plus username and role
  - error: Validation failures, Conflict on duplicate username/email
*/
func (service *Service) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).MaxLen(FieldUsername, username, 30)
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Required(FieldPassword, password).MinLen(FieldPassword, password, 8).MaxLen(FieldPassword, password, 72)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	account := &Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         string(sec.RoleUser),
	}
	if err := service.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	service.sendVerification(ctx, account)

	service.logger.Info("account_registered",
		slog.Int64("account_id", account.ID),
		slog.String("username", account.Username),
	)

	return service.authResponse(account)
}

// sendVerification issues a verification token and mails it. Failures are
// logged only; the caller's flow continues.
func (service *Service) sendVerification(ctx context.Context, account *Account) {
	token, err := sec.GenerateSecureToken(constants.SecureTokenLength)
	if err == nil {
		err = service.tokens.StoreVerifyToken(ctx, token, account.ID, constants.EmailVerifyTokenTTL)
	}
	if err == nil {
		err = service.mailer.SendVerificationEmail(account.Email, token)
	}
	if err != nil {
		service.logger.Error("verification_email_failed",
			slog.Int64("account_id", account.ID),
			slog.Any("error", err),
		)
	}
}

/*
Login authenticates by username or email.

Parameters:
  - ctx: context.Context
  - usernameOrEmail, password: string

Returns:
  - *AuthResponse: Signed token plus username and role
  - error: NotFound for unknown accounts, Forbidden for banned accounts,
    Unauthorized for a wrong password
*/
func (service *Service) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsernameOrEmail, usernameOrEmail)
	validator.Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.repo.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return nil, err
	}

	if account.Banned {
		return nil, apperr.Forbidden("This account has been banned")
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Incorrect password")
	}

	service.logger.Info("account_logged_in", slog.Int64("account_id", account.ID))
	return service.authResponse(account)
}

// # Password Recovery

/*
RequestPasswordReset issues a reset token and mails it to the account.

Parameters:
  - ctx: context.Context
  - usernameOrEmail: string

Returns:
  - error: NotFound for unknown accounts, delivery failures
*/
func (service *Service) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	account, err := service.repo.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return err
	}

	token, err := sec.GenerateSecureToken(constants.SecureTokenLength)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := service.tokens.StoreResetToken(ctx, token, account.ID, constants.PasswordResetTokenTTL); err != nil {
		return err
	}
	if err := service.mailer.SendPasswordResetEmail(account.Email, token); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("password_reset_requested", slog.Int64("account_id", account.ID))
	return nil
}

/*
ConfirmPasswordReset consumes a reset token and sets the new password.

Parameters:
  - ctx: context.Context
  - token, newPassword: string

Returns:
  - *AuthResponse: Fresh credentials for the recovered account
  - error: Unauthorized for invalid/expired tokens, validation failures
*/
func (service *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (*AuthResponse, error) {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	validator.Required(FieldPassword, newPassword).MinLen(FieldPassword, newPassword, 8).MaxLen(FieldPassword, newPassword, 72)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	accountID, err := service.tokens.ConsumeResetToken(ctx, token)
	if err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	account, err := service.repo.UpdatePassword(ctx, accountID, hash)
	if err != nil {
		return nil, err
	}

	service.logger.Info("password_reset_completed", slog.Int64("account_id", account.ID))
	return service.authResponse(account)
}

// # Email Verification

// VerifyEmail consumes a verification token and marks the bound account's
// email as verified.
func (service *Service) VerifyEmail(ctx context.Context, token string) error {
	accountID, err := service.tokens.ConsumeVerifyToken(ctx, token)
	if err != nil {
		return err
	}

	if err := service.repo.MarkEmailVerified(ctx, accountID); err != nil {
		return err
	}

	service.logger.Info("email_verified", slog.Int64("account_id", accountID))
	return nil
}

// # Profiles

// GetProfile returns the public profile for a profile URL.
func (service *Service) GetProfile(ctx context.Context, profileURL string) (*Profile, error) {
	return service.repo.ProfileByURL(ctx, profileURL)
}

/*
EnableProfile publishes an account's profile page under a chosen URL.

Parameters:
  - ctx: context.Context
  - accountID: int64
  - profileURL: string
  - biography: *string

Returns:
  - error: Validation failures, Conflict on a taken profile URL
*/
func (service *Service) EnableProfile(ctx context.Context, accountID int64, profileURL string, biography *string) error {
	// Accept anything typeable and slugify it before validating.
	profileURL = slug.From(profileURL)

	validator := &validate.Validator{}
	validator.Required(FieldProfileURL, profileURL).MaxLen(FieldProfileURL, profileURL, 30)
	validator.Slug(FieldProfileURL, profileURL)
	if biography != nil {
		validator.MaxLen(FieldBiography, *biography, 1000)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.EnableProfile(ctx, accountID, profileURL, biography)
}

// EditProfile updates an account's username and biography.
func (service *Service) EditProfile(ctx context.Context, accountID int64, username string, biography *string) error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).MaxLen(FieldUsername, username, 30)
	if biography != nil {
		validator.MaxLen(FieldBiography, *biography, 1000)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.EditProfile(ctx, accountID, username, biography)
}

// # Moderation & Availability

// Ban flags an account as banned. The caller's moderator role is enforced by
// route middleware.
func (service *Service) Ban(ctx context.Context, targetAccountID int64) error {
	if err := service.repo.Ban(ctx, targetAccountID); err != nil {
		return err
	}

	service.logger.Warn("account_banned", slog.Int64("account_id", targetAccountID))
	return nil
}

// BanState reports whether the named account is banned.
func (service *Service) BanState(ctx context.Context, username string) (bool, error) {
	return service.repo.BanState(ctx, username)
}

// UsernameAvailable reports whether a username is free to register.
func (service *Service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := service.repo.UsernameTaken(ctx, username)
	return !taken, err
}

// EmailAvailable reports whether an email is free to register.
func (service *Service) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := service.repo.EmailTaken(ctx, email)
	return !taken, err
}

// UsernameOrEmailAvailable reports whether an identifier is unused as both a
// username and an email.
func (service *Service) UsernameOrEmailAvailable(ctx context.Context, identifier string) (bool, error) {
	usernameTaken, err := service.repo.UsernameTaken(ctx, identifier)
	if err != nil {
		return false, err
	}
	if usernameTaken {
		return false, nil
	}

	emailTaken, err := service.repo.EmailTaken(ctx, identifier)
	if err != nil {
		return false, err
	}
	return !emailTaken, nil
}

// # Bootstrap

/*
EnsureAdmin creates the configured admin account when no admin exists.

Description: Runs once at startup. The admin's email is marked verified so
the bootstrap account never depends on a mail round-trip.

Parameters:
  - ctx: context.Context
  - username, email, password: string (from configuration)

Returns:
  - bool: True when an admin account was created
  - error: Persistence failures
*/
func (service *Service) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	exists, err := service.repo.AdminExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return false, apperr.Internal(err)
	}

	admin := &Account{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		Role:          string(sec.RoleAdmin),
		EmailVerified: true,
	}
	if err := service.repo.Create(ctx, admin); err != nil {
		return false, err
	}

	service.logger.Info("admin_account_created", slog.String("username", username))
	return true, nil
}
