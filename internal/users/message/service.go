// Copyright (c) 2026 ComicHub. All rights reserved.

package message

import (
	"context"
	"log/slog"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the moderation inbox.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new message [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Send delivers a moderation notice to a user's inbox.

Description: Only moderators and admins may send. Recipients cannot reply;
the inbox is one-way by design of the moderation workflow.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims (sender)
  - receiverID: int64
  - subject, content: string

Returns:
  - *Message: The stored message with its ID and timestamp
  - error: Forbidden below moderator, validation failures
*/
func (service *Service) Send(ctx context.Context, claims *sec.AuthClaims, receiverID int64, subject, content string) (*Message, error) {
	if claims == nil || !sec.UserRole(claims.Role).AtLeast(sec.RoleModerator) {
		return nil, apperr.Forbidden("Only moderators can send messages")
	}

	validator := &validate.Validator{}
	validator.Positive(FieldReceiverID, receiverID)
	validator.Required(FieldSubject, subject).MaxLen(FieldSubject, subject, 120)
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, 4000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	message := &Message{
		SenderID:       claims.AccountID,
		SenderUsername: claims.Username,
		ReceiverID:     receiverID,
		Subject:        subject,
		Content:        content,
	}
	if err := service.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	service.logger.Info("message_sent",
		slog.Int64("sender_id", claims.AccountID),
		slog.Int64("receiver_id", receiverID),
	)
	return message, nil
}

/*
MarkRead flags an inbox message as read.

Description: Only the receiver may mark their own messages; moderators get
no special access to another user's inbox.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims
  - messageID: int64

Returns:
  - error: Forbidden when the message belongs to someone else
*/
func (service *Service) MarkRead(ctx context.Context, claims *sec.AuthClaims, messageID int64) error {
	receiverID, err := service.repo.ReceiverOf(ctx, messageID)
	if err != nil {
		return err
	}
	if claims == nil || claims.AccountID != receiverID {
		return apperr.Forbidden("You can only mark your own messages")
	}

	return service.repo.MarkRead(ctx, messageID)
}

// ListInbox returns the authenticated account's messages, newest first.
func (service *Service) ListInbox(ctx context.Context, receiverID int64) ([]*Message, error) {
	return service.repo.ListInbox(ctx, receiverID)
}
