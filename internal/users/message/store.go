// Copyright (c) 2026 ComicHub. All rights reserved.

package message

import "context"

// # Message Data Access

// Repository defines the data access contract for the moderation inbox.
type Repository interface {

	/*
		Create persists a new unread message (ID and TimeSent populated on
		return).

		Parameters:
		  - ctx: context.Context
		  - message: *Message

		Returns:
		  - error: Unprocessable when the receiver does not exist
	*/
	Create(ctx context.Context, message *Message) error

	/*
		ReceiverOf resolves who a message was sent to.

		Returns:
		  - int64: Receiving account ID
		  - error: ErrNotFound if the message does not exist
	*/
	ReceiverOf(ctx context.Context, messageID int64) (int64, error)

	/*
		MarkRead flips a message's read flag.
	*/
	MarkRead(ctx context.Context, messageID int64) error

	/*
		ListInbox returns an account's messages joined with the sender's
		username, newest first.
	*/
	ListInbox(ctx context.Context, receiverID int64) ([]*Message, error)
}
