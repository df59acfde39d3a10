// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package message implements the moderation inbox.

Moderators send notices to user accounts; recipients list their inbox and
mark messages read. There is no user-to-user messaging.
*/
package message

import "time"

// Message is one inbox entry. SenderUsername is denormalized for list views.
type Message struct {
	ID             int64     `json:"message_id"`
	SenderID       int64     `json:"-"`
	SenderUsername string    `json:"sender"`
	ReceiverID     int64     `json:"-"`
	Subject        string    `json:"subject"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	TimeSent       time.Time `json:"time_sent"`
}

// # Field Identifiers

const (
	FieldReceiverID = "receiver_id"
	FieldSubject    = "subject"
	FieldContent    = "content"
)
