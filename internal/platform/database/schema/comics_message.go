// Copyright (c) 2026 ComicHub. All rights reserved.

package schema

// ComicsMessageTable represents the 'comics.message' table
type ComicsMessageTable struct {
	Table      string
	ID         string
	SenderID   string
	ReceiverID string
	Subject    string
	Content    string
	Read       string
	TimeSent   string
}

// ComicsMessage is the schema definition for comics.message
var ComicsMessage = ComicsMessageTable{
	Table:      "comics.message",
	ID:         "messageid",
	SenderID:   "senderid",
	ReceiverID: "receiverid",
	Subject:    "subject",
	Content:    "content",
	Read:       "read",
	TimeSent:   "timesent",
}
