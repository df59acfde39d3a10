// Copyright (c) 2026 ComicHub. All rights reserved.

package message

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
)

type fakeRepository struct {
	Repository // panic on anything a test does not stub

	created   []*Message
	receivers map[int64]int64
	read      []int64
	inbox     []*Message
}

func (fake *fakeRepository) Create(_ context.Context, message *Message) error {
	message.ID = int64(len(fake.created) + 1)
	message.TimeSent = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	fake.created = append(fake.created, message)
	return nil
}

func (fake *fakeRepository) ReceiverOf(_ context.Context, messageID int64) (int64, error) {
	receiverID, ok := fake.receivers[messageID]
	if !ok {
		return 0, apperr.NotFound("Message")
	}
	return receiverID, nil
}

func (fake *fakeRepository) MarkRead(_ context.Context, messageID int64) error {
	fake.read = append(fake.read, messageID)
	return nil
}

func (fake *fakeRepository) ListInbox(_ context.Context, _ int64) ([]*Message, error) {
	return fake.inbox, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func moderatorClaims() *sec.AuthClaims {
	return &sec.AuthClaims{AccountID: 7, Username: "mod", Role: string(sec.RoleModerator)}
}

func userClaims(accountID int64) *sec.AuthClaims {
	return &sec.AuthClaims{AccountID: accountID, Username: "reader", Role: string(sec.RoleUser)}
}

func TestSend(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	message, err := service.Send(context.Background(), moderatorClaims(), 42, "Content warning", "Please add an age gate to chapter 3.")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(7), message.SenderID)
	assert.Equal(t, "mod", message.SenderUsername)
	assert.Equal(t, int64(42), message.ReceiverID)
	assert.NotZero(t, message.ID)
	assert.False(t, message.Read)
}

func TestSend_RequiresModerator(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
	}{
		{name: "plain user", claims: userClaims(42)},
		{name: "unauthenticated", claims: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := newTestService(repo)

			_, err := service.Send(context.Background(), tt.claims, 42, "Hi", "Hello")
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 403, appErr.HTTPStatus)
			assert.Empty(t, repo.created)
		})
	}
}

func TestSend_Validation(t *testing.T) {
	tests := []struct {
		name       string
		receiverID int64
		subject    string
		content    string
	}{
		{name: "missing subject", receiverID: 42, subject: "", content: "Hello"},
		{name: "missing content", receiverID: 42, subject: "Hi", content: ""},
		{name: "bad receiver", receiverID: 0, subject: "Hi", content: "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeRepository{})

			_, err := service.Send(context.Background(), moderatorClaims(), tt.receiverID, tt.subject, tt.content)
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.HTTPStatus)
		})
	}
}

func TestMarkRead(t *testing.T) {
	repo := &fakeRepository{receivers: map[int64]int64{5: 42}}
	service := newTestService(repo)

	err := service.MarkRead(context.Background(), userClaims(42), 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, repo.read)
}

func TestMarkRead_ReceiverOnly(t *testing.T) {
	repo := &fakeRepository{receivers: map[int64]int64{5: 42}}
	service := newTestService(repo)

	// Even a moderator cannot touch another account's inbox.
	err := service.MarkRead(context.Background(), moderatorClaims(), 5)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)
	assert.Empty(t, repo.read)
}

func TestListInbox(t *testing.T) {
	repo := &fakeRepository{inbox: []*Message{
		{ID: 2, SenderUsername: "mod", Subject: "Second"},
		{ID: 1, SenderUsername: "mod", Subject: "First"},
	}}
	service := newTestService(repo)

	messages, err := service.ListInbox(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, int64(2), messages[0].ID)
}
