// Copyright (c) 2026 ComicHub. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/ctxutil"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Missing value falls back to the empty string
	assert.Equal(t, "", ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()

	// No logger stored: get the process default rather than nil
	logger := ctxutil.GetLogger(ctx)
	require.NotNil(t, logger)

	custom := slog.Default().With(slog.String("component", "test"))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}

func TestAuthUser_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{AccountID: 42, Username: "inker", Role: string(sec.RoleUser)}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.AccountID)
	assert.Equal(t, "inker", got.Username)
}
