package logger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenPrefix(t *testing.T) {
	assert.Equal(t, "", TokenPrefix(""))
	assert.Equal(t, "short-token", TokenPrefix("short-token"))

	exact := strings.Repeat("x", 20)
	assert.Equal(t, exact, TokenPrefix(exact))

	long := strings.Repeat("x", 21)
	assert.Equal(t, exact+"...", TokenPrefix(long))
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
}
