package push

import (
	"context"
	"errors"
)

// MaxMulticastTokens is the transport's per-call group-send limit.
const MaxMulticastTokens = 500

// Typed delivery errors. Both mean the stored device token will never
// work again and should be removed from the user's profile.
var (
	ErrTokenInvalid      = errors.New("push: invalid registration token")
	ErrTokenUnregistered = errors.New("push: registration token not registered")
)

// IsStaleToken reports whether err indicates an unusable device token.
func IsStaleToken(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenUnregistered)
}

// SendResponse is the per-token outcome of a multicast send.
type SendResponse struct {
	MessageID string
	Err       error
}

func (r SendResponse) Success() bool {
	return r.Err == nil
}

// BatchResponse aggregates a multicast send. Responses are ordered like
// the input token list.
type BatchResponse struct {
	SuccessCount int
	FailureCount int
	Responses    []SendResponse
}

// Sender delivers built messages to devices. Implementations return a
// provider receipt ID on success and typed errors for stale tokens.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
	SendMulticast(ctx context.Context, msg *Message, tokens []string) (*BatchResponse, error)
}
