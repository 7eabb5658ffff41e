package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *FCMClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewFCMClient(context.Background(), "test-project", "",
		WithEndpoint(server.URL),
		WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return client
}

func testMessage(token string) *Message {
	return &Message{
		Token: token,
		Notification: &Notification{
			Title: "hello",
			Body:  "world",
		},
		Data: map[string]string{"type": "chat"},
	}
}

func TestFCMClient_Send(t *testing.T) {
	var gotPath string
	var gotBody sendRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(sendResponse{Name: "projects/test-project/messages/abc123"})
	})

	name, err := client.Send(context.Background(), testMessage("device-1"))
	require.NoError(t, err)
	assert.Equal(t, "projects/test-project/messages/abc123", name)

	assert.Equal(t, "/v1/projects/test-project/messages:send", gotPath)
	require.NotNil(t, gotBody.Message)
	assert.Equal(t, "device-1", gotBody.Message.Token)
	assert.Equal(t, "hello", gotBody.Message.Notification.Title)
}

func TestFCMClient_Send_Unregistered(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{
			"error": {
				"code": 404,
				"message": "Requested entity was not found.",
				"status": "NOT_FOUND",
				"details": [{
					"@type": "type.googleapis.com/google.firebase.fcm.v1.FcmError",
					"errorCode": "UNREGISTERED"
				}]
			}
		}`))
	})

	_, err := client.Send(context.Background(), testMessage("gone-device"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenUnregistered)
	assert.True(t, IsStaleToken(err))
}

func TestFCMClient_Send_InvalidToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"error": {
				"code": 400,
				"message": "The registration token is not a valid FCM registration token",
				"status": "INVALID_ARGUMENT",
				"details": [{
					"@type": "type.googleapis.com/google.firebase.fcm.v1.FcmError",
					"errorCode": "INVALID_ARGUMENT"
				}]
			}
		}`))
	})

	_, err := client.Send(context.Background(), testMessage("bad-token"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.True(t, IsStaleToken(err))
}

// Some responses carry no FcmError detail block; the NOT_FOUND status
// alone still marks the token unregistered.
func TestFCMClient_Send_NotFoundStatusOnly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": 404, "message": "not found", "status": "NOT_FOUND"}}`))
	})

	_, err := client.Send(context.Background(), testMessage("gone-device"))
	assert.ErrorIs(t, err, ErrTokenUnregistered)
}

func TestFCMClient_Send_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"code": 500, "message": "backend error", "status": "INTERNAL"}}`))
	})

	_, err := client.Send(context.Background(), testMessage("device-1"))
	require.Error(t, err)
	assert.False(t, IsStaleToken(err))
	assert.Contains(t, err.Error(), "backend error")
}

func TestFCMClient_Send_MalformedErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	})

	_, err := client.Send(context.Background(), testMessage("device-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
}

func TestFCMClient_SendMulticast(t *testing.T) {
	var tokens []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		tokens = append(tokens, req.Message.Token)

		if req.Message.Token == "stale" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"status": "NOT_FOUND", "message": "gone", "details": [{"errorCode": "UNREGISTERED"}]}}`))
			return
		}
		json.NewEncoder(w).Encode(sendResponse{Name: "projects/test-project/messages/" + req.Message.Token})
	})

	batch, err := client.SendMulticast(context.Background(), testMessage(""), []string{"a", "stale", "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "stale", "b"}, tokens)
	assert.Equal(t, 2, batch.SuccessCount)
	assert.Equal(t, 1, batch.FailureCount)
	require.Len(t, batch.Responses, 3)
	assert.True(t, batch.Responses[0].Success())
	assert.ErrorIs(t, batch.Responses[1].Err, ErrTokenUnregistered)
	assert.Equal(t, "projects/test-project/messages/b", batch.Responses[2].MessageID)
}

func TestFCMClient_SendMulticast_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	batch, err := client.SendMulticast(context.Background(), testMessage(""), nil)
	require.NoError(t, err)
	assert.Zero(t, batch.SuccessCount)
	assert.Empty(t, batch.Responses)
}

func TestFCMClient_SendMulticast_TooManyTokens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	tokens := make([]string, MaxMulticastTokens+1)
	for i := range tokens {
		tokens[i] = "t"
	}

	_, err := client.SendMulticast(context.Background(), testMessage(""), tokens)
	require.Error(t, err)
}

func TestMessage_WithToken(t *testing.T) {
	base := testMessage("")
	copy1 := base.WithToken("a")
	copy2 := base.WithToken("b")

	assert.Empty(t, base.Token)
	assert.Equal(t, "a", copy1.Token)
	assert.Equal(t, "b", copy2.Token)
	assert.Equal(t, base.Notification, copy1.Notification)
}
