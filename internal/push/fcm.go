package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	fcmScope           = "https://www.googleapis.com/auth/firebase.messaging"
	defaultFCMEndpoint = "https://fcm.googleapis.com"
)

// FCMClient sends messages through the FCM HTTP v1 API, authenticating
// with a service-account token source.
type FCMClient struct {
	projectID  string
	endpoint   string
	httpClient *http.Client
}

type FCMOption func(*FCMClient)

// WithEndpoint overrides the API base URL. Used by tests.
func WithEndpoint(endpoint string) FCMOption {
	return func(c *FCMClient) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the authenticated HTTP client.
func WithHTTPClient(client *http.Client) FCMOption {
	return func(c *FCMClient) {
		c.httpClient = client
	}
}

// NewFCMClient builds a client from a service-account credentials file.
func NewFCMClient(ctx context.Context, projectID, credentialsFile string, opts ...FCMOption) (*FCMClient, error) {
	c := &FCMClient{
		projectID: projectID,
		endpoint:  defaultFCMEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read FCM credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, fcmScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse FCM credentials: %w", err)
		}
		c.httpClient = oauth2.NewClient(ctx, creds.TokenSource)
		c.httpClient.Timeout = 10 * time.Second
	}

	return c, nil
}

type sendRequest struct {
	Message *Message `json:"message"`
}

type sendResponse struct {
	Name string `json:"name"` // "projects/{project}/messages/{id}"
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type      string `json:"@type"`
			ErrorCode string `json:"errorCode"`
		} `json:"details"`
	} `json:"error"`
}

// Send posts a single message and returns the provider message name.
func (c *FCMClient) Send(ctx context.Context, msg *Message) (string, error) {
	body, err := json.Marshal(sendRequest{Message: msg})
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", c.endpoint, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fcm request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read fcm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.mapError(resp.StatusCode, data)
	}

	var result sendResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to decode fcm response: %w", err)
	}
	return result.Name, nil
}

// SendMulticast delivers the same payload to up to MaxMulticastTokens
// devices, one request per token, collecting per-token outcomes.
func (c *FCMClient) SendMulticast(ctx context.Context, msg *Message, tokens []string) (*BatchResponse, error) {
	if len(tokens) == 0 {
		return &BatchResponse{}, nil
	}
	if len(tokens) > MaxMulticastTokens {
		return nil, fmt.Errorf("multicast limited to %d tokens, got %d", MaxMulticastTokens, len(tokens))
	}

	batch := &BatchResponse{
		Responses: make([]SendResponse, 0, len(tokens)),
	}

	for _, token := range tokens {
		id, err := c.Send(ctx, msg.WithToken(token))
		if err != nil {
			batch.FailureCount++
			batch.Responses = append(batch.Responses, SendResponse{Err: err})
			continue
		}
		batch.SuccessCount++
		batch.Responses = append(batch.Responses, SendResponse{MessageID: id})
	}

	return batch, nil
}

// mapError turns an FCM v1 error body into a typed error where possible.
func (c *FCMClient) mapError(statusCode int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return fmt.Errorf("fcm error: http %d", statusCode)
	}

	for _, detail := range apiErr.Error.Details {
		switch detail.ErrorCode {
		case "UNREGISTERED":
			return fmt.Errorf("%w: %s", ErrTokenUnregistered, apiErr.Error.Message)
		case "INVALID_ARGUMENT":
			return fmt.Errorf("%w: %s", ErrTokenInvalid, apiErr.Error.Message)
		}
	}

	// Older responses carry only the status
	if apiErr.Error.Status == "NOT_FOUND" {
		return fmt.Errorf("%w: %s", ErrTokenUnregistered, apiErr.Error.Message)
	}

	return fmt.Errorf("fcm error: %s (http %d)", apiErr.Error.Message, statusCode)
}
