package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workpush/internal/auth"
	"workpush/internal/config"
	"workpush/internal/models"
	"workpush/internal/services/dto"
	"workpush/internal/validator"
	"workpush/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

// stubNotificationService satisfies the service interface for routes the
// batch tests never exercise.
type stubNotificationService struct{}

func (stubNotificationService) CreateNotification(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	return &dto.NotificationResponse{}, nil
}

func (stubNotificationService) GetNotification(ctx context.Context, userID, notificationID string) (*dto.NotificationResponse, error) {
	return nil, apperrors.ErrNotificationNotFound
}

func (stubNotificationService) GetUserNotifications(ctx context.Context, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}

func (stubNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return nil
}

func (stubNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return nil
}

func (stubNotificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

type stubDeliveryService struct {
	batchReqs []*dto.BatchSendRequest
	batchRes  *dto.BatchSendResult
	batchErr  error
}

func (s *stubDeliveryService) DeliverNotification(ctx context.Context, n *models.Notification) string {
	return ""
}

func (s *stubDeliveryService) SyncBadgeCount(ctx context.Context, before, after *models.Notification) {}

func (s *stubDeliveryService) RefreshBadge(ctx context.Context, userID string) {}

func (s *stubDeliveryService) SendBatch(ctx context.Context, req *dto.BatchSendRequest) (*dto.BatchSendResult, error) {
	s.batchReqs = append(s.batchReqs, req)
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	return s.batchRes, nil
}

func newBatchRouter(delivery *stubDeliveryService) *gin.Engine {
	base := NewBaseHandler(validator.New())
	handler := NewNotificationHandler(base, stubNotificationService{}, delivery)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func bearerFor(t *testing.T, userID string, role models.UserRole) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func postBatch(router *gin.Engine, authHeader string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/batch-send",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validBatchBody = `{
	"userIds": ["user-1", "user-2"],
	"title": "Maintenance",
	"message": "Scheduled downtime tonight",
	"type": "other"
}`

func TestSendBatchNotification_Unauthenticated(t *testing.T) {
	delivery := &stubDeliveryService{}
	router := newBatchRouter(delivery)

	w := postBatch(router, "", validBatchBody)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
	// Rejected before any recipient work happened.
	assert.Empty(t, delivery.batchReqs)
}

func TestSendBatchNotification_InvalidToken(t *testing.T) {
	delivery := &stubDeliveryService{}
	router := newBatchRouter(delivery)

	w := postBatch(router, "Bearer not-a-jwt", validBatchBody)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, delivery.batchReqs)
}

func TestSendBatchNotification_RequiresAdminRole(t *testing.T) {
	delivery := &stubDeliveryService{}
	router := newBatchRouter(delivery)

	w := postBatch(router, bearerFor(t, "user-1", models.UserRoleSeeker), validBatchBody)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
	assert.Empty(t, delivery.batchReqs)
}

func TestSendBatchNotification_Success(t *testing.T) {
	delivery := &stubDeliveryService{
		batchRes: &dto.BatchSendResult{
			Success: 1,
			Failed:  1,
			Errors:  []dto.BatchSendError{{Token: "abc...", Error: "unregistered"}},
		},
	}
	router := newBatchRouter(delivery)

	w := postBatch(router, bearerFor(t, "admin-1", models.UserRoleAdmin), validBatchBody)

	require.Equal(t, http.StatusOK, w.Code)

	var result dto.BatchSendResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)

	require.Len(t, delivery.batchReqs, 1)
	assert.Equal(t, []string{"user-1", "user-2"}, delivery.batchReqs[0].UserIDs)
	assert.Equal(t, "Maintenance", delivery.batchReqs[0].Title)
}

func TestSendBatchNotification_EmptyRecipientsRejectedByValidation(t *testing.T) {
	delivery := &stubDeliveryService{}
	router := newBatchRouter(delivery)

	w := postBatch(router, bearerFor(t, "admin-1", models.UserRoleAdmin), `{
		"userIds": [],
		"title": "Maintenance",
		"message": "Scheduled downtime tonight",
		"type": "other"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, delivery.batchReqs)
}

func TestSendBatchNotification_ServiceError(t *testing.T) {
	delivery := &stubDeliveryService{
		batchErr: apperrors.InvalidArgument("userIds must be a non-empty array"),
	}
	router := newBatchRouter(delivery)

	w := postBatch(router, bearerFor(t, "admin-1", models.UserRoleAdmin), validBatchBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ARGUMENT")
}
