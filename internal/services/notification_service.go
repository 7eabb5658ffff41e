package services

import (
	"context"
	"encoding/json"
	"fmt"

	"workpush/internal/models"
	"workpush/internal/repositories"
	"workpush/internal/services/dto"
	"workpush/pkg/apperrors"

	"gorm.io/datatypes"
)

type NotificationService interface {
	// CreateNotification persists the record and synchronously fires the
	// delivery pipeline. Delivery failures never fail the create.
	CreateNotification(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	GetNotification(ctx context.Context, userID, notificationID string) (*dto.NotificationResponse, error)
	GetUserNotifications(ctx context.Context, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	delivery         DeliveryService
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	delivery DeliveryService,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		delivery:         delivery,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if !models.ValidNotificationType(models.NotificationType(req.Type)) {
		return nil, apperrors.InvalidArgument("invalid notification type: " + req.Type)
	}

	var dataJSON datatypes.JSON
	if req.Data != nil {
		jsonData, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification data: %w", err)
		}
		dataJSON = datatypes.JSON(jsonData)
	}

	priority := models.NotificationPriority(req.Priority)
	if priority == "" {
		priority = models.NotificationPriorityMedium
	}

	notification := &models.Notification{
		UserID:    req.UserID,
		Type:      models.NotificationType(req.Type),
		Title:     req.Title,
		Message:   req.Message,
		RelatedID: req.RelatedID,
		Priority:  priority,
		Data:      dataJSON,
		IsRead:    false,
	}

	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}

	// Create hook: a single synchronous delivery attempt. On success the
	// record is re-read so the response carries the delivery receipt.
	if messageID := s.delivery.DeliverNotification(ctx, notification); messageID != "" {
		refreshed, err := s.notificationRepo.FindNotificationByID(ctx, notification.ID)
		if err == nil {
			notification = refreshed
		}
	}

	return buildNotificationResponse(notification), nil
}

func (s *notificationService) GetNotification(ctx context.Context, userID, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.findOwned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}
	return buildNotificationResponse(notification), nil
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	repoCriteria := repositories.NotificationCriteria{
		UnreadOnly: criteria.UnreadOnly,
		Type:       criteria.Type,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(ctx, userID, repoCriteria)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
		TotalPages:    calculateTotalPages(total, criteria.PageSize),
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	before, err := s.findOwned(ctx, userID, notificationID)
	if err != nil {
		return err
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID); err != nil {
		return err
	}

	// Update hook: the read flag flipped, refresh the badge.
	after := *before
	after.IsRead = true
	s.delivery.SyncBadgeCount(ctx, before, &after)

	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.delivery.RefreshBadge(ctx, userID)
	return nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(ctx, userID)
}

// findOwned fetches a notification and checks it belongs to userID.
func (s *notificationService) findOwned(ctx context.Context, userID, notificationID string) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return notification, nil
}

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	response := &dto.NotificationResponse{
		ID:           notification.ID,
		UserID:       notification.UserID,
		Type:         string(notification.Type),
		Title:        notification.Title,
		Message:      notification.Message,
		RelatedID:    notification.RelatedID,
		Priority:     string(notification.Priority),
		IsRead:       notification.IsRead,
		ReadAt:       notification.ReadAt,
		CreatedAt:    notification.CreatedAt,
		FCMMessageID: notification.FCMMessageID,
		FCMSentAt:    notification.FCMSentAt,
	}

	if len(notification.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(notification.Data, &data); err == nil {
			response.Data = data
		}
	}

	return response
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
