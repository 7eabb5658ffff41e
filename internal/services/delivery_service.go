package services

import (
	"context"
	"time"

	"workpush/internal/logger"
	"workpush/internal/models"
	"workpush/internal/push"
	"workpush/internal/repositories"
	"workpush/internal/services/dto"
	"workpush/pkg/apperrors"
)

// maxBatchErrorDetails caps the per-failure diagnostics returned from a
// batch send; counts stay exact beyond the cap.
const maxBatchErrorDetails = 50

// DeliveryService is the push delivery pipeline. DeliverNotification and
// the badge methods run as post-write hooks and never return errors: the
// write that triggered them must not fail or be retried because a push
// could not go out. SendBatch is the only caller-facing surface.
type DeliveryService interface {
	// DeliverNotification attempts a single push for a freshly created
	// notification and returns the transport receipt ID, or "" when the
	// send was skipped or failed.
	DeliverNotification(ctx context.Context, n *models.Notification) string

	// SyncBadgeCount reacts to a notification update. Only the read flag
	// flipping false to true triggers a badge refresh.
	SyncBadgeCount(ctx context.Context, before, after *models.Notification)

	// RefreshBadge recomputes the user's unread count and pushes a
	// badge-only update.
	RefreshBadge(ctx context.Context, userID string)

	SendBatch(ctx context.Context, req *dto.BatchSendRequest) (*dto.BatchSendResult, error)
}

type deliveryService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	settingsRepo     repositories.SettingsRepository
	sender           push.Sender
	now              func() time.Time // injectable clock for quiet-hours tests
}

func NewDeliveryService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	sender push.Sender,
) DeliveryService {
	return &deliveryService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		settingsRepo:     settingsRepo,
		sender:           sender,
		now:              time.Now,
	}
}

// ---------------- Create hook ----------------

func (s *deliveryService) DeliverNotification(ctx context.Context, n *models.Notification) string {
	log := logger.FromContext(ctx).With("notification_id", n.ID, "user_id", n.UserID)

	user, err := s.userRepo.FindByID(ctx, n.UserID)
	if err != nil {
		log.Info("push skipped: user not found", "error", err.Error())
		return ""
	}
	if user.FCMToken == "" {
		log.Info("push skipped: no device token")
		return ""
	}

	settings, err := s.settingsRepo.FindByUserID(ctx, n.UserID)
	if err != nil {
		log.Error("push skipped: failed to load settings", "error", err.Error())
		return ""
	}

	if allowed, reason := evaluatePreferences(settings, n.Type, s.now()); !allowed {
		log.Info("push suppressed", "reason", reason)
		return ""
	}

	msg := buildPushMessage(n)
	msg.Token = user.FCMToken

	messageID, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.handleSendError(ctx, n.UserID, user.FCMToken, err)
		return ""
	}

	sentAt := time.Now()
	if err := s.notificationRepo.SetDeliveryReceipt(ctx, n.ID, messageID, sentAt); err != nil {
		log.Error("failed to persist delivery receipt", "error", err.Error(), "fcm_message_id", messageID)
	}

	log.Info("push delivered", "fcm_message_id", messageID)
	return messageID
}

// handleSendError logs a failed send and clears the stored token when the
// transport reports it stale, so the next notification does not retry a
// dead device.
func (s *deliveryService) handleSendError(ctx context.Context, userID, token string, sendErr error) {
	log := logger.FromContext(ctx).With("user_id", userID, "token_prefix", logger.TokenPrefix(token))

	if !push.IsStaleToken(sendErr) {
		log.Error("push delivery failed", "error", sendErr.Error())
		return
	}

	log.Warn("removing stale device token", "error", sendErr.Error())
	if err := s.userRepo.ClearFCMToken(ctx, userID); err != nil {
		log.Error("failed to clear stale device token", "error", err.Error())
	}
}

// ---------------- Update hook ----------------

func (s *deliveryService) SyncBadgeCount(ctx context.Context, before, after *models.Notification) {
	// Only the unread -> read transition matters; every other field
	// change on an update is a no-op here.
	if before == nil || after == nil || before.IsRead || !after.IsRead {
		return
	}
	s.RefreshBadge(ctx, after.UserID)
}

func (s *deliveryService) RefreshBadge(ctx context.Context, userID string) {
	log := logger.FromContext(ctx).With("user_id", userID)

	unread, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		log.Error("badge sync failed: unread count", "error", err.Error())
		return
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Info("badge sync skipped: user not found", "error", err.Error())
		return
	}
	if user.FCMToken == "" {
		return
	}

	if _, err := s.sender.Send(ctx, buildBadgeMessage(user.FCMToken, int(unread))); err != nil {
		log.Error("badge sync failed: send", "error", err.Error(), "unread", unread)
		return
	}

	log.Debug("badge count updated", "unread", unread)
}

// ---------------- Batch send ----------------

func (s *deliveryService) SendBatch(ctx context.Context, req *dto.BatchSendRequest) (*dto.BatchSendResult, error) {
	if len(req.UserIDs) == 0 {
		return nil, apperrors.InvalidArgument("userIds must be a non-empty array")
	}

	priority := req.Priority
	if priority == "" {
		priority = string(models.NotificationPriorityMedium)
	}

	template := &push.Message{
		Notification: &push.Notification{
			Title: req.Title,
			Body:  req.Message,
		},
		Data: map[string]string{
			"type":      req.Type,
			"relatedId": req.RelatedID,
			"priority":  priority,
		},
	}

	result := &dto.BatchSendResult{Errors: []dto.BatchSendError{}}

	// Groups are processed one after another: the transport caps a
	// multicast at MaxMulticastTokens and sequential processing keeps
	// the failure accounting simple.
	for start := 0; start < len(req.UserIDs); start += push.MaxMulticastTokens {
		end := start + push.MaxMulticastTokens
		if end > len(req.UserIDs) {
			end = len(req.UserIDs)
		}

		users, err := s.userRepo.FindByIDs(ctx, req.UserIDs[start:end])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		tokens := make([]string, 0, len(users))
		for _, user := range users {
			if user.FCMToken != "" {
				tokens = append(tokens, user.FCMToken)
			}
		}
		if len(tokens) == 0 {
			continue
		}

		batch, err := s.sender.SendMulticast(ctx, template, tokens)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		result.Success += batch.SuccessCount
		result.Failed += batch.FailureCount

		for i, resp := range batch.Responses {
			if resp.Success() {
				continue
			}
			if len(result.Errors) < maxBatchErrorDetails {
				result.Errors = append(result.Errors, dto.BatchSendError{
					Token: logger.TokenPrefix(tokens[i]),
					Error: resp.Err.Error(),
				})
			}
		}
	}

	logger.CtxInfo(ctx, "batch notification processed",
		"recipients", len(req.UserIDs),
		"success", result.Success,
		"failed", result.Failed,
	)
	return result, nil
}
