package services

import (
	"context"

	"workpush/internal/repositories"
	"workpush/pkg/apperrors"
)

type UserService interface {
	// RegisterFCMToken stores or replaces the user's device push token.
	RegisterFCMToken(ctx context.Context, userID, token string) error
	RemoveFCMToken(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterFCMToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return apperrors.InvalidArgument("token must not be empty")
	}
	if err := s.userRepo.UpdateFCMToken(ctx, userID, token); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) RemoveFCMToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearFCMToken(ctx, userID)
}
