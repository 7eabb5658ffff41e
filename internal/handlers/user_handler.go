package handlers

import (
	"net/http"

	"workpush/internal/middleware"
	"workpush/internal/services"
	"workpush/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users/me")
	users.Use(middleware.AuthMiddleware())
	{
		users.PUT("/fcm-token", h.RegisterFCMToken)
		users.DELETE("/fcm-token", h.RemoveFCMToken)
	}
}

func (h *UserHandler) RegisterFCMToken(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RegisterTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.RegisterFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token registered"})
}

func (h *UserHandler) RemoveFCMToken(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.RemoveFCMToken(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token removed"})
}
