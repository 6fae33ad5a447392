package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarsten/waveline/services"
	"github.com/mkarsten/waveline/utils"
)

// NotificationController exposes the stored notification records.
type NotificationController struct {
	notifications *services.NotificationService
}

// NewNotificationController creates a NotificationController.
func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List returns the authenticated user's notifications, newest first.
func (n *NotificationController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	items, err := n.notifications.List(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": items, "count": len(items)})
}

// MarkRead flips a notification's unread flag once.
func (n *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid notification id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := n.notifications.MarkRead(ctx.Request.Context(), id, userID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"read": true})
}
