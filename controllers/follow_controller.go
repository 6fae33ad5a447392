package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarsten/waveline/services"
	"github.com/mkarsten/waveline/utils"
)

// FollowController manages the follow graph endpoints.
type FollowController struct {
	follows *services.FollowService
}

// NewFollowController creates a FollowController.
func NewFollowController(follows *services.FollowService) *FollowController {
	return &FollowController{follows: follows}
}

// Follow makes the authenticated user follow the user in the path.
func (f *FollowController) Follow(ctx *gin.Context) {
	targetID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid user id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := f.follows.Follow(ctx.Request.Context(), userID, targetID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"following": true})
}

// Unfollow removes the relationship; unfollowing a stranger succeeds quietly.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	targetID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid user id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := f.follows.Unfollow(ctx.Request.Context(), userID, targetID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"following": false})
}

// Following lists the ids the authenticated user follows.
func (f *FollowController) Following(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	ids, err := f.follows.FollowingIDs(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"following": ids})
}
