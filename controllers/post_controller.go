package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkarsten/waveline/services"
	"github.com/mkarsten/waveline/utils"
)

// PostController manages posts, comments, replies and likes.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a PostController.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// CreatePost allows authenticated users to publish a post. Text or a media URL
// must be present.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Content  string `json:"content"`
		MediaURL string `json:"media_url" binding:"omitempty,url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, err := p.posts.CreatePost(ctx.Request.Context(), userID, utils.Sanitize(req.Content), req.MediaURL)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// Feed returns the posts of the authenticated user and everyone they follow,
// newest first.
func (p *PostController) Feed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	posts, err := p.posts.FetchFeed(ctx.Request.Context(), userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"items": posts, "count": len(posts)})
}

// GetPost returns a single post with its author, likes and comment tree.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}

	cacheKey := "cache:post:detail:" + strconv.FormatUint(uint64(postID), 10)
	if b, found := utils.CacheGetBytes(cacheKey); found {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	payload := gin.H{"post": post}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// CreateComment allows authenticated users to comment on a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	postID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	comment, err := p.posts.CommentOnPost(ctx.Request.Context(), postID, userID, utils.Sanitize(req.Content))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.CacheDelete("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))
	utils.Success(ctx, gin.H{"comment": comment})
}

// CreateReply allows authenticated users to reply to a comment.
func (p *PostController) CreateReply(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}

	commentID, ok := parseUintParam(ctx, "commentId")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid comment id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	reply, err := p.posts.ReplyToComment(ctx.Request.Context(), commentID, userID, utils.Sanitize(req.Content))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.CacheDelete("cache:post:detail:" + strconv.FormatUint(uint64(reply.PostID), 10))
	utils.Success(ctx, gin.H{"reply": reply})
}

// TogglePostLike likes or unlikes a post for the authenticated user.
func (p *PostController) TogglePostLike(ctx *gin.Context) {
	postID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	liked, err := p.posts.TogglePostLike(ctx.Request.Context(), postID, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.CacheDelete("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))
	message := "post unliked"
	if liked {
		message = "post liked"
	}
	utils.Success(ctx, gin.H{"liked": liked, "message": message})
}

// ToggleCommentLike likes or unlikes a comment for the authenticated user.
func (p *PostController) ToggleCommentLike(ctx *gin.Context) {
	commentID, ok := parseUintParam(ctx, "commentId")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid comment id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	liked, postID, err := p.posts.ToggleCommentLike(ctx.Request.Context(), commentID, userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// The cached post detail embeds per-comment like sets.
	utils.CacheDelete("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))
	message := "comment unliked"
	if liked {
		message = "comment liked"
	}
	utils.Success(ctx, gin.H{"liked": liked, "message": message})
}
