package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkarsten/waveline/models"
	"github.com/mkarsten/waveline/utils"
)

// Notifier receives domain events worth telling users about. Delivery is
// fire-and-forget: implementations must not fail the triggering operation.
type Notifier interface {
	NotifyLiked(ctx context.Context, target models.Likeable, initiatorID uint)
	NotifyCommented(ctx context.Context, post *models.Post, comment *models.Comment)
	NotifyReplied(ctx context.Context, parent *models.Comment, reply *models.Comment)
}

// PostService orchestrates posts, comments, replies, likes and feed assembly.
type PostService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewPostService creates a PostService. notifier may be nil.
func NewPostService(db *gorm.DB, notifier Notifier) *PostService {
	return &PostService{db: db, notifier: notifier}
}

// CreatePost persists a post owned by authorID. A post must carry text or a
// media URL; fully empty posts are rejected.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content, mediaURL string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	mediaURL = strings.TrimSpace(mediaURL)
	if content == "" && mediaURL == "" {
		return nil, ValidationError("post needs text or a media url")
	}

	post := models.Post{
		UserID:   authorID,
		Content:  content,
		MediaURL: mediaURL,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, InternalError("failed to create post", err)
	}
	post.Likes = []uint{}
	return &post, nil
}

// FetchFeed returns posts authored by userID or by anyone they follow, newest
// first with ties broken by insertion order. The result is unpaginated.
func (s *PostService) FetchFeed(ctx context.Context, userID uint) ([]models.Post, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, AuthorizationError("unknown user")
		}
		return nil, InternalError("failed to load user", err)
	}

	var followeeIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &followeeIDs).Error; err != nil {
		return nil, InternalError("failed to load following", err)
	}

	authorIDs := append([]uint{userID}, followeeIDs...)
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, InternalError("failed to load feed", err)
	}

	if err := s.fillPostLikes(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a post with its author, like set and comment tree. Top-level
// comments keep insertion order; replies are attached to their parents.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("post not found")
		}
		return nil, InternalError("failed to load post", err)
	}

	var comments []models.Comment
	if err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, InternalError("failed to load comments", err)
	}

	if err := s.fillCommentLikes(ctx, comments); err != nil {
		return nil, err
	}
	post.Comments = buildCommentTree(comments)

	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ?", postID).Order("id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, InternalError("failed to load likes", err)
	}
	if ids == nil {
		ids = []uint{}
	}
	post.Likes = ids
	return &post, nil
}

// CommentOnPost creates a comment linked to postID and notifies the post author.
func (s *PostService) CommentOnPost(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ValidationError("comment content cannot be empty")
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("post not found")
		}
		return nil, InternalError("failed to load post", err)
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  authorID,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, InternalError("failed to create comment", err)
	}
	comment.Likes = []uint{}

	if s.notifier != nil && post.UserID != authorID {
		s.notifier.NotifyCommented(ctx, &post, &comment)
	}
	return &comment, nil
}

// ReplyToComment creates a reply under commentID. The reply carries the parent's
// post id so it always resolves to the same post as its ancestors, and it is
// notified to the parent comment's author.
func (s *PostService) ReplyToComment(ctx context.Context, commentID, authorID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ValidationError("reply content cannot be empty")
	}

	var parent models.Comment
	if err := s.db.WithContext(ctx).First(&parent, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("comment not found")
		}
		return nil, InternalError("failed to load comment", err)
	}

	parentID := parent.ID
	reply := models.Comment{
		PostID:   parent.PostID,
		UserID:   authorID,
		ParentID: &parentID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, InternalError("failed to create reply", err)
	}
	reply.Likes = []uint{}

	if s.notifier != nil && parent.UserID != authorID {
		s.notifier.NotifyReplied(ctx, &parent, &reply)
	}
	return &reply, nil
}

// ToggleLike adds userID to target's like set when absent and removes it when
// present, returning true for liked and false for unliked. Delete-then-insert
// runs inside one transaction against the composite unique index, so concurrent
// toggles by the same user cannot duplicate a like or misreport the outcome.
func (s *PostService) ToggleLike(ctx context.Context, target models.Likeable, userID uint) (bool, error) {
	liked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query, args := target.LikeFilter(userID)
		res := tx.Where(query, args...).Delete(target.NewLike(userID))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(target.NewLike(userID)).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, InternalError("failed to toggle like", err)
	}

	if liked && s.notifier != nil && target.EntityOwner() != userID {
		s.notifier.NotifyLiked(ctx, target, userID)
	}
	return liked, nil
}

// TogglePostLike resolves postID and toggles userID's like on it.
func (s *PostService) TogglePostLike(ctx context.Context, postID, userID uint) (bool, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, NotFoundError("post not found")
		}
		return false, InternalError("failed to load post", err)
	}
	return s.ToggleLike(ctx, &post, userID)
}

// ToggleCommentLike resolves commentID and toggles userID's like on it. The
// comment's post id is returned so callers can drop cached views of the post.
func (s *PostService) ToggleCommentLike(ctx context.Context, commentID, userID uint) (bool, uint, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, 0, NotFoundError("comment not found")
		}
		return false, 0, InternalError("failed to load comment", err)
	}
	liked, err := s.ToggleLike(ctx, &comment, userID)
	return liked, comment.PostID, err
}

// fillPostLikes batch-loads like user ids for the given posts.
func (s *PostService) fillPostLikes(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
	}
	ids = utils.UniqueUint(ids)

	var rows []models.PostLike
	if err := s.db.WithContext(ctx).
		Where("post_id IN ?", ids).Order("id ASC").
		Find(&rows).Error; err != nil {
		return InternalError("failed to load likes", err)
	}
	byPost := make(map[uint][]uint, len(posts))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], row.UserID)
	}
	for i := range posts {
		if likes, ok := byPost[posts[i].ID]; ok {
			posts[i].Likes = likes
		} else {
			posts[i].Likes = []uint{}
		}
	}
	return nil
}

// fillCommentLikes batch-loads like user ids for the given comments.
func (s *PostService) fillCommentLikes(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].ID)
	}

	var rows []models.CommentLike
	if err := s.db.WithContext(ctx).
		Where("comment_id IN ?", ids).Order("id ASC").
		Find(&rows).Error; err != nil {
		return InternalError("failed to load comment likes", err)
	}
	byComment := make(map[uint][]uint, len(comments))
	for _, row := range rows {
		byComment[row.CommentID] = append(byComment[row.CommentID], row.UserID)
	}
	for i := range comments {
		if likes, ok := byComment[comments[i].ID]; ok {
			comments[i].Likes = likes
		} else {
			comments[i].Likes = []uint{}
		}
	}
	return nil
}

// buildCommentTree attaches replies to their parents and returns top-level
// comments. Orphaned replies (deleted ancestors) surface at the top level
// rather than disappearing.
func buildCommentTree(comments []models.Comment) []models.Comment {
	exists := make(map[uint]bool, len(comments))
	for i := range comments {
		exists[comments[i].ID] = true
	}

	children := make(map[uint][]int)
	var rootIdx []int
	for i := range comments {
		pid := comments[i].ParentID
		if pid == nil || !exists[*pid] {
			rootIdx = append(rootIdx, i)
			continue
		}
		children[*pid] = append(children[*pid], i)
	}

	// Parents are always created before their replies, so the recursion
	// cannot cycle.
	var build func(i int) models.Comment
	build = func(i int) models.Comment {
		c := comments[i]
		for _, j := range children[c.ID] {
			c.Replies = append(c.Replies, build(j))
		}
		return c
	}

	out := make([]models.Comment, 0, len(rootIdx))
	for _, i := range rootIdx {
		out = append(out, build(i))
	}
	return out
}
