package services

import (
	"context"

	"github.com/postboard/api/internal/models"
	"gorm.io/gorm"
)

type CreateCommentRequest struct {
	PostID string `json:"postId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentService struct {
	*CRUDService[models.Comment]
	posts *CRUDService[models.Post]
	db    *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		CRUDService: NewCRUDService[models.Comment](db, ErrCommentNotFound,
			WithFilters(map[string]string{"post": "post_id", "user": "user_id"}),
			WithPreload("Author"),
		),
		posts: NewCRUDService[models.Post](db, ErrPostNotFound),
		db:    db,
	}
}

// CreateFor stores a comment by userID on an existing post.
func (s *CommentService) CreateFor(ctx context.Context, userID string, req *CreateCommentRequest) (*models.Comment, error) {
	exists, err := s.posts.Exists(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{PostID: req.PostID, Text: req.Text, UserID: userID}
	if err := s.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns the comments of a post, newest first, with authors.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	if err := validateID(postID); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (s *CommentService) UpdateText(ctx context.Context, id string, req *UpdateCommentRequest) (*models.Comment, error) {
	return s.Update(ctx, id, map[string]interface{}{"text": req.Text})
}
