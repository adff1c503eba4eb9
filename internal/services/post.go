package services

import (
	"context"
	"fmt"

	"github.com/postboard/api/internal/models"
	"gorm.io/gorm"
)

type PostRequest struct {
	Message string `json:"message" binding:"required"`
}

type PostService struct {
	*CRUDService[models.Post]
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		CRUDService: NewCRUDService[models.Post](db, ErrPostNotFound,
			WithFilters(map[string]string{"user": "user_id", "sender": "user_id"}),
			WithPreload("Author"),
		),
		db: db,
	}
}

// CreateFor stores a post owned by userID.
func (s *PostService) CreateFor(ctx context.Context, userID string, req *PostRequest) (*models.Post, error) {
	post := &models.Post{Message: req.Message, UserID: userID}
	if err := s.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return s.List(ctx, map[string]string{"user": userID})
}

func (s *PostService) UpdateMessage(ctx context.Context, id string, req *PostRequest) (*models.Post, error) {
	return s.Update(ctx, id, map[string]interface{}{"message": req.Message})
}

// Delete removes the post together with its comments.
func (s *PostService) Delete(ctx context.Context, id string) (*models.Post, error) {
	var deleted *models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.CRUDService.withDB(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of %s: %w", post.ID, err)
		}
		deleted = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
