package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/postboard/api/internal/models"
	"gorm.io/gorm"
)

// UpdateProfileRequest is a partial update; omitted fields are left alone.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=1,max=72"`
}

type UserService struct {
	*CRUDService[models.User]
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		CRUDService: NewCRUDService[models.User](db, ErrUserNotFound,
			WithFilters(map[string]string{"username": "username", "email": "email"}),
			WithNormalizer("email", normalizeEmail),
		),
		db: db,
	}
}

// UpdateProfile changes the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error) {
	fields := make(map[string]interface{})
	var username, email string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		fields["username"] = username
	}
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
		fields["email"] = email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}

	taken, err := usernameOrEmailTaken(s.db.WithContext(ctx), username, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	user, err := s.Update(ctx, userID, fields)
	if err != nil && isUniqueViolation(err) {
		return nil, ErrUserExists
	}
	return user, err
}

// DeleteAccount removes the user and its active refresh tokens in one
// transaction. Posts and comments are kept.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) (*models.User, error) {
	var deleted *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.CRUDService.withDB(tx).Delete(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("delete refresh tokens: %w", err)
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
