package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // username or email
	Password   string `json:"password" binding:"required"`
}

type LoginResult struct {
	TokenPair
	User *models.User `json:"user"`
}

// Register creates a new account. A clash on username or email yields
// ErrUserExists, whether caught by the pre-check or by the unique index.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	email := normalizeEmail(req.Email)

	taken, err := usernameOrEmailTaken(db, username, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login checks the password of the user whose username or email equals
// req.Identifier and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest, client ClientMeta) (*LoginResult, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID, client)
	if err != nil {
		return nil, err
	}

	return &LoginResult{TokenPair: *pair, User: &user}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string, client ClientMeta) (*TokenPair, error) {
	return s.tokens.Rotate(ctx, refreshToken, client)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword rejects passwords bcrypt cannot hash; its limit is in bytes,
// not characters.
func hashPassword(password string) (string, error) {
	if len(password) > utils.MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// usernameOrEmailTaken reports whether another user already holds username
// or email. excludeID skips the caller's own row on profile updates.
func usernameOrEmailTaken(db *gorm.DB, username, email, excludeID string) (bool, error) {
	if username == "" && email == "" {
		return false, nil
	}

	var cond string
	var args []interface{}
	switch {
	case username != "" && email != "":
		cond, args = "(username = ? OR email = ?)", []interface{}{username, email}
	case username != "":
		cond, args = "username = ?", []interface{}{username}
	default:
		cond, args = "email = ?", []interface{}{email}
	}
	if excludeID != "" {
		cond += " AND id <> ?"
		args = append(args, excludeID)
	}

	var count int64
	if err := db.Model(&models.User{}).Where(cond, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user uniqueness: %w", err)
	}
	return count > 0, nil
}

// isUniqueViolation recognises duplicate key errors from every supported
// driver. Dialectors only translate them when TranslateError is enabled, so
// the driver messages are matched as well.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
