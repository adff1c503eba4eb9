package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/postboard/api/internal/config"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/internal/utils"
	"github.com/postboard/api/pkg/logger"
	"gorm.io/gorm"
)

// ClientMeta describes the client a refresh token is issued to.
type ClientMeta struct {
	IP        string
	UserAgent string
}

type TokenPair struct {
	AccessToken     string    `json:"accessToken"`
	RefreshToken    string    `json:"refreshToken"`
	AccessExpireAt  time.Time `json:"accessExpireAt"`
	RefreshExpireAt time.Time `json:"refreshExpireAt"`
}

// TokenService issues access/refresh pairs and maintains each user's set of
// active refresh token ids in the refresh_tokens table.
type TokenService struct {
	db               *gorm.DB
	signer           *utils.Signer
	revokeAllOnReuse bool
	now              func() time.Time
}

func NewTokenService(db *gorm.DB, signer *utils.Signer, cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		db:               db,
		signer:           signer,
		revokeAllOnReuse: cfg.RevokeAllOnReuse,
		now:              time.Now,
	}
}

// SetClock replaces the time source of the service and its signer.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
	s.signer.SetClock(now)
}

// IssuePair mints a new pair for userID and records the refresh token id.
func (s *TokenService) IssuePair(ctx context.Context, userID string, client ClientMeta) (*TokenPair, error) {
	return s.issue(s.db.WithContext(ctx), userID, client)
}

func (s *TokenService) issue(tx *gorm.DB, userID string, client ClientMeta) (*TokenPair, error) {
	accessToken, accessExpireAt, err := s.signer.SignAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	tokenID := uuid.NewString()
	refreshToken, refreshExpireAt, err := s.signer.SignRefresh(userID, tokenID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	record := models.RefreshToken{
		UserID:      userID,
		TokenID:     tokenID,
		ExpiresAt:   refreshExpireAt,
		CreatedByIP: client.IP,
		UserAgent:   client.UserAgent,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpireAt:  accessExpireAt,
		RefreshExpireAt: refreshExpireAt,
	}, nil
}

// VerifyAccess returns the user id carried by a valid, unexpired access token.
func (s *TokenService) VerifyAccess(token string) (string, error) {
	claims, err := s.signer.ParseAccess(token)
	if err != nil {
		return "", mapTokenError(err)
	}
	return claims.UserID(), nil
}

// Rotate consumes refreshToken and returns a fresh pair. The old id is
// deleted and the new one inserted in a single transaction; the delete is
// conditional so only one of two concurrent rotations can succeed.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string, client ClientMeta) (*TokenPair, error) {
	claims, err := s.signer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	userID := claims.UserID()

	var pair *TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("token_id = ? AND user_id = ?", claims.ID, userID).Delete(&models.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrTokenNotRecognized
		}

		pair, err = s.issue(tx, userID, client)
		return err
	})
	if errors.Is(err, ErrTokenNotRecognized) {
		s.onReuse(ctx, userID, claims.ID)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return pair, nil
}

// onReuse handles a correctly signed refresh token whose id is no longer
// active: either it was already rotated or it was stolen.
func (s *TokenService) onReuse(ctx context.Context, userID, tokenID string) {
	event := logger.Warn().Str("user_id", userID).Str("token_id", tokenID)
	if !s.revokeAllOnReuse {
		event.Msg("refresh token reuse detected")
		return
	}

	revoked, err := s.RevokeAll(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to revoke tokens after reuse")
		return
	}
	event.Int64("revoked", revoked).Msg("refresh token reuse detected, all sessions revoked")
}

// Revoke removes the id of refreshToken from the active set.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.signer.ParseRefresh(refreshToken)
	if err != nil {
		return mapTokenError(err)
	}

	res := s.db.WithContext(ctx).
		Where("token_id = ? AND user_id = ?", claims.ID, claims.UserID()).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return fmt.Errorf("revoke refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTokenNotRecognized
	}
	return nil
}

// RevokeAll drops every active refresh token of userID.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

// PurgeExpired deletes refresh token rows past their expiry.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", s.now()).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

// ActiveCount reports how many refresh tokens userID currently holds.
func (s *TokenService) ActiveCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RefreshToken{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func mapTokenError(err error) error {
	if errors.Is(err, utils.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrTokenInvalid
}
