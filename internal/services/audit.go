package services

import (
	"context"
	"time"

	"github.com/postboard/api/internal/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// AuditListRequest selects the caller's newest audit entries.
type AuditListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// Recent returns the newest entries, at most limit of them. An empty
// userID returns entries of every user.
func (s *AuditService) Recent(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := s.db.WithContext(ctx)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	entries := make([]models.AuditLog, 0)
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// PurgeOlderThan deletes entries older than retentionDays and returns how
// many were removed. A non-positive retention keeps everything.
func (s *AuditService) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
