package models

import "time"

// RefreshToken is one entry of a user's active refresh token set. TokenID is
// the jti of the signed token; the row is deleted when the token is consumed.
type RefreshToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index;size:36;not null" json:"userId"`
	TokenID     string    `gorm:"uniqueIndex;size:36;not null" json:"-"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedByIP string    `gorm:"size:64" json:"createdByIp,omitempty"`
	UserAgent   string    `gorm:"size:255" json:"userAgent,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
