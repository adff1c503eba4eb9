package models

// User is an account holder. Its active refresh tokens live in the
// refresh_tokens table keyed by user id.
type User struct {
	Base
	Username     string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string { return "users" }

func (u User) OwnerID() string { return u.ID }
