package models

// Post is a short message owned by a user.
type Post struct {
	Base
	Message string `gorm:"type:text;not null" json:"message"`
	UserID  string `gorm:"index;size:36;not null" json:"user"`
	Author  *User  `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

func (Post) TableName() string { return "posts" }

func (p Post) OwnerID() string { return p.UserID }
