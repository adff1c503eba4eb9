package models

// Comment is a reply to a post.
type Comment struct {
	Base
	PostID string `gorm:"index;size:36;not null" json:"post"`
	Text   string `gorm:"type:text;not null" json:"text"`
	UserID string `gorm:"index;size:36;not null" json:"user"`
	Author *User  `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c Comment) OwnerID() string { return c.UserID }
