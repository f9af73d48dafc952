package models

import (
	"time"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes        []Like        `json:"-" gorm:"foreignKey:PostID"`
	PostHashtags []PostHashtag `json:"-" gorm:"foreignKey:PostID"`
}

type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
}

// Hashtag names are stored lower-cased; creation is lazy, on first use by a post.
type Hashtag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// PostHashtag is a join row with no identity of its own.
type PostHashtag struct {
	PostID    uint `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	HashtagID uint `json:"hashtag_id" gorm:"primaryKey;autoIncrement:false"`

	Post    *Post    `json:"-" gorm:"foreignKey:PostID"`
	Hashtag *Hashtag `json:"-" gorm:"foreignKey:HashtagID"`
}

func (Post) TableName() string {
	return "posts"
}

func (Like) TableName() string {
	return "likes"
}

func (Hashtag) TableName() string {
	return "hashtags"
}

func (PostHashtag) TableName() string {
	return "post_hashtags"
}
