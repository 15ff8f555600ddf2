// Package model defines the database entities of the blogd content API.
package model

import "time"

// User is an account that can authenticate against the API. Role is one of
// the values enumerated in web/policy; the column is never empty.
type User struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"-"` // raw password in transit, never stored
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Post is an article. AuthorId is set at creation and never reassigned.
// Comments are returned in insertion order (ascending id).
type Post struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorId  int       `json:"author_id" gorm:"index;not null"`
	Comments  []Comment `json:"comments" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment belongs to exactly one post and is only addressable through it.
type Comment struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	PostId    int       `json:"post_id" gorm:"index;not null"`
	AuthorId  int       `json:"author_id" gorm:"index;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
