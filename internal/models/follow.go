// Package models contains data structures for the application's domain models.
package models

import "fmt"

// Follow records that one user (the follower) follows an author.
//
// The (author, user) pair is unique: a user cannot follow the same author
// twice. Both sides cascade-delete with their user record. Self-follow is
// rejected at the handler layer, not here.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follows_author_user" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follows_author_user" json:"author_id"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

func (f Follow) String() string {
	return fmt.Sprintf("%s follows %s", f.User.Username, f.Author.Username)
}
