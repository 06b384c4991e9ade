// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a post.
//
// The post reference is nullable at the schema level but the application
// always supplies it; comments are cascade-deleted with their post and with
// their author.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   *uint     `gorm:"index" json:"post_id,omitempty"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime" json:"created"`
}

// String returns the short preview form of the comment: its first 15 runes.
func (c Comment) String() string {
	return truncateRunes(c.Text, 15)
}
