// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a blog entry in the Quill application.
//
// A post always has exactly one author; deleting the author deletes the post.
// The group reference is optional and is cleared (not cascaded) when the
// group is deleted. PubDate is set once at creation and never updated.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// Image is a path relative to the media root, e.g. "posts/<name>".
	Image string `json:"image,omitempty"`
}

// String returns the short preview form of the post: its first 15 runes.
func (p Post) String() string {
	return truncateRunes(p.Text, 15)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
