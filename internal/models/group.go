// Package models contains data structures for the application's domain models.
package models

// Group is a topic page that posts can optionally be published into.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Posts       []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}

func (g Group) String() string {
	return g.Title
}
