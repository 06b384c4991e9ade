package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an in-memory database with foreign key enforcement on, so the
// cascade rules declared in the model tags actually fire.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}))
	return db
}

func TestPostString(t *testing.T) {
	assert.Equal(t, "short", Post{Text: "short"}.String())
	assert.Equal(t, "exactly fifteen", Post{Text: "exactly fifteen chars and more"}.String())

	// truncation counts runes, not bytes
	assert.Equal(t, "привет мир и ещ", Post{Text: "привет мир и ещё текст"}.String())
}

func TestCommentString(t *testing.T) {
	assert.Equal(t, "a quick remark", Comment{Text: "a quick remark"}.String())
	assert.Equal(t, "this comment is", Comment{Text: "this comment is far too long to show whole"}.String())
}

func TestGroupString(t *testing.T) {
	assert.Equal(t, "Travel Notes", Group{Title: "Travel Notes", Slug: "travel"}.String())
}

func TestFollowString(t *testing.T) {
	f := Follow{
		User:   User{Username: "reader"},
		Author: User{Username: "writer"},
	}
	assert.Equal(t, "reader follows writer", f.String())
}

func TestUserDeleteCascades(t *testing.T) {
	db := setupDB(t)

	author := User{Username: "author", Email: "author@example.com", Password: "x"}
	reader := User{Username: "reader", Email: "reader@example.com", Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, db.Create(&reader).Error)

	post := Post{Text: "soon to vanish", AuthorID: author.ID}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&Comment{PostID: &post.ID, AuthorID: reader.ID, Text: "hello"}).Error)
	require.NoError(t, db.Create(&Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

	require.NoError(t, db.Delete(&User{}, author.ID).Error)

	var posts, comments, follows int64
	db.Model(&Post{}).Count(&posts)
	db.Model(&Comment{}).Count(&comments)
	db.Model(&Follow{}).Count(&follows)

	assert.Zero(t, posts, "author's posts should be gone")
	assert.Zero(t, comments, "comments on the author's posts should be gone")
	assert.Zero(t, follows, "follow relations naming the author should be gone")
}

func TestGroupDeleteKeepsPosts(t *testing.T) {
	db := setupDB(t)

	author := User{Username: "author", Email: "author@example.com", Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	group := Group{Title: "Doomed", Slug: "doomed"}
	require.NoError(t, db.Create(&group).Error)

	post := Post{Text: "survives its group", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, db.Create(&post).Error)

	require.NoError(t, db.Delete(&Group{}, group.ID).Error)

	var reloaded Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.GroupID, "group reference should be cleared, not cascaded")
	assert.Equal(t, "survives its group", reloaded.Text)
}

func TestFollowPairUnique(t *testing.T) {
	db := setupDB(t)

	a := User{Username: "a", Email: "a@example.com", Password: "x"}
	b := User{Username: "b", Email: "b@example.com", Password: "x"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	require.NoError(t, db.Create(&Follow{UserID: a.ID, AuthorID: b.ID}).Error)
	assert.Error(t, db.Create(&Follow{UserID: a.ID, AuthorID: b.ID}).Error)

	// the reverse direction is a distinct pair
	assert.NoError(t, db.Create(&Follow{UserID: b.ID, AuthorID: a.ID}).Error)
}
