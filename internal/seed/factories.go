// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options tunes how the factory generates data.
type Options struct {
	// MaxDays spreads generated publication dates over this many days back.
	MaxDays int
	// SkipBcrypt stores plaintext passwords to speed up large seeds.
	SkipBcrypt bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s_%d", strings.ToLower(gofakeit.Username()), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateGroup constructs and persists a sample group.
func (f *Factory) CreateGroup(overrides ...func(*models.Group)) (*models.Group, error) {
	noun := strings.ToLower(gofakeit.NounConcrete())
	group := &models.Group{
		Title:       gofakeit.BookTitle(),
		Slug:        fmt.Sprintf("%s-%d", noun, gofakeit.Number(100, 999)),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
	}

	for _, override := range overrides {
		override(group)
	}

	if err := f.db.Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(author *models.User, group *models.Group, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorID: author.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}

	// realistic pub_date spread
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.PubDate = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post for the given author.
func (f *Factory) CreatePost(author *models.User, group *models.Group, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, group, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a comment on the given post.
func (f *Factory) CreateComment(post *models.Post, author *models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   &post.ID,
		AuthorID: author.ID,
		Text:     gofakeit.Sentence(12),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow subscribes user to author's posts, skipping duplicates.
func (f *Factory) CreateFollow(user, author *models.User) error {
	if user.ID == author.ID {
		return nil
	}
	var count int64
	if err := f.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error
}

// ClearAll wipes every seeded table. Child tables go first so the deletes
// never trip foreign key constraints.
func ClearAll(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Follow{},
		&models.Comment{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
