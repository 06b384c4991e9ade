package seed

import (
	"fmt"
	"log"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Blog populates the database with a connected data set: users, groups,
// posts spread across groups, comments, and a follow mesh.
func Blog(db *gorm.DB, numUsers, numGroups, numPosts int) error {
	f := NewFactory(db, Options{})

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	groups := make([]*models.Group, 0, numGroups)
	for i := 0; i < numGroups; i++ {
		group, err := f.CreateGroup()
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("Created %d groups", len(groups))

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		// roughly a third of posts stay ungrouped
		var group *models.Group
		if len(groups) > 0 && f.rng.Intn(3) != 0 {
			group = groups[f.rng.Intn(len(groups))]
		}
		posts = append(posts, f.BuildPost(author, group))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	commentCount := 0
	for _, post := range posts {
		for i := f.rng.Intn(4); i > 0; i-- {
			author := users[f.rng.Intn(len(users))]
			if _, err := f.CreateComment(post, author); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			commentCount++
		}
	}
	log.Printf("Created %d comments", commentCount)

	followCount := 0
	for _, user := range users {
		for i := f.rng.Intn(5); i > 0; i-- {
			author := users[f.rng.Intn(len(users))]
			if err := f.CreateFollow(user, author); err != nil {
				return fmt.Errorf("failed to create follow: %w", err)
			}
			followCount++
		}
	}
	log.Printf("Created follow mesh (%d attempts)", followCount)

	return nil
}
