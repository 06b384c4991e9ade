// Command main runs the database seeder for Quill.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numGroups := flag.Int("groups", 8, "Number of groups to create")
	numPosts := flag.Int("posts", 150, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d groups, %d posts, clean=%v\n",
		*numUsers, *numGroups, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.Blog(db, *numUsers, *numGroups, *numPosts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All seeded users have the password: password123")
}
