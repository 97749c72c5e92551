// Command seed fills the configured database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"aihub/internal/config"
	"aihub/internal/database"
	"aihub/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of generated users (demo accounts are always added)")
	perKind := flag.Int("items", defaults.ItemsPerKind, "Items per content type")
	comments := flag.Int("comments", defaults.CommentsPerItem, "Maximum top-level comments per item")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = clock)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	catalog, err := seed.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load seed catalog: %v", err)
	}

	s := seed.NewSeeder(db, catalog, seed.Options{
		Users:           *numUsers,
		ItemsPerKind:    *perKind,
		CommentsPerItem: *comments,
		RandSeed:        *randSeed,
	})

	ctx := context.Background()
	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d news, %d videos, %d images, %d posts, %d comments, %d likes",
		sum.Users, sum.News, sum.Videos, sum.Images, sum.Posts, sum.Comments, sum.Likes)
	for _, a := range catalog.Accounts {
		log.Printf("Demo login: %s / %s", a.Email, a.Password)
	}
}
