// Command seed populates the forum database from a YAML fixture or with
// generated data.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"forum/internal/auth"
	"forum/internal/config"
	"forum/internal/database"
	"forum/internal/middleware"
	"forum/internal/repository"
	"forum/internal/seed"
	"forum/internal/service"
)

func main() {
	fixturePath := flag.String("fixture", "", "YAML fixture to apply (generated data when empty)")
	numUsers := flag.Int("users", 20, "Number of users to generate")
	numGroups := flag.Int("groups", 5, "Number of groups to generate")
	numPosts := flag.Int("posts", 4, "Posts per generated group")
	maxComments := flag.Int("comments", 3, "Maximum comments per generated post")
	seedValue := flag.Int64("seed", 0, "Random seed for generated data (0 = random)")
	outPath := flag.String("out", "", "Write the fixture to this file instead of the database")
	flag.Parse()

	var fx *seed.Fixture
	if *fixturePath != "" {
		loaded, err := seed.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		fx = loaded
	} else {
		fx = seed.Generate(seed.Options{
			Users:         *numUsers,
			Groups:        *numGroups,
			PostsPerGroup: *numPosts,
			MaxComments:   *maxComments,
			Seed:          *seedValue,
		})
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *outPath, err)
		}
		defer f.Close()
		if err := fx.Encode(f); err != nil {
			log.Fatalf("Failed to write fixture: %v", err)
		}
		log.Printf("Fixture written to %s", *outPath)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.ConfigureLogger(cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	seeder := seed.NewSeeder(
		service.NewUserService(repository.NewUserRepository(db), auth.NewPasswordHasher(cfg.BcryptCost), tokens),
		service.NewGroupService(groupRepo, nil),
		service.NewPostService(postRepo, groupRepo),
		service.NewCommentService(repository.NewCommentRepository(db), postRepo, groupRepo),
	)

	res, err := seeder.Apply(context.Background(), fx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d users, %d groups, %d posts, %d comments", res.Users, res.Groups, res.Posts, res.Comments)
	log.Printf("Users without a fixture password use: %s", seed.DefaultPassword)
}
