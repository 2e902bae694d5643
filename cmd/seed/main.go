// Command seed populates the development database with demo users and posts.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Admins, "admins", opts.Admins, "number of admin accounts to create")
	flag.IntVar(&opts.Readers, "readers", opts.Readers, "number of reader accounts to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per admin")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for all seeded accounts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
