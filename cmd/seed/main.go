package main

import (
	"flag"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"
)

type seedAccount struct {
	email    string
	username string
	phone    string
	password string
	role     entity.Role
	status   entity.AccountStatus
}

func main() {
	var withPosts bool
	flag.BoolVar(&withPosts, "posts", true, "seed demo posts alongside accounts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	accountRepo := persistent.NewAccountRepository(db)
	postRepo := persistent.NewPostRepository(db)

	accounts := []seedAccount{
		{"root@inkwell.dev", "root", "+10000000001", "superadmin123", entity.RoleSuperAdmin, entity.AccountApproved},
		{"admin@inkwell.dev", "admin", "+10000000002", "admin123", entity.RoleAdmin, entity.AccountApproved},
		{"alice@inkwell.dev", "alice", "+10000000003", "alice123", entity.RoleUser, entity.AccountApproved},
		{"bob@inkwell.dev", "bob", "+10000000004", "bob123", entity.RoleUser, entity.AccountApproved},
		{"carol@inkwell.dev", "carol", "+10000000005", "carol123", entity.RoleUser, entity.AccountPending},
	}

	created := map[string]string{}
	for _, sa := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(sa.password), cfg.BcryptCost)
		if err != nil {
			log.Error("Failed to hash password for %s: %v", sa.email, err)
			continue
		}

		account := &entity.Account{
			Email:        sa.email,
			Username:     sa.username,
			Phone:        sa.phone,
			PasswordHash: string(hash),
			Role:         sa.role,
			Status:       sa.status,
		}
		if err := accountRepo.Create(account); err != nil {
			if apperr.IsKind(err, apperr.KindConflict) {
				existing, gerr := accountRepo.GetByEmail(sa.email)
				if gerr == nil {
					created[sa.username] = existing.ID
				}
				log.Info("Account %s already exists, skipping", sa.email)
				continue
			}
			log.Error("Failed to create account %s: %v", sa.email, err)
			continue
		}
		created[sa.username] = account.ID
		log.Info("Created %s account %s", sa.role, sa.email)
	}

	if !withPosts {
		return
	}

	now := time.Now()
	posts := []*entity.Post{
		{
			Slug:     "getting-started-with-inkwell",
			Title:    "Getting Started with Inkwell",
			Excerpt:  "A quick tour of the platform.",
			Body:     "Welcome to Inkwell. This post walks through registering, getting approved and publishing your first piece.",
			Tags:     []string{"announcements", "guide"},
			Category: entity.CategoryTechnology,
			AuthorID: created["root"],
			Status:   entity.PostPublished,
		},
		{
			Slug:     "slow-mornings-in-lisbon",
			Title:    "Slow Mornings in Lisbon",
			Excerpt:  "Coffee, tiles and hills.",
			Body:     "Three days of wandering Alfama taught me more about pacing a trip than any guidebook.",
			Tags:     []string{"travel", "europe"},
			Category: entity.CategoryTravel,
			AuthorID: created["alice"],
			Status:   entity.PostPublished,
		},
		{
			Slug:     "notes-on-sourdough",
			Title:    "Notes on Sourdough",
			Body:     "Draft of my fermentation timing experiments.",
			Tags:     []string{"baking"},
			Category: entity.CategoryFood,
			AuthorID: created["bob"],
			Status:   entity.PostDraft,
		},
	}

	for _, p := range posts {
		if p.AuthorID == "" {
			continue
		}
		if p.Status == entity.PostPublished {
			p.IsPublished = true
			publishedAt := now
			p.PublishedAt = &publishedAt
		}
		if err := postRepo.Create(p); err != nil {
			if apperr.IsKind(err, apperr.KindConflict) {
				log.Info("Post %q already exists, skipping", p.Slug)
				continue
			}
			log.Error("Failed to create post %q: %v", p.Slug, err)
			continue
		}
		log.Info("Created %s post %q", p.Status, p.Slug)
	}

	log.Info("Seeding complete")
}
