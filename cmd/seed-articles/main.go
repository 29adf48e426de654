package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Seeds the articles table with a starter set of health content for local
// development. Safe to run repeatedly; existing titles are skipped.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("Missing database credentials. Set DATABASE_URL")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	seeded := 0
	for i, a := range starterArticles {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM articles WHERE title = $1)`, a.title,
		).Scan(&exists)
		if err != nil {
			logger.Fatal("Failed to check for existing article", zap.Error(err))
		}
		if exists {
			logger.Info("Skipping existing article", zap.String("title", a.title))
			continue
		}

		publishedAt := time.Now().Add(-time.Duration(i) * 24 * time.Hour)
		_, err = pool.Exec(ctx, `
			INSERT INTO articles (id, title, summary, content, category, published_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			uuid.New().String(),
			a.title,
			a.summary,
			a.content,
			a.category,
			publishedAt,
		)
		if err != nil {
			logger.Fatal("Failed to insert article", zap.Error(err), zap.String("title", a.title))
		}
		seeded++
	}

	logger.Info("Article seeding complete", zap.Int("inserted", seeded))
}

type seedArticle struct {
	title    string
	summary  string
	content  string
	category string
}

var starterArticles = []seedArticle{
	{
		title:    "Why Fiber Matters for Regularity",
		summary:  "Soluble and insoluble fiber both play a role in healthy digestion.",
		content:  "Dietary fiber adds bulk to stool and feeds the gut microbiome. Aim for 25 to 38 grams per day from whole grains, legumes, fruits and vegetables. Increase intake gradually and drink plenty of water.",
		category: "nutrition",
	},
	{
		title:    "Reading the Bristol Stool Scale",
		summary:  "What stool shape and consistency say about transit time.",
		content:  "The Bristol scale groups stool into seven types. Types 3 and 4 indicate healthy transit. Types 1 and 2 suggest constipation, while types 6 and 7 point toward diarrhea. Persistent changes are worth discussing with a doctor.",
		category: "education",
	},
	{
		title:    "Hydration and Your Gut",
		summary:  "Water intake is one of the simplest levers for digestive comfort.",
		content:  "Water softens stool and supports the mucosal lining of the intestines. Most adults need around two liters per day, more in hot weather or during exercise. Caffeine and alcohol are mild diuretics, so balance them with extra water.",
		category: "lifestyle",
	},
	{
		title:    "When to See a Doctor About Changes",
		summary:  "Most variation is normal, but some signs should not wait.",
		content:  "Blood in stool, black tarry stool, unexplained weight loss, or a sudden lasting change in bowel habits all warrant a medical visit. Keeping a record of timing, consistency and symptoms helps your doctor spot patterns.",
		category: "health",
	},
	{
		title:    "Morning Routines That Help",
		summary:  "The gastrocolic reflex is strongest after waking and after meals.",
		content:  "The colon is most active in the first hours after waking. A warm drink, a proper breakfast and a few minutes of unhurried time can train a consistent morning habit. Ignoring the urge repeatedly can weaken the reflex over time.",
		category: "lifestyle",
	},
}
