package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/mongodb"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	log := logger.New(os.Stderr, logger.Options{Level: zerolog.InfoLevel}).
		With().Str("seed_run", uuid.NewString()).Logger()
	ctx := context.Background()

	cfg := mongodb.Config{
		URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:   getEnv("MONGO_DB", "plp_bookstore"),
		Collection: getEnv("MONGO_COLLECTION", "books"),
		Timeout:    10 * time.Second,
	}
	count, err := strconv.Atoi(getEnv("SEED_COUNT", "0"))
	if err != nil || count < 0 {
		log.Fatal().Str("SEED_COUNT", os.Getenv("SEED_COUNT")).Msg("SEED_COUNT must be a non-negative integer")
	}

	client, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := mongodb.Disconnect(client, cfg.Timeout); err != nil {
			log.Warn().Err(err).Msg("disconnect failed")
		}
	}()

	coll := mongodb.Collection(client, cfg)
	if os.Getenv("SEED_DROP") == "true" {
		if err := coll.Drop(ctx); err != nil {
			log.Error().Err(err).Msg("failed to drop collection")
			return
		}
		log.Info().Str("collection", cfg.Collection).Msg("collection dropped")
	}

	books := book.Classics()
	log.Info().Int("generated", count).Int("classics", len(books)).Msg("generating books")
	books = append(books, generate(count, rand.New(rand.NewSource(time.Now().UnixNano())))...)

	svc := book.NewService(book.NewMongoRepo(coll, time.Minute))
	n, err := svc.Seed(ctx, books)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert books")
		return
	}
	log.Info().Int("inserted", n).Msg("books inserted")

	total, err := svc.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count books")
		return
	}
	log.Info().Int64("total", total).Msg("books in collection")
}

var (
	genres  = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Fantasy"}
	authors = []string{"Ada Byron", "Chinua Achebe", "Ursula K. Le Guin", "Italo Calvino", "Octavia Butler", "Jorge Luis Borges", "Toni Morrison", "Stanislaw Lem"}
	words   = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley", "Vintage"}
)

func generate(count int, rnd *rand.Rand) []book.Book {
	out := make([]book.Book, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, book.Book{
			Title:         fmt.Sprintf("Book Title %d - %s", i+1, words[rnd.Intn(len(words))]),
			Author:        authors[rnd.Intn(len(authors))],
			Genre:         genres[rnd.Intn(len(genres))],
			PublishedYear: 1950 + rnd.Intn(75),
			Price:         float64(500+rnd.Intn(2500)) / 100,
			InStock:       rnd.Intn(4) != 0,
			Pages:         100 + rnd.Intn(800),
			Publisher:     publishers[rnd.Intn(len(publishers))],
		})
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
