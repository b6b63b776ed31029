package main

import (
	"context"
	"os"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/mongodb"
	"bookcatalog/internal/report"
	"bookcatalog/internal/runner"

	"github.com/rs/zerolog"
)

func main() {
	loadEnvFiles()

	cfg, err := loadConfig()
	if err != nil {
		boot := logger.New(os.Stderr, logger.Options{Level: zerolog.InfoLevel})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	root := logger.New(os.Stderr, cfg.Log)

	if err := run(context.Background(), cfg, root); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log zerolog.Logger) error {
	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Error().Err(err).Msg("cannot connect to MongoDB")
		return err
	}
	log.Info().
		Str("uri", mongodb.RedactURI(cfg.Mongo.URI)).
		Str("db", cfg.Mongo.Database).
		Msg("Connected to MongoDB")

	defer func() {
		if err := mongodb.Disconnect(client, cfg.Mongo.Timeout); err != nil {
			log.Warn().Err(err).Msg("disconnect failed")
			return
		}
		log.Info().Msg("Connection closed")
	}()

	repo := book.NewMongoRepo(mongodb.Collection(client, cfg.Mongo), cfg.OpTimeout)
	r := runner.New(
		book.NewService(repo),
		report.NewConsole(os.Stdout),
		logger.Component(log, "runner"),
		runner.Steps(runner.DefaultBatch()),
	)
	if err := r.Run(ctx); err != nil {
		log.Error().Err(err).Msg("batch stopped")
		return err
	}
	return nil
}
