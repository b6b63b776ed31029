package main

import (
	"fmt"
	"os"
	"time"

	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/mongodb"

	"github.com/joho/godotenv"
)

type config struct {
	Mongo     mongodb.Config
	OpTimeout time.Duration
	Log       logger.Options
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() (config, error) {
	connectTimeout, err := getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return config{}, err
	}
	opTimeout, err := getDuration("OP_TIMEOUT", 5*time.Second)
	if err != nil {
		return config{}, err
	}
	level, err := logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return config{}, err
	}
	format, err := logger.ParseType(os.Getenv("LOG_FORMAT"))
	if err != nil {
		return config{}, err
	}

	cfg := config{
		Mongo: mongodb.Config{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DB", "plp_bookstore"),
			Collection: getEnv("MONGO_COLLECTION", "books"),
			Timeout:    connectTimeout,
		},
		OpTimeout: opTimeout,
		Log:       logger.Options{Level: level, Type: format},
	}
	return cfg, cfg.Mongo.Validate()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}
