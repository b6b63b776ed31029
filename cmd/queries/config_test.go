package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookcatalog/internal/platform/logger"

	"github.com/rs/zerolog"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MONGO_URI", "MONGO_DB", "MONGO_COLLECTION", "MONGO_CONNECT_TIMEOUT", "OP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Fatalf("expected default uri, got %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "plp_bookstore" || cfg.Mongo.Collection != "books" {
		t.Fatalf("unexpected namespace %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
	}
	if cfg.OpTimeout != 5*time.Second {
		t.Fatalf("expected 5s op timeout, got %s", cfg.OpTimeout)
	}
	if cfg.Log.Level != zerolog.InfoLevel || cfg.Log.Type != logger.ConsoleLogger {
		t.Fatalf("unexpected log options %+v", cfg.Log)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "library")
	t.Setenv("OP_TIMEOUT", "750ms")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" || cfg.Mongo.Database != "library" {
		t.Fatalf("env override ignored: %+v", cfg.Mongo)
	}
	if cfg.OpTimeout != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %s", cfg.OpTimeout)
	}
	if cfg.Log.Type != logger.JSONLogger {
		t.Fatalf("expected json logger")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"OP_TIMEOUT":            "soon",
		"MONGO_CONNECT_TIMEOUT": "-1s",
		"LOG_LEVEL":             "loud",
		"LOG_FORMAT":            "xml",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			if _, err := loadConfig(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, ".env")

	if err := os.WriteFile(p, []byte("MONGO_URI=from_file\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("MONGO_URI", "from_env")

	cwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	if got := os.Getenv("MONGO_URI"); got != "from_env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}
