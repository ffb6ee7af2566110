package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", cfg.TokenTTL)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.KeyPrefix != "fsociety-" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.SQLite.Path != "fsociety.db" {
		t.Fatalf("unexpected sqlite path: %s", cfg.SQLite.Path)
	}
	if cfg.Mongo.Database != "fsociety" {
		t.Fatalf("unexpected mongo db: %s", cfg.Mongo.Database)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":          "9090",
		"ENV":           "production",
		"JWT_SECRET":    "s3cret",
		"TOKEN_TTL":     "90m",
		"STORE_BACKEND": "redis",
		"REDIS_ADDR":    "cache:6379",
		"REDIS_DB":      "2",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	if cfg.Port != "9090" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.TokenTTL)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config: %+v %+v", cfg.Store, cfg.Redis)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("production must not be development")
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend": {"STORE_BACKEND": "etcd"},
		"bad duration":    {"TOKEN_TTL": "soon"},
		"zero ttl":        {"TOKEN_TTL": "0s"},
		"bad redis db":    {"REDIS_DB": "two"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
