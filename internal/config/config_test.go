package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_QUERY_TIMEOUT", "")
	t.Setenv("UPLOAD_BANNER_MAX_KB", "")

	cfg := Load()

	if cfg.Server.Port != "8010" {
		t.Errorf("Server.Port = %q, want 8010", cfg.Server.Port)
	}
	if cfg.Database.QueryTimeout != 10*time.Second {
		t.Errorf("Database.QueryTimeout = %v, want 10s", cfg.Database.QueryTimeout)
	}
	if cfg.Upload.BannerMaxKB != 10*1024 {
		t.Errorf("Upload.BannerMaxKB = %d, want %d", cfg.Upload.BannerMaxKB, 10*1024)
	}
	if cfg.AMQP.ExchangeType != "topic" {
		t.Errorf("AMQP.ExchangeType = %q, want topic", cfg.AMQP.ExchangeType)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("AWS_USE_SSL", "true")
	t.Setenv("UPLOAD_TRAILER_MAX_KB", "2048")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != "9000" {
		t.Errorf("Server.Port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Database.QueryTimeout != 3*time.Second {
		t.Errorf("Database.QueryTimeout = %v, want 3s", cfg.Database.QueryTimeout)
	}
	if !cfg.MinIO.UseSSL {
		t.Error("MinIO.UseSSL = false, want true")
	}
	if cfg.Upload.TrailerMaxKB != 2048 {
		t.Errorf("Upload.TrailerMaxKB = %d, want 2048", cfg.Upload.TrailerMaxKB)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Database.MaxOpenConns = %d, want fallback 25", cfg.Database.MaxOpenConns)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.MinIO.AccessKeyID = "key"
	cfg.MinIO.SecretAccessKey = "secret"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	cfg.AMQP.Enabled = true
	cfg.AMQP.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for empty RABBITMQ_URL")
	}

	cfg.AMQP.Enabled = false
	cfg.MinIO.AccessKeyID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing access key")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5433", User: "app", Password: "secret", DBName: "catalog", SSLMode: "disable"}

	want := "host=db port=5433 user=app password=secret dbname=catalog sslmode=disable TimeZone=UTC connect_timeout=10"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
