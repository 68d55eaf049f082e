package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:            "mongodb://localhost:27017",
		MongoDatabase:       "kasula",
		JWTExpiry:           30 * time.Minute,
		RecoveryExpiry:      15 * time.Minute,
		RecoveryMaxAttempts: 5,
		StorageType:         "local",
		StorageLocalPath:    "./uploads",
		StorageLocalURL:     "/uploads",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid dev config", env: "dev", mutate: func(*AppConfig) {}},
		{name: "invalid uri", env: "dev", mutate: func(c *AppConfig) { c.MongoURI = "http://localhost" }, wantErr: "MongoDB URI"},
		{name: "empty database", env: "dev", mutate: func(c *AppConfig) { c.MongoDatabase = " " }, wantErr: "mongo_database"},
		{name: "zero jwt expiry", env: "dev", mutate: func(c *AppConfig) { c.JWTExpiry = 0 }, wantErr: "jwt_expiry"},
		{name: "zero attempts", env: "dev", mutate: func(c *AppConfig) { c.RecoveryMaxAttempts = 0 }, wantErr: "recovery_max_attempts"},
		{name: "unknown storage", env: "dev", mutate: func(c *AppConfig) { c.StorageType = "ftp" }, wantErr: "storage_type"},
		{name: "s3 without bucket", env: "dev", mutate: func(c *AppConfig) { c.StorageType = "s3" }, wantErr: "storage_s3_bucket"},
		{name: "s3 with bucket", env: "dev", mutate: func(c *AppConfig) {
			c.StorageType = "s3"
			c.StorageS3Bucket = "kasula-images"
		}},
		{name: "prod without secret", env: "prod", mutate: func(*AppConfig) {}, wantErr: "jwt_secret"},
		{name: "prod with secret", env: "prod", mutate: func(c *AppConfig) { c.JWTSecret = strings.Repeat("k", 32) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)

			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, zap.NewNop())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example, ,https://b.example ")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("splitList = %q", got)
	}
	if got := splitList(""); len(got) != 0 {
		t.Errorf("splitList(\"\") = %q, want empty", got)
	}
}
