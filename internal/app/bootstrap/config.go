// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Kasula.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: KASULA_MONGO_URI, KASULA_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "kasula", Desc: "MongoDB database name"},
	{Name: "mongo_test_database", Default: "kasula_test", Desc: "MongoDB database name for integration tests"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer tokens
	{Name: "jwt_secret", Default: "", Desc: "HS256 signing key (required in prod; dev uses a random per-process key)"},
	{Name: "jwt_expiry", Default: "30m", Desc: "Bearer token lifetime (e.g., 30m, 2h)"},

	// Password recovery
	{Name: "recovery_code_expiry", Default: "15m", Desc: "Password recovery code lifetime"},
	{Name: "recovery_max_attempts", Default: 5, Desc: "Wrong guesses before a recovery code is burned"},

	// Image storage
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded images"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local images"},
	{Name: "storage_s3_region", Default: "us-east-1", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "", Desc: "S3 key prefix"},
	{Name: "storage_s3_url", Default: "", Desc: "Public base URL for S3 objects (blank uses the bucket URL)"},
	{Name: "image_max_dimension", Default: 1600, Desc: "Longest image edge in pixels after resize"},
	{Name: "max_upload_mb", Default: 10, Desc: "Multipart request body limit in MB"},

	// Email/SMTP configuration
	{Name: "smtp_host", Default: "", Desc: "SMTP server host (blank logs mail instead of sending)"},
	{Name: "smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "no-reply@kasula.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Kasula", Desc: "From display name"},
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL for email links"},

	// HTTP
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma separated CORS origins"},
	{Name: "login_rate_limit", Default: 10, Desc: "Requests per minute per IP on token and recovery endpoints"},
	{Name: "debug", Default: false, Desc: "Verbose request logging"},

	// Background jobs
	{Name: "recovery_cleanup_interval", Default: "10m", Desc: "How often expired recovery codes are deleted (0 disables)"},
	{Name: "notification_prune_interval", Default: "1h", Desc: "How often deleted notifications are pruned (0 disables)"},
	{Name: "notification_retention", Default: "720h", Desc: "How long deleted notifications are kept before pruning"},

	// Database timeouts
	{Name: "db_timeout_ping", Default: "2s", Desc: "Timeout for health pings"},
	{Name: "db_timeout_short", Default: "5s", Desc: "Timeout for single-document operations"},
	{Name: "db_timeout_medium", Default: "10s", Desc: "Timeout for list queries"},
	{Name: "db_timeout_long", Default: "30s", Desc: "Timeout for uploads and multi-step writes"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, KASULA_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "KASULA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:          appValues.String("mongo_uri"),
		MongoDatabase:     appValues.String("mongo_database"),
		MongoTestDatabase: appValues.String("mongo_test_database"),
		MongoMaxPoolSize:  uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:  uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTExpiry: appValues.Duration("jwt_expiry", 30*time.Minute),

		RecoveryExpiry:      appValues.Duration("recovery_code_expiry", 15*time.Minute),
		RecoveryMaxAttempts: appValues.Int("recovery_max_attempts"),

		StorageType:       appValues.String("storage_type"),
		StorageLocalPath:  appValues.String("storage_local_path"),
		StorageLocalURL:   appValues.String("storage_local_url"),
		StorageS3Region:   appValues.String("storage_s3_region"),
		StorageS3Bucket:   appValues.String("storage_s3_bucket"),
		StorageS3Prefix:   appValues.String("storage_s3_prefix"),
		StorageS3URL:      appValues.String("storage_s3_url"),
		ImageMaxDimension: appValues.Int("image_max_dimension"),
		MaxUploadMB:       appValues.Int("max_upload_mb"),

		MailSMTPHost: appValues.String("smtp_host"),
		MailSMTPPort: appValues.Int("smtp_port"),
		MailSMTPUser: appValues.String("smtp_user"),
		MailSMTPPass: appValues.String("smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),
		BaseURL:      appValues.String("base_url"),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		LoginRateLimit:     appValues.Int("login_rate_limit"),
		Debug:              appValues.Bool("debug"),

		RecoveryCleanupInterval:   appValues.Duration("recovery_cleanup_interval", 10*time.Minute),
		NotificationPruneInterval: appValues.Duration("notification_prune_interval", time.Hour),
		NotificationRetention:     appValues.Duration("notification_retention", 30*24*time.Hour),

		DBTimeoutPing:   appValues.Duration("db_timeout_ping", 2*time.Second),
		DBTimeoutShort:  appValues.Duration("db_timeout_short", 5*time.Second),
		DBTimeoutMedium: appValues.Duration("db_timeout_medium", 10*time.Second),
		DBTimeoutLong:   appValues.Duration("db_timeout_long", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that would fail later at connect
// time or at the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.JWTExpiry <= 0 || appCfg.RecoveryExpiry <= 0 {
		return errors.New("jwt_expiry and recovery_code_expiry must be positive")
	}
	if appCfg.RecoveryMaxAttempts <= 0 {
		return errors.New("recovery_max_attempts must be positive")
	}

	switch appCfg.StorageType {
	case "local":
	case "s3":
		if appCfg.StorageS3Bucket == "" {
			return errors.New("storage_type s3 requires storage_s3_bucket")
		}
	default:
		return fmt.Errorf("unknown storage_type %q (want local or s3)", appCfg.StorageType)
	}

	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.JWTSecret == "" {
		return errors.New("jwt_secret is required when env is prod")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
