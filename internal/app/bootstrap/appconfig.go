// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for Kasula.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They are *app-level*
// settings; HTTP ports, TLS and log level live in WAFFLE's CoreConfig.
//
// The struct is passed to every lifecycle hook, so anything needed during
// startup, request handling, or shutdown should live here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI          string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase     string // Database name within MongoDB
	MongoTestDatabase string // Database name used by integration tests
	MongoMaxPoolSize  uint64
	MongoMinPoolSize  uint64

	// Bearer tokens
	JWTSecret string        // HS256 signing key; required in prod
	JWTExpiry time.Duration // Token lifetime

	// Password recovery
	RecoveryExpiry      time.Duration
	RecoveryMaxAttempts int

	// Image storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region string
	StorageS3Bucket string
	StorageS3Prefix string
	StorageS3URL    string // Public base URL, e.g. a CDN; blank uses the bucket URL

	ImageMaxDimension int // Longest edge after resize
	MaxUploadMB       int // Multipart body limit

	// Email/SMTP configuration. An empty host logs mail instead of sending.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL used in email links
	BaseURL string

	CORSAllowedOrigins []string
	LoginRateLimit     int // Requests per minute per IP on credential endpoints
	Debug              bool

	// Background jobs; a zero interval disables the job
	RecoveryCleanupInterval   time.Duration
	NotificationPruneInterval time.Duration
	NotificationRetention     time.Duration

	// Database operation timeouts
	DBTimeoutPing   time.Duration
	DBTimeoutShort  time.Duration
	DBTimeoutMedium time.Duration
	DBTimeoutLong   time.Duration
}
