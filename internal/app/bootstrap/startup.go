// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	recoverystore "github.com/dalemusser/kasula/internal/app/store/recovery"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/mailer"
	"github.com/dalemusser/kasula/internal/app/system/tasks"
	"github.com/dalemusser/kasula/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It
// configures timeouts, builds the token manager, mailer and image store,
// and starts the background jobs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.DBTimeoutPing,
		Short:  appCfg.DBTimeoutShort,
		Medium: appCfg.DBTimeoutMedium,
		Long:   appCfg.DBTimeoutLong,
	})

	if deps.Services == nil {
		return fmt.Errorf("startup: DBDeps.Services is nil; ConnectDB allocates it")
	}
	svc, err := buildServices(ctx, appCfg, deps, logger)
	if err != nil {
		return err
	}
	*deps.Services = *svc

	deps.Services.Jobs = tasks.NewScheduler(logger,
		tasks.RecoveryCleanupJob(
			recoverystore.New(deps.MongoDatabase, appCfg.RecoveryExpiry, appCfg.RecoveryMaxAttempts),
			logger, appCfg.RecoveryCleanupInterval),
		tasks.NotificationPruneJob(
			userstore.New(deps.MongoDatabase),
			logger, appCfg.NotificationPruneInterval, appCfg.NotificationRetention),
	)
	deps.Services.Jobs.Start()
	return nil
}

func buildServices(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*Services, error) {
	secret := appCfg.JWTSecret
	if secret == "" {
		s, err := randomSecret()
		if err != nil {
			return nil, err
		}
		secret = s
		logger.Warn("jwt_secret not set; using a random per-process secret (tokens will not survive restarts)")
	}
	tokens, err := auth.NewManager(secret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}
	// Tokens for deleted accounts are rejected on every request.
	tokens.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	store, err := newImageStore(ctx, appCfg)
	if err != nil {
		logger.Error("image store init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	return &Services{
		Tokens: tokens,
		Mail:   mail,
		Images: imagestore.NewUploader(store, appCfg.ImageMaxDimension, logger),
	}, nil
}

func newImageStore(ctx context.Context, appCfg AppConfig) (imagestore.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		return imagestore.NewS3(ctx, imagestore.S3Config{
			Region:    appCfg.StorageS3Region,
			Bucket:    appCfg.StorageS3Bucket,
			Prefix:    appCfg.StorageS3Prefix,
			PublicURL: appCfg.StorageS3URL,
		})
	case "local", "":
		return imagestore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
	}
	return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
