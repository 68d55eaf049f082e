// internal/app/features/users/handler.go
package users

import (
	"time"

	apierrors "github.com/dalemusser/kasula/internal/app/features/errors"
	recoverystore "github.com/dalemusser/kasula/internal/app/store/recovery"
	userstore "github.com/dalemusser/kasula/internal/app/store/users"
	"github.com/dalemusser/kasula/internal/app/system/auth"
	"github.com/dalemusser/kasula/internal/app/system/imagestore"
	"github.com/dalemusser/kasula/internal/app/system/limits"
	"github.com/dalemusser/kasula/internal/app/system/mailer"
	"github.com/dalemusser/kasula/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Options carries the settings the user endpoints read from AppConfig.
type Options struct {
	SiteName            string
	BaseURL             string
	MaxUploadMB         int
	RecoveryExpiry      time.Duration
	RecoveryMaxAttempts int
	LoginRateLimit      int
}

// Handler owns registration, login, profile, follow and password recovery.
type Handler struct {
	Users    *userstore.Store
	Recovery *recoverystore.Store
	Tokens   *auth.Manager
	Mail     mailer.Sender
	Images   *imagestore.Uploader
	Notify   *notify.Notifier
	Opts     Options

	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(
	db *mongo.Database,
	tokens *auth.Manager,
	mail mailer.Sender,
	images *imagestore.Uploader,
	opts Options,
	errLog *apierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	if opts.SiteName == "" {
		opts.SiteName = "Kasula"
	}
	users := userstore.New(db)
	return &Handler{
		Users:    users,
		Recovery: recoverystore.New(db, opts.RecoveryExpiry, opts.RecoveryMaxAttempts),
		Tokens:   tokens,
		Mail:     mail,
		Images:   images,
		Notify:   notify.New(users, logger),
		Opts:     opts,
		Log:      logger,
		ErrLog:   errLog,
	}
}

func (h *Handler) maxUploadBytes() int64 {
	return limits.UploadBytes(h.Opts.MaxUploadMB)
}
