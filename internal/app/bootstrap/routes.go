// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	collectionsfeature "github.com/dalemusser/kasula/internal/app/features/collections"
	errorsfeature "github.com/dalemusser/kasula/internal/app/features/errors"
	healthfeature "github.com/dalemusser/kasula/internal/app/features/health"
	notificationsfeature "github.com/dalemusser/kasula/internal/app/features/notifications"
	recipesfeature "github.com/dalemusser/kasula/internal/app/features/recipes"
	reviewsfeature "github.com/dalemusser/kasula/internal/app/features/reviews"
	usersfeature "github.com/dalemusser/kasula/internal/app/features/users"
	"github.com/dalemusser/kasula/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for Kasula.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It installs the global middleware and
// mounts one feature router per resource:
// users, recipes, reviews, collections and notifications.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc := deps.Services
	if svc == nil || svc.Tokens == nil {
		return nil, errors.New("services not initialised; Startup must run before BuildHandler")
	}
	db := deps.MongoDatabase

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger, appCfg.Debug))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: attaches the bearer token's user to the
	// context when present. Handlers read it via auth.CurrentUser(r).
	r.Use(svc.Tokens.LoadUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	if appCfg.StorageType != "s3" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	usersHandler := usersfeature.NewHandler(db, svc.Tokens, svc.Mail, svc.Images, usersfeature.Options{
		BaseURL:             appCfg.BaseURL,
		MaxUploadMB:         appCfg.MaxUploadMB,
		RecoveryExpiry:      appCfg.RecoveryExpiry,
		RecoveryMaxAttempts: appCfg.RecoveryMaxAttempts,
		LoginRateLimit:      appCfg.LoginRateLimit,
	}, errLog, logger)
	r.Mount("/user", usersfeature.Routes(usersHandler))

	recipesHandler := recipesfeature.NewHandler(db, svc.Images, appCfg.MaxUploadMB, errLog, logger)
	r.Mount("/recipe", recipesfeature.Routes(recipesHandler))

	reviewsHandler := reviewsfeature.NewHandler(db, svc.Images, appCfg.MaxUploadMB, errLog, logger)
	r.Mount("/review", reviewsfeature.Routes(reviewsHandler))

	collectionsHandler := collectionsfeature.NewHandler(db, errLog, logger)
	r.Mount("/collection", collectionsfeature.Routes(collectionsHandler))

	notificationsHandler := notificationsfeature.NewHandler(db, errLog, logger)
	r.Mount("/notification", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
