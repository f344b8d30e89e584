package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"sallyo/cmd/fx/account_fx"
	"sallyo/cmd/fx/brief_fx"
	"sallyo/cmd/fx/config_fx"
	"sallyo/cmd/fx/controllers_fx"
	"sallyo/cmd/fx/db_fx"
	"sallyo/cmd/fx/logger_fx"
	"sallyo/cmd/fx/memcache_fx"
	"sallyo/cmd/fx/onboarding_fx"
	"sallyo/internal/api/controllers"
	"sallyo/internal/config"
	"sallyo/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		brief_fx.Module,
		onboarding_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg config.Config,
	accountController *controllers.AccountController,
	onboardingController *controllers.OnboardingController) *gin.Engine {

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, []byte(cfg.JWTSecret), accountController, onboardingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	secret []byte,
	accountController *controllers.AccountController,
	onboardingController *controllers.OnboardingController) {

	auth := middleware.JWTAuthMiddleware(secret)

	authGroup := r.Group("/auth")
	authGroup.POST("/google", accountController.GoogleLogin)

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.GET("/me", auth, accountController.Me)

	onboardingGroup := r.Group("/onboarding")
	onboardingGroup.GET("/steps", onboardingController.ListSteps)
	onboardingGroup.GET("/preferences", auth, onboardingController.GetPreferences)

	sessionGroup := onboardingGroup.Group("/sessions", auth)
	sessionGroup.POST("", onboardingController.StartSession)
	sessionGroup.GET("/:id", onboardingController.GetSession)
	sessionGroup.POST("/:id/toggle", onboardingController.Toggle)
	sessionGroup.POST("/:id/select", onboardingController.Select)
	sessionGroup.POST("/:id/guests/increment", onboardingController.IncrementGuests)
	sessionGroup.POST("/:id/guests/decrement", onboardingController.DecrementGuests)
	sessionGroup.POST("/:id/advance", onboardingController.Advance)
	sessionGroup.POST("/:id/retreat", onboardingController.Retreat)
}
