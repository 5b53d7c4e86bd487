package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/auth"
	"github.com/xxxsen/micropost/internal/config"
	"github.com/xxxsen/micropost/internal/db"
	"github.com/xxxsen/micropost/internal/handler"
	"github.com/xxxsen/micropost/internal/job"
	"github.com/xxxsen/micropost/internal/middleware"
	"github.com/xxxsen/micropost/internal/render"
	"github.com/xxxsen/micropost/internal/repo"
	"github.com/xxxsen/micropost/internal/schedule"
	"github.com/xxxsen/micropost/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "micropost",
		Short: "micropost server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run micropost server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			conn, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServer(cfg, conn)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			conn, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			logutil.GetLogger(context.Background()).Info("migrations applied")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd, migrateCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(ctx, conn.DB); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return conn, nil
}

func runServer(cfg *config.Config, conn *sqlx.DB) error {
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("posts_per_page", cfg.PostsPerPage),
		zap.Duration("token_ttl", cfg.TokenTTL()),
	)

	userRepo := repo.NewUserRepo(conn)
	postRepo := repo.NewMicroPostRepo(conn)
	followRepo := repo.NewFollowRepo(conn)

	secret := []byte(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, secret, cfg.TokenTTL())
	userService := service.NewUserService(userRepo)
	followService := service.NewFollowService(userRepo, followRepo)
	postService := service.NewMicroPostService(postRepo)

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService, handler.CookieSettings{Name: cfg.Cookie.Name, Insecure: cfg.Cookie.Insecure}),
		Users:         handler.NewUserHandler(userService, authService, followService, postService),
		Follows:       handler.NewFollowHandler(followService),
		Posts:         handler.NewMicroPostHandler(postService, render.NewMarkdown(), cfg.PostsPerPage),
		Authenticator: auth.NewAuthenticator(userRepo, secret),
		CookieName:    cfg.Cookie.Name,
		RateWindow:    cfg.RateLimit.Window(),
		RateMaxKeys:   cfg.RateLimit.MaxKeys,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.Metrics(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewStatsJob(userRepo, postRepo), cfg.Jobs.StatsSpec()); err != nil {
		return fmt.Errorf("schedule stats job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
