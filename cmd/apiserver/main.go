package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arachchispices/spicestore/internal/apiserver/database"
	"github.com/arachchispices/spicestore/internal/apiserver/handler"
	"github.com/arachchispices/spicestore/internal/apiserver/middleware"
	"github.com/arachchispices/spicestore/internal/apiserver/session"
	"github.com/arachchispices/spicestore/internal/common/config"
	"github.com/arachchispices/spicestore/internal/i18n"
	"github.com/arachchispices/spicestore/pkg/logger"
	"github.com/arachchispices/spicestore/pkg/metrics"
	"github.com/arachchispices/spicestore/pkg/trace"
	"github.com/arachchispices/spicestore/pkg/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "apiserver",
	Short: "Arachchi Spices business management API server",
	Run: func(cmd *cobra.Command, args []string) {
		run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", "apiserver.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	lg.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	i18n.SetDefaultLanguage(cfg.I18n.DefaultLang)
	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		lg.Warn("failed to load translations, falling back to message IDs",
			zap.String("path", cfg.I18n.Path),
			zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := trace.InitTracing(ctx, &cfg.Tracing, lg)
		if err != nil {
			lg.Fatal("failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				lg.Warn("failed to shut down tracer", zap.Error(err))
			}
		}()
	}

	store, err := database.NewStore(&cfg.Database)
	if err != nil {
		lg.Fatal("failed to create store",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	if err := store.Init(ctx); err != nil {
		lg.Fatal("failed to initialize store", zap.Error(err))
	}
	lg.Info("store initialized", zap.String("type", cfg.Database.Type))

	if err := seedSuperAdmin(ctx, store, &cfg.SuperAdmin, lg); err != nil {
		lg.Fatal("failed to seed super admin", zap.Error(err))
	}

	sessions, err := session.NewStore(&cfg.Session)
	if err != nil {
		lg.Fatal("failed to create session store",
			zap.String("type", cfg.Session.Type),
			zap.Error(err))
	}

	uploads, err := handler.NewUploads(&cfg.Uploads)
	if err != nil {
		lg.Fatal("failed to prepare upload directory",
			zap.String("dir", cfg.Uploads.Dir),
			zap.Error(err))
	}

	router := buildRouter(cfg, store, sessions, uploads, lg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		lg.Info("listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("forced shutdown", zap.Error(err))
	}
	lg.Info("server stopped")
}

// seedSuperAdmin creates the configured administrator account on first
// start. An existing account with the same username is left untouched.
func seedSuperAdmin(ctx context.Context, store database.Store, cfg *config.SuperAdminConfig, lg *zap.Logger) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	if _, err := store.GetUserByUsername(ctx, cfg.Username); err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &database.User{
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: string(hashed),
		Role:     database.RoleAdmin,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}
	lg.Info("super admin created", zap.String("username", cfg.Username))
	return nil
}

func buildRouter(cfg *config.APIServerConfig, store database.Store, sessions session.Store, uploads *handler.Uploads, lg *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Language())
	router.Use(middleware.Sessions(sessions, cfg.Session.CookieName))

	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
		router.Use(m.GinMiddleware())
		router.GET("/metrics", m.Handler())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})
	router.Static("/uploads", cfg.Uploads.Dir)

	authHandler := handler.NewAuth(store, sessions, &cfg.Session, lg)
	productHandler := handler.NewProduct(store, uploads, lg)
	inventoryHandler := handler.NewInventory(store, lg)
	customerHandler := handler.NewCustomer(store, lg)
	supplierHandler := handler.NewSupplier(store, lg)
	orderHandler := handler.NewOrder(store, uploads, lg)
	feedbackHandler := handler.NewFeedback(store, lg)
	deliveryHandler := handler.NewDelivery(store, lg)
	adminHandler := handler.NewAdmin(store, lg)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/logout", authHandler.Logout) // legacy clients log out with GET
		auth.GET("/session", middleware.RequireSession(), authHandler.Session)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", middleware.RequireSession(), productHandler.Create)
		products.PUT("/:id", middleware.RequireSession(), productHandler.Update)
		products.DELETE("/:id", middleware.RequireSession(), productHandler.Delete)
	}

	inventory := api.Group("/inventory", middleware.RequireSession())
	{
		inventory.GET("", inventoryHandler.List)
		inventory.GET("/:id", inventoryHandler.Get)
		inventory.POST("", inventoryHandler.Create)
		inventory.PUT("/:id", inventoryHandler.Update)
		inventory.DELETE("/:id", inventoryHandler.Delete)
	}

	customers := api.Group("/customers", middleware.RequireSession())
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.POST("", customerHandler.Create)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
	}

	suppliers := api.Group("/suppliers", middleware.RequireSession())
	{
		suppliers.GET("", supplierHandler.List)
		suppliers.GET("/:id", supplierHandler.Get)
		suppliers.POST("", supplierHandler.Create)
		suppliers.PUT("/:id", supplierHandler.Update)
		suppliers.DELETE("/:id", supplierHandler.Delete)
	}

	orders := api.Group("/orders", middleware.RequireSession())
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("", orderHandler.Create)
		orders.PUT("/:id", orderHandler.Update)
		orders.DELETE("/:id", orderHandler.Delete)
	}

	feedback := api.Group("/feedback")
	{
		feedback.GET("", feedbackHandler.List)
		feedback.GET("/:id", feedbackHandler.Get)
		feedback.POST("", feedbackHandler.Create)
		feedback.PUT("/:id/approve", middleware.RequireAdmin(), feedbackHandler.Approve)
		feedback.PUT("/:id/reject", middleware.RequireAdmin(), feedbackHandler.Reject)
		feedback.DELETE("/:id", middleware.RequireAdmin(), feedbackHandler.Delete)
	}

	deliveries := api.Group("/deliveries", middleware.RequireSession())
	{
		deliveries.GET("", deliveryHandler.List)
		deliveries.GET("/:id", deliveryHandler.Get)
		deliveries.POST("", deliveryHandler.Create)
		deliveries.PUT("/:id", deliveryHandler.Update)
		deliveries.PUT("/:id/status", middleware.RequireAdmin(), deliveryHandler.UpdateStatus)
		deliveries.DELETE("/:id", deliveryHandler.Delete)
	}

	admin := api.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/users", adminHandler.Users)
	}

	analytics := api.Group("/analytics", middleware.RequireAdmin())
	{
		analytics.GET("/orders", adminHandler.OrderAnalytics)
	}

	return router
}
