package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/config"
	"github.com/yukikurage/task-notes-api/internal/constants"
	"github.com/yukikurage/task-notes-api/internal/database"
	"github.com/yukikurage/task-notes-api/internal/handlers"
	"github.com/yukikurage/task-notes-api/internal/logger"
	"github.com/yukikurage/task-notes-api/internal/middleware"
	"github.com/yukikurage/task-notes-api/internal/ratelimit"
	"github.com/yukikurage/task-notes-api/internal/repository"
	"github.com/yukikurage/task-notes-api/internal/services"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	if keys := cfg.DefaultSecrets(); len(keys) > 0 {
		log.Warn("Using placeholder secrets, set them before deploying", "keys", keys)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	store, err := newSessionStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to create session store", "error", err)
	}

	var limiter ratelimit.Limiter
	if addr := cfg.RedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		limiter = ratelimit.NewSlidingWindow(client, cfg.SummarizeRateLimit, cfg.SummarizeRateWindow, "ratelimit:summarize:")
	} else {
		log.Warn("REDIS_HOST not set, summarize rate limiting disabled")
	}

	// Initialize AI service
	var generator services.TextGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey, services.AIOptions{
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.AITimeout,
		})
	} else {
		log.Warn("OPENAI_API_KEY not set, task summaries disabled")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	r := newRouter(cfg, log, db, store, tokens, limiter, generator)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// newSessionStore uses Redis when configured and signed cookies otherwise.
func newSessionStore(cfg *config.Config, log *logger.Logger) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		log.Warn("REDIS_HOST not set, using cookie session store")
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func newRouter(
	cfg *config.Config,
	log *logger.Logger,
	db *gorm.DB,
	store sessions.Store,
	tokens *auth.TokenManager,
	limiter ratelimit.Limiter,
	generator services.TextGenerator,
) *gin.Engine {
	taskRepo := repository.NewTaskRepository(db)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db)), tokens, log)
	summaryService := services.NewSummaryService(taskRepo, generator, log)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskRepo, log), summaryService)
	noteHandler := handlers.NewNoteHandler(services.NewNoteService(repository.NewNoteRepository(db), log))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadIdentity(tokens))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Task Notes API is running",
			"summaries": summaryService.Configured(),
		})
	})

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Unauthenticated callers reach the services, which report UNAUTHORIZED.
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.ResolveResourceID(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.ResolveResourceID(), taskHandler.EditTask)
			tasks.PATCH("/:id/status", middleware.ResolveResourceID(), taskHandler.UpdateStatus)
			tasks.DELETE("/:id", middleware.ResolveResourceID(), taskHandler.DeleteTask)
			tasks.POST("/:id/summarize", middleware.ResolveResourceID(), middleware.RateLimitPerUser(limiter, log), taskHandler.SummarizeTask)
		}

		notes := api.Group("/notes")
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.GET("/:id", middleware.ResolveResourceID(), noteHandler.GetNote)
			notes.PUT("/:id", middleware.ResolveResourceID(), noteHandler.UpdateNote)
			notes.DELETE("/:id", middleware.ResolveResourceID(), noteHandler.DeleteNote)
		}
	}

	return r
}
