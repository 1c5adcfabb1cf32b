package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"studyhub/internal/cache"
	"studyhub/internal/config"
	"studyhub/internal/constants"
	"studyhub/internal/database"
	"studyhub/internal/handlers"
	"studyhub/internal/logger"
	"studyhub/internal/middleware"
	"studyhub/internal/repository"
	"studyhub/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zlog, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zlog.Fatalw("Failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zlog.Fatalw("Failed to run migrations", "error", err)
	}

	// View cache for profile and dashboard reads
	views := cache.NewRedisStore(cfg.RedisAddr())
	if err := views.Ping(context.Background()); err != nil {
		zlog.Fatalw("Failed to connect to Redis", "error", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,
		"tcp",
		cfg.RedisAddr(),
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		zlog.Fatalw("Failed to create Redis session store", "error", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	profileService := services.NewProfileService(profileRepo, userRepo, taskRepo, views, zlog)
	taskService := services.NewTaskService(taskRepo)
	roadmapService := services.NewRoadmapService(roadmapRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, zlog)
	profileHandler := handlers.NewProfileHandler(profileService, zlog)
	taskHandler := handlers.NewTaskHandler(taskService, zlog)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService, zlog)
	dashboardHandler := handlers.NewDashboardHandler(profileService, zlog)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Student Portal API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/start", taskHandler.StartTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
		}

		// Roadmap routes (protected)
		roadmaps := api.Group("/roadmaps")
		roadmaps.Use(middleware.RequireAuth())
		{
			roadmaps.GET("", roadmapHandler.ListRoadmaps)
			roadmaps.GET("/:id", roadmapHandler.GetRoadmap)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
		}
	}

	// Start server
	zlog.Infow("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatalw("Failed to start server", "error", err)
	}
}
