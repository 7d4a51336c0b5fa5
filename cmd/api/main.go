package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/handlers"
	"github.com/rentora/rentora-api/internal/mailer"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/service"
	"github.com/rentora/rentora-api/pkg/config"
	"github.com/rentora/rentora-api/pkg/database"
	"github.com/rentora/rentora-api/pkg/logger"
	mw "github.com/rentora/rentora-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to redis (rate limiting)
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// Initialize mailer
	var mailService mailer.Service
	if cfg.Email.DevMode {
		mailService = mailer.NewDevMailer()
	} else {
		mailService = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, mailService, cfg)
	userService := service.NewUserService(userRepo, mailService)
	propertyService := service.NewPropertyService(propertyRepo)
	bookingService := service.NewBookingService(bookingRepo, propertyRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)
	adminService := service.NewAdminService(adminRepo, userRepo)

	// Initialize handlers
	h := handlers.New(authService, userService, propertyService, bookingService, messageService, adminService, cfg)

	authLimiter := mw.NewRateLimiter(redisClient, mw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		Prefix:   "auth",
	})

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Routes
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware())
		r.Post("/register", h.Register)
		r.Post("/verify", h.VerifyEmail)
		r.Post("/login", h.Login)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/me", h.GetProfile)
		r.Put("/me", h.UpdateProfile)
		r.Put("/password", h.ChangePassword)
		r.Post("/verify", h.ConfirmCode)

		r.With(h.RequireRole(domain.RoleAdmin)).Get("/admin-only", h.RoleProbe(domain.RoleAdmin))
		r.With(h.RequireRole(domain.RoleOwner)).Get("/owner-only", h.RoleProbe(domain.RoleOwner))
		r.With(h.RequireRole(domain.RoleRenter)).Get("/renter-only", h.RoleProbe(domain.RoleRenter))
	})

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.ListProperties)
		r.With(h.RequireAuth, h.RequireRole(domain.RoleOwner)).Post("/", h.CreateProperty)
		r.With(h.RequireAuth, h.RequireRole(domain.RoleOwner)).Get("/me", h.ListMyProperties)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.With(h.RequireRole(domain.RoleRenter)).Post("/", h.CreateBooking)
		r.With(h.RequireRole(domain.RoleRenter)).Get("/me", h.ListMyBookings)
		r.With(h.RequireRole(domain.RoleOwner)).Get("/property/{id}", h.ListPropertyBookings)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Post("/", h.SendMessage)
		r.Get("/received", h.ListReceivedMessages)
		r.Get("/sent", h.ListSentMessages)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(h.RequireRole(domain.RoleAdmin))
		r.Get("/users", h.ListUsers)
		r.Delete("/users/{id}", h.DeleteUser)
		r.Delete("/properties/{id}", h.DeleteProperty)
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
