package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking/cache"
	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/routes"
	"hotel-booking/services"
)

// buildCacheStore picks the cache backend from config, falling back to
// memory when a durable backend can't be opened.
func buildCacheStore(cfg config.CacheConfig) cache.Store {
	switch cfg.Backend {
	case "redis":
		addr := cfg.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
			log.Println("⚠️  redisAddr not set, using localhost:6379")
		}
		log.Printf("✅ Cache backend: redis (%s)", addr)
		return cache.NewRedisStore(addr)
	case "file":
		store, err := cache.NewFileStore(cfg.FilePath)
		if err != nil {
			log.Printf("⚠️  cache file %q unusable (%v), falling back to memory", cfg.FilePath, err)
			return cache.NewMemoryStore()
		}
		log.Printf("✅ Cache backend: file (%s)", cfg.FilePath)
		return store
	default:
		log.Println("✅ Cache backend: memory")
		return cache.NewMemoryStore()
	}
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("❌ Config load failed: %v", err)
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Response cache shared by every service
	responseCache := cache.NewWithTTL(buildCacheStore(cfg.Cache), cfg.Cache.DefaultTTLDuration())

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	roomService := services.NewRoomService(db, responseCache)
	bookingService := services.NewBookingService(db, responseCache, availabilityService)
	userService := services.NewUserService(db, responseCache)

	// Initialize controllers
	roomController := controllers.NewRoomController(roomService, availabilityService)
	bookingController := controllers.NewBookingController(bookingService)
	authController := controllers.NewAuthController(userService, responseCache)
	userController := controllers.NewUserController(userService)

	// Build router
	router := routes.SetupRouter(roomController, bookingController, authController, userController)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
