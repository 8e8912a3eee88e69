//	@title			MetroArt API
//	@version		1.0
//	@description	Backend for MetroArt — an online gallery for artists to publish and verify their work.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/saifaleee/MetroArt/internal/artwork"
	"github.com/saifaleee/MetroArt/internal/auth"
	"github.com/saifaleee/MetroArt/internal/config"
	"github.com/saifaleee/MetroArt/internal/db"
	appMiddleware "github.com/saifaleee/MetroArt/internal/middleware"
	"github.com/saifaleee/MetroArt/internal/storage"
	"github.com/saifaleee/MetroArt/internal/user"

	_ "github.com/saifaleee/MetroArt/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(storage.Config{
		Endpoint:   cfg.StorageEndpoint,
		AccessKey:  cfg.StorageAccessKey,
		SecretKey:  cfg.StorageSecretKey,
		Bucket:     cfg.StorageBucket,
		Region:     cfg.StorageRegion,
		UseSSL:     cfg.StorageUseSSL,
		PublicBase: cfg.StoragePublicBase,
	})
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}
	resolver := storage.NewURLResolver(store, cfg.PresignTTL)

	// Wire dependencies: repository → service → handler
	userRepo := user.NewRepository(pool)
	userSvc := user.NewService(userRepo)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := auth.NewService(userSvc, tokens)
	authHandler := auth.NewHandler(authSvc)

	artRepo := artwork.NewRepository(pool)
	artSvc := artwork.NewService(artRepo, store, resolver, userSvc)
	artHandler := artwork.NewHandler(artSvc, cfg.UploadMaxBytes)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.RequireAuth(tokens))
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/art", func(r chi.Router) {
			// Public reads. /my-art is registered before /{id} so the
			// literal path always wins over the identifier pattern.
			r.Get("/", artHandler.List)
			r.Get("/image/*", artHandler.ServeImage)
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.RequireAuth(tokens))
				r.Get("/my-art", artHandler.MyArt)
				r.Post("/", artHandler.Create)
				r.Put("/{id}", artHandler.Update)
				r.Delete("/{id}", artHandler.Delete)
			})
			r.Get("/{id}", artHandler.Get)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
