// Command Blog-Project runs the blog server. It wires configuration, the
// database pool and migrations, the services and HTTP handlers, the chi
// router with its middleware stack, and an http.Server with graceful
// shutdown.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Charchl1/Blog-Project/auth"
	"github.com/Charchl1/Blog-Project/background"
	"github.com/Charchl1/Blog-Project/comments"
	"github.com/Charchl1/Blog-Project/config"
	"github.com/Charchl1/Blog-Project/db"
	"github.com/Charchl1/Blog-Project/posts"
	"github.com/Charchl1/Blog-Project/web"
)

func main() {
	// .env is a development convenience; production sets the environment
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	// Idempotent schema initialization.
	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	render, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	cookies := auth.NewCookieManager(cfg.Session)

	authService := auth.NewService(pool, *cfg.Session)
	authHandlers := auth.NewHandlers(authService, cookies, render)

	commentService := comments.NewService(pool)
	postService := posts.NewService(pool)
	postHandlers := posts.NewHandlers(postService, commentService, render)

	// Expired sessions are purged in the background; the stop channel ties
	// the service into the shutdown sequence below.
	cleanupStopChan := make(chan struct{})
	cleanupWg := background.StartSessionCleanupService(authService, cleanupStopChan)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every request resolves its identity once; handlers read it from the
	// request context.
	r.Use(auth.LoadIdentity(authService, cookies, render))

	r.NotFound(render.NotFound)

	r.Get("/", postHandlers.HandleHome())

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandlers.HandleList())

		r.Route("/new", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/", postHandlers.HandleNewForm())
			r.Post("/", postHandlers.HandleCreate())
		})

		r.Get("/{id}", postHandlers.HandleShow())
		r.Post("/{id}", postHandlers.HandleAddComment())

		r.Route("/{id}/edit", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/", postHandlers.HandleEditForm())
			r.Post("/", postHandlers.HandleUpdate())
		})

		r.With(auth.RequireAdmin).Get("/{id}/delete", postHandlers.HandleDelete())
	})

	r.Get("/about", postHandlers.HandleAbout())
	r.Get("/contact", postHandlers.HandleContact())

	r.Get("/register", authHandlers.HandleRegisterForm())
	r.Post("/register", authHandlers.HandleRegister())
	r.Get("/login", authHandlers.HandleLoginForm())
	r.Post("/login", authHandlers.HandleLogin())

	r.Route("/logout", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/", authHandlers.HandleLogout())
		r.Post("/", authHandlers.HandleLogout())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	close(cleanupStopChan)
	cleanupWg.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
