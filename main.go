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

	"roamio/live"
	"roamio/ratelim"
	"roamio/routes"
	"roamio/session"
	"roamio/store"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		// Referrer and permissions
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// setupRouter builds the router with every route group.
func setupRouter(rateLimiter *ratelim.RateLimiter, backend store.Backend, manager *session.Manager, hub *live.Hub) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	api := &routes.API{Manager: manager}

	routes.AddTenantRoutes(router, rateLimiter, backend, manager)
	routes.AddSearchRoutes(router, rateLimiter, api)
	routes.AddListRoutes(router, rateLimiter, api)
	routes.AddPlannerRoutes(router, rateLimiter, api, hub)
	routes.AddTripRoutes(router, rateLimiter, api, backend)
	routes.AddVoiceRoutes(router, rateLimiter, api)
	routes.AddGeoRoutes(router, rateLimiter, api)
	routes.AddViewRoutes(router, rateLimiter, api)
	routes.AddProfileRoutes(router, rateLimiter, backend)

	// avatars and other generated assets
	router.ServeFiles("/static/*filepath", http.Dir("./static"))

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read listen address
	addr := os.Getenv("ROAMIO_ADDR")
	if addr == "" {
		addr = ":8080"
	} else if addr[0] != ':' {
		addr = ":" + addr
	}

	// initialize rate limiter
	rateLimiter := ratelim.NewRateLimiter()

	// open the key-value backend (redis by default, mongo or memory via STORE_BACKEND)
	backend := store.Open()

	// initialize progress hub
	hub := live.NewHub()
	go hub.Run()

	// per-tenant session manager
	manager := session.NewManager(session.ConfigFromEnv(), backend, hub)

	router := setupRouter(rateLimiter, backend, manager, hub)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	// create HTTP server
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      45 * time.Second, // plan generation can take a while

		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: stop progress hub, cleanup
	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down progress hub...")
		hub.Stop()
	})

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	// initiate graceful shutdown
	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
