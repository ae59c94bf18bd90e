// Package main provides the entry point for the StreamVault catalog server.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"streamvault/database"
	"streamvault/repository"
	"streamvault/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// App represents the application with its dependencies
type App struct {
	movieRepo     *repository.MovieRepository
	watchlistRepo *repository.WatchlistRepository
	downloadRepo  *repository.DownloadRepository
	userRepo      *repository.UserRepository
	tmdbService   *services.TMDBService
	streamService *services.StreamService
	authService   *services.AuthService
	sessions      *services.SessionService
	authLimiter   *ipRateLimiter
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Initialize database
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "streamvault.db"
	}
	db, err := database.NewDB(dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// Initialize schema
	if err := db.InitSchema(); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	// Initialize repositories
	movieRepo := repository.NewMovieRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize TMDB service. A missing key disables TMDB-backed endpoints
	// but the catalog keeps serving.
	tmdbAPIKey := os.Getenv("TMDB_API_KEY")
	if tmdbAPIKey == "" {
		log.Println("Warning: TMDB_API_KEY not set - TMDB browsing and imports will fail")
	}
	tmdbService := services.NewTMDBService(tmdbAPIKey)

	// Initialize stream search proxy
	streamAPIURL := os.Getenv("STREAM_API_URL")
	if streamAPIURL == "" {
		log.Println("Warning: STREAM_API_URL not set - stream search will be unavailable")
	}
	streamService := services.NewStreamService(streamAPIURL)

	// Initialize sessions and auth
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret-change-me"
		log.Println("Warning: SESSION_SECRET not set - using insecure default")
	}
	sessionService := services.NewSessionService(sessionSecret, os.Getenv("ENVIRONMENT") == "production")
	authService := services.NewAuthService(userRepo)

	app := &App{
		movieRepo:     movieRepo,
		watchlistRepo: watchlistRepo,
		downloadRepo:  downloadRepo,
		userRepo:      userRepo,
		tmdbService:   tmdbService,
		streamService: streamService,
		authService:   authService,
		sessions:      sessionService,
		authLimiter:   newIPRateLimiter(rate.Every(12*time.Second), 5),
	}

	// Seed the catalog in the background on first run
	if tmdbAPIKey != "" {
		seeder := services.NewSeeder(tmdbService, movieRepo)
		go func() {
			if err := seeder.Seed(); err != nil {
				log.Printf("Catalog seeding failed: %v", err)
			}
		}()
	} else {
		log.Println("No TMDB_API_KEY set, skipping catalog seeding")
	}

	r := app.routes()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("Server starting on %s", addr)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Fatal(server.ListenAndServe())
}

// routes builds the application router
func (app *App) routes() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Catalog endpoints. Static paths come before the {id} routes.
	api.HandleFunc("/movies", app.getMoviesHandler).Methods("GET")
	api.HandleFunc("/movies", app.createMovieHandler).Methods("POST")
	api.HandleFunc("/movies/featured", app.getFeaturedMoviesHandler).Methods("GET")
	api.HandleFunc("/movies/search", app.searchMoviesHandler).Methods("GET")
	api.HandleFunc("/movies/{id}", app.getMovieHandler).Methods("GET")
	api.HandleFunc("/movies/{id}", app.updateMovieHandler).Methods("PATCH")
	api.HandleFunc("/movies/{id}", app.deleteMovieHandler).Methods("DELETE")

	// TMDB browsing endpoints
	api.HandleFunc("/tmdb/trending", app.tmdbTrendingHandler).Methods("GET")
	api.HandleFunc("/tmdb/popular", app.tmdbPopularHandler).Methods("GET")
	api.HandleFunc("/tmdb/top-rated", app.tmdbTopRatedHandler).Methods("GET")
	api.HandleFunc("/tmdb/now-playing", app.tmdbNowPlayingHandler).Methods("GET")
	api.HandleFunc("/tmdb/upcoming", app.tmdbUpcomingHandler).Methods("GET")
	api.HandleFunc("/tmdb/discover", app.tmdbDiscoverHandler).Methods("GET")
	api.HandleFunc("/tmdb/search", app.tmdbSearchHandler).Methods("GET")
	api.HandleFunc("/tmdb/genres", app.tmdbGenresHandler).Methods("GET")
	api.HandleFunc("/tmdb/check/{tmdbId}", app.tmdbCheckImportedHandler).Methods("GET")
	api.HandleFunc("/tmdb/movie/{id}", app.tmdbMovieDetailHandler).Methods("GET")
	api.HandleFunc("/tmdb/import/{tmdbId}", app.tmdbImportHandler).Methods("POST")

	// Per-user lists (session required)
	api.HandleFunc("/watchlist", app.getWatchlistHandler).Methods("GET")
	api.HandleFunc("/watchlist", app.addToWatchlistHandler).Methods("POST")
	api.HandleFunc("/watchlist/check/{tmdbId}", app.checkWatchlistHandler).Methods("GET")
	api.HandleFunc("/watchlist/{tmdbId}", app.removeFromWatchlistHandler).Methods("DELETE")
	api.HandleFunc("/downloads", app.getDownloadsHandler).Methods("GET")
	api.HandleFunc("/downloads", app.addDownloadHandler).Methods("POST")
	api.HandleFunc("/downloads/check/{tmdbId}", app.checkDownloadHandler).Methods("GET")
	api.HandleFunc("/downloads/{tmdbId}", app.removeDownloadHandler).Methods("DELETE")

	// Auth endpoints
	api.HandleFunc("/auth/register", app.registerHandler).Methods("POST")
	api.HandleFunc("/auth/login", app.loginHandler).Methods("POST")
	api.HandleFunc("/auth/logout", app.logoutHandler).Methods("POST")
	api.HandleFunc("/auth/user", app.currentUserHandler).Methods("GET")

	// Stream search proxy
	api.HandleFunc("/stream/search", app.streamSearchHandler).Methods("GET")
	api.HandleFunc("/stream/links", app.streamLinksHandler).Methods("GET")

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
