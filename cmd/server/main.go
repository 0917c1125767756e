package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"portaldocs/internal/auth"
	"portaldocs/internal/config"
	"portaldocs/internal/handler"
	"portaldocs/internal/middleware"
	"portaldocs/internal/repository/postgres"
	"portaldocs/internal/repository/postgres/migrations"
	"portaldocs/internal/service"
	"portaldocs/internal/taxonomy"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "portaldocs",
		Short: "Document classification and versioning engine for the transparency portal",
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				if err := migrations.MigrateUp(cfg.DatabaseURL); err != nil {
					return err
				}
				fmt.Println("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				version, dirty, err := migrations.Version(cfg.DatabaseURL)
				if err != nil {
					return err
				}
				fmt.Printf("version: %d dirty: %v\n", version, dirty)
				return nil
			},
		},
	)
	return migrate
}

func runServer() error {
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Create JWT verifier for bearer-token authentication
	jwtVerifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(),
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	revRepo := postgres.NewRevisionRepository(repoConfig)
	histRepo := postgres.NewHistoryRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load the taxonomy rule table
	rules, err := taxonomy.NewResolver()
	if err != nil {
		log.Fatalf("Failed to load taxonomy rules: %v", err)
	}
	logger.Info("taxonomy rules loaded")

	// Create services
	authorizer := auth.NewRoleAuthorizer()
	vigencia := service.NewVigenciaResolver()
	dupGuard := service.NewDuplicateGuard(docRepo, rules)
	docService := service.NewDocumentService(docRepo, histRepo, txManager, rules, vigencia, dupGuard, authorizer, logger)
	versionService := service.NewVersionService(docRepo, revRepo, histRepo, txManager, rules, authorizer, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	revHandler := handler.NewRevisionHandler(versionService, logger)
	taxHandler := handler.NewTaxonomyHandler(rules, docService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/publish", docHandler.PublishDocument)
	mux.HandleFunc("POST /api/documents/{id}/archive", docHandler.ArchiveDocument)
	mux.HandleFunc("GET /api/documents/{id}/history", docHandler.GetHistory)

	// Revision routes
	mux.HandleFunc("POST /api/documents/{id}/revisions", revHandler.CreateRevision)
	mux.HandleFunc("GET /api/documents/{id}/revisions", revHandler.ListRevisions)
	mux.HandleFunc("POST /api/documents/{id}/revisions/{revisionID}/promote", revHandler.PromoteRevision)

	// Taxonomy routes
	mux.HandleFunc("GET /api/taxonomy/rule", taxHandler.GetRule)
	mux.HandleFunc("GET /api/taxonomy/macro-categories", taxHandler.ListMacroCategories)
	mux.HandleFunc("GET /api/taxonomy/macro-categories/{macro}/subcategories", taxHandler.ListSubCategories)
	mux.HandleFunc("GET /api/taxonomy/macro-categories/{macro}/suggested-priority", taxHandler.SuggestedPriority)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
