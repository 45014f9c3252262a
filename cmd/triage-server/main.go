package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/triage/triage/internal/config"
	"github.com/triage/triage/internal/domain/audit"
	"github.com/triage/triage/internal/domain/chat"
	"github.com/triage/triage/internal/domain/classifier"
	"github.com/triage/triage/internal/domain/narrative"
	"github.com/triage/triage/internal/domain/rules"
	"github.com/triage/triage/internal/domain/similarity"
	"github.com/triage/triage/internal/domain/symptom"
	"github.com/triage/triage/internal/domain/triage"
	"github.com/triage/triage/internal/platform/db"
	"github.com/triage/triage/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "triage-server",
		Short: "Symptom triage API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the triage API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in reference cases into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := similarity.NewRepo(pool)
			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				fmt.Printf("Reference population already has %d case(s); nothing to do.\n", count)
				return nil
			}

			cases := similarity.SeedCases()
			for _, c := range cases {
				if err := repo.Insert(ctx, c); err != nil {
					return fmt.Errorf("insert reference case: %w", err)
				}
			}
			fmt.Printf("Seeded %d reference case(s).\n", len(cases))
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// Database is optional: without it the reference population comes from
	// the built-in cases and audit records are appended to a local file.
	var pool *pgxpool.Pool
	var simRepo similarity.Repository
	var auditRepo audit.Repository
	if cfg.HasDatabase() {
		p, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		logger.Info().Msg("connected to database")
		pool = p
		simRepo = similarity.NewRepo(p)
		auditRepo = audit.NewRepo(p)
	} else {
		simRepo = similarity.NewMemRepo(similarity.SeedCases())
		auditRepo = audit.NewFileRepo(cfg.AuditLogPath)
		logger.Info().Str("audit_log", cfg.AuditLogPath).Msg("running without database")
	}

	// Classifier training cases: CSV table if configured, built-in otherwise.
	cases := classifier.DefaultCases()
	if cfg.CaseTablePath != "" {
		loaded, err := classifier.LoadCasesCSV(cfg.CaseTablePath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.CaseTablePath).Msg("failed to load case table")
		}
		cases = loaded
		logger.Info().Int("cases", len(cases)).Str("path", cfg.CaseTablePath).Msg("loaded case table")
	}

	dict := symptom.DefaultDictionary()
	scorer := classifier.NewScorer(dict, cases)
	ruleEngine := rules.NewEngine(logger)

	// Similarity engine: fit on whatever the repository holds. An empty
	// database population falls back to the built-in cases so retrieval
	// always has neighbors.
	simEngine := similarity.NewEngine(logger, cfg.SimilarityCases)
	if cfg.HasDatabase() {
		count, err := simRepo.Count(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to count reference cases")
		}
		if count == 0 {
			logger.Warn().Msg("reference population is empty; using built-in cases (run 'triage-server seed')")
			simRepo = similarity.NewMemRepo(similarity.SeedCases())
		}
	}
	if err := simEngine.Load(ctx, simRepo); err != nil {
		logger.Fatal().Err(err).Msg("failed to load reference cases")
	}
	logger.Info().Int("cases", simEngine.Len()).Msg("similarity engine ready")

	// Narrative providers, primary first. Missing keys simply disable the
	// narrative stage; diagnosis still works without it.
	var models []narrative.Model
	if cfg.OpenAIAPIKey != "" {
		m, err := narrative.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize openai provider")
		}
		models = append(models, m)
	}
	if cfg.GoogleAPIKey != "" {
		m, err := narrative.NewGoogleAI(ctx, cfg.GoogleAPIKey, cfg.GoogleModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize googleai provider")
		}
		models = append(models, m)
	}
	var advisor *narrative.Advisor
	if len(models) > 0 {
		advisor = narrative.NewAdvisor(logger, cfg.NarrativeTimeout, models...)
		logger.Info().Int("providers", len(models)).Msg("narrative advisor ready")
	} else {
		logger.Warn().Msg("no language model API keys configured; narrative stage disabled")
	}

	engine := triage.NewEngine(logger, dict, scorer, ruleEngine, simEngine, advisor, auditRepo)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	// The deadline must outlast the narrative stage plus fallback attempts.
	e.Use(middleware.RequestTimeout(2*cfg.NarrativeTimeout + 10*time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigin,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// API routes
	api := e.Group("/api")
	triage.NewHandler(engine, dict).RegisterRoutes(api)
	chat.NewHandler(chat.NewService(logger, advisor)).RegisterRoutes(api)

	// Health checks
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":          "ok",
			"version":         "0.1.0",
			"symptoms":        dict.Len(),
			"reference_cases": simEngine.Len(),
			"narrative":       advisor != nil && advisor.Available(),
		})
	})
	if pool != nil {
		e.GET("/healthz/db", db.HealthHandler(pool))
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
