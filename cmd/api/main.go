package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
	"github.com/mohitcdry/automatic-recruitment-system/internal/handlers"
	"github.com/mohitcdry/automatic-recruitment-system/internal/logger"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
	"github.com/mohitcdry/automatic-recruitment-system/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database initialized")

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	resumeParser := services.NewResumeParserService()

	geminiService, err := services.NewGeminiService(cfg.Gemini, log)
	if err != nil {
		log.Fatal("failed to initialize Gemini", zap.Error(err))
	}
	log.Info("gemini initialized",
		zap.String("fast_model", cfg.Gemini.FastModel),
		zap.String("quality_model", cfg.Gemini.QualityModel),
	)

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatal("failed to initialize Qdrant", zap.Error(err))
	}
	if err := qdrantService.InitCollection(); err != nil {
		log.Fatal("failed to initialize Qdrant collection", zap.Error(err))
	}
	log.Info("qdrant initialized", zap.String("collection", cfg.Qdrant.Collection))

	speechService, err := services.NewSpeechService(cfg.Speech, log)
	if err != nil {
		log.Fatal("failed to initialize speech service", zap.Error(err))
	}

	screeningService := services.NewScreeningService(
		candidateRepo,
		jobRepo,
		geminiService,
		qdrantService,
		resumeParser,
		cfg.Worker.RetryMaxAttempts,
		log,
	)

	interviewService := services.NewInterviewService(
		interviewRepo,
		candidateRepo,
		geminiService,
		speechService,
		cfg.Interview,
		cfg.Worker.RetryMaxAttempts,
		log,
	)

	exportService := services.NewExportService()

	// Invitations need SMTP credentials. The rest of the pipeline works
	// without them, so a missing mail setup only disables that endpoint.
	var invitationService services.InvitationService
	mailer, err := services.NewSMTPMailer(cfg.Mail)
	if err != nil {
		log.Warn("mail transport not configured, invitations disabled", zap.Error(err))
	} else {
		invitationService = services.NewInvitationService(
			candidateRepo,
			jobRepo,
			geminiService,
			mailer,
			cfg.Screening.ShortlistThreshold,
			cfg.Server.BaseURL,
			log,
		)
	}

	// Start screening worker
	worker := services.NewWorker(
		candidateRepo,
		screeningService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		log,
	)
	worker.Start(context.Background())
	log.Info("screening worker started", zap.Int("concurrency", cfg.Worker.Concurrency))

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobRepo)
	uploadHandler := handlers.NewUploadHandler(
		candidateRepo,
		jobRepo,
		storageService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	candidateHandler := handlers.NewCandidateHandler(
		candidateRepo,
		geminiService,
		qdrantService,
		exportService,
		cfg.Screening.ShortlistThreshold,
	)
	interviewHandler := handlers.NewInterviewHandler(interviewService, candidateRepo)
	pagesHandler := handlers.NewPagesHandler(
		jobRepo,
		candidateRepo,
		cfg.Screening.ShortlistThreshold,
		int(cfg.Interview.AnswerTime.Seconds()),
	)

	// Create Fiber app with server-rendered views
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		AppName:      "Automatic Recruitment System",
		Views:        engine,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// API routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Post("/jobs/:id/resumes", uploadHandler.HandleUploadResumes)
	api.Get("/jobs/:id/candidates", candidateHandler.HandleListCandidates)
	api.Get("/jobs/:id/export", candidateHandler.HandleExport)

	if invitationService != nil {
		invitationHandler := handlers.NewInvitationHandler(invitationService)
		api.Post("/jobs/:id/invitations", invitationHandler.HandleSendInvitations)
	} else {
		api.Post("/jobs/:id/invitations", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusServiceUnavailable, "mail transport not configured")
		})
	}

	api.Get("/candidates/:id", candidateHandler.HandleGetCandidate)
	api.Get("/candidates/:id/similar", candidateHandler.HandleSimilar)

	api.Post("/interviews", interviewHandler.HandleStart)
	api.Post("/interviews/:id/turns", interviewHandler.HandleTurn)
	api.Get("/interviews/:id", interviewHandler.HandleGetSession)
	api.Post("/interviews/:id/report", interviewHandler.HandleReport)
	api.Get("/interviews/:id/report.txt", interviewHandler.HandleTextReport)

	// Browser UI
	app.Static("/static", "./web/static")
	app.Get("/", pagesHandler.HandleIndex)
	app.Get("/jobs/:id/page", pagesHandler.HandleJobPage)
	app.Get("/interview", pagesHandler.HandleInterviewPage)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
