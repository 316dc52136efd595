package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/ownitpro/omgsystems/internal/config"
	"github.com/ownitpro/omgsystems/internal/db"
	"github.com/ownitpro/omgsystems/internal/repository"
	"github.com/ownitpro/omgsystems/internal/service"
	"github.com/ownitpro/omgsystems/internal/service/payment"
	"github.com/ownitpro/omgsystems/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Storage             storage.Storage
	Submissions         repository.SubmissionStore
	PortalAuthService   *service.PortalAuthService
	SubmitService       *service.SubmitService
	NotificationService *service.NotificationService
	EmailService        *service.EmailService
	SubscriptionService *service.SubscriptionService
	PaymentService      payment.Provider
	KnowledgeService    *service.KnowledgeService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	portalRepository := repository.NewPortalRepository(database)
	requestRepository := repository.NewRequestRepository(database)
	folderRepository := repository.NewFolderRepository(database)
	documentRepository := repository.NewDocumentRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)
	userRepository := repository.NewUserRepository(database)
	organizationRepository := repository.NewOrganizationRepository(database)
	subscriptionRepository := repository.NewSubscriptionRepository(database)
	submissionStore := repository.NewSubmissionStore(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	notificationService := service.NewNotificationService(
		notificationRepository,
		userRepository,
		organizationRepository,
		emailService,
	)
	folderService := service.NewFolderService(folderRepository)
	documentService := service.NewDocumentService(documentRepository)
	quotaService := service.NewQuotaService(subscriptionRepository, documentRepository)
	submitService := service.NewSubmitService(
		portalRepository,
		requestRepository,
		submissionStore,
		folderService,
		documentService,
		notificationService,
		quotaService,
		fileStorage.Bucket(),
		cfg.MaxUploadBytes,
	)
	portalAuthService := service.NewPortalAuthService(portalRepository, cfg.JWTSecret, cfg.PortalJWTExpiry)
	subscriptionService := service.NewSubscriptionService(subscriptionRepository)

	paymentProvider, err := payment.NewProvider(cfg, subscriptionService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	// Knowledge index for the site chatbot. An empty index is not fatal; the
	// search endpoint just returns nothing.
	knowledgeService := service.NewKnowledgeService(service.NewVectorStore(), cfg.ContentPath)
	err = knowledgeService.Ingest()
	if err != nil {
		slog.Warn("failed to build knowledge index", "error", err)
	}

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Storage:             fileStorage,
		Submissions:         submissionStore,
		PortalAuthService:   portalAuthService,
		SubmitService:       submitService,
		NotificationService: notificationService,
		EmailService:        emailService,
		SubscriptionService: subscriptionService,
		PaymentService:      paymentProvider,
		KnowledgeService:    knowledgeService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
