package app

import (
	"fmt"
	"os"

	"github.com/andy/clientdesk/internal/api"
	"github.com/andy/clientdesk/internal/config"
	"github.com/andy/clientdesk/internal/log"
	"github.com/andy/clientdesk/internal/repository"
	"github.com/andy/clientdesk/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Logger *log.Logger
	API    *api.Client

	// Repositories
	ClientRepo  repository.ClientRepository
	ProjectRepo repository.ProjectRepository
	InvoiceRepo repository.InvoiceRepository

	// Services
	RelationService service.RelationService
	DraftService    service.DraftService
	ReportService   service.ReportService

	logFile *os.File
}

// New creates a new App instance for CLI use, logging to stderr.
// It handles:
// 1. Loading config
// 2. Building the backend API client
// 3. Creating repositories
// 4. Creating services
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg, false)
}

// NewForTUI creates an App whose logger never writes to the terminal: it
// logs to the configured file, or discards everything.
func NewForTUI() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg, true)
}

// NewWithConfig creates an App with a provided config (useful for testing).
// quiet keeps log output away from stdout/stderr, for full-screen use.
func NewWithConfig(cfg *config.Config, quiet bool) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, logFile, err := buildLogger(cfg, quiet)
	if err != nil {
		return nil, err
	}

	apiClient := api.New(cfg.Server.URL, cfg.Server.Timeout(), logger)

	clientRepo := repository.NewClientRepo(apiClient)
	projectRepo := repository.NewProjectRepo(apiClient)
	invoiceRepo := repository.NewInvoiceRepo(apiClient)

	relationService := service.NewRelationService(clientRepo, projectRepo, invoiceRepo)
	draftService := service.NewDraftService(clientRepo, projectRepo, invoiceRepo, relationService)
	reportService := service.NewReportService(clientRepo, projectRepo, invoiceRepo)

	return &App{
		Config:          cfg,
		Logger:          logger,
		API:             apiClient,
		ClientRepo:      clientRepo,
		ProjectRepo:     projectRepo,
		InvoiceRepo:     invoiceRepo,
		RelationService: relationService,
		DraftService:    draftService,
		ReportService:   reportService,
		logFile:         logFile,
	}, nil
}

func buildLogger(cfg *config.Config, quiet bool) (*log.Logger, *os.File, error) {
	level := log.ParseLevel(cfg.Log.Level)

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger := log.New(log.Config{Level: level, Component: "app", Output: f})
		return logger, f, nil
	}

	if quiet {
		return log.Discard(), nil, nil
	}
	return log.New(log.Config{Level: level, Component: "app", Output: os.Stderr}), nil, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
