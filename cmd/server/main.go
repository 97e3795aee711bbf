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

	"github.com/shopspring/decimal"

	"investco/internal/chain"
	"investco/internal/classify"
	"investco/internal/config"
	"investco/internal/email/noop"
	"investco/internal/email/ses"
	"investco/internal/extract"
	"investco/internal/handler"
	"investco/internal/port"
	"investco/internal/repository/postgres"
	"investco/internal/router"
	"investco/internal/service"
	s3storage "investco/internal/storage/s3"
	"investco/internal/textrecover"
	"investco/internal/validate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	investmentRepo := postgres.NewInvestmentRepo(db)
	statementRepo := postgres.NewStatementRepo(db)
	ledgerRepo := postgres.NewLedgerRepo(db)
	reviewRepo := postgres.NewPendingReviewRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize extraction pipeline
	pipelineOpts := []textrecover.Option{textrecover.WithMinChars(cfg.Extract.MinUsableChars)}
	if !cfg.Extract.OCREnabled {
		pipelineOpts = append(pipelineOpts, textrecover.WithStages(
			textrecover.NewTextLayerStage(),
			textrecover.NewPlainTextStage(),
		))
	}
	pipeline := textrecover.NewPipeline(pipelineOpts...)

	reconcileTol, err := decimal.NewFromString(cfg.Tolerance.Reconcile)
	if err != nil {
		return fmt.Errorf("invalid reconcile tolerance %q: %w", cfg.Tolerance.Reconcile, err)
	}
	gapTol, err := decimal.NewFromString(cfg.Tolerance.ChainGap)
	if err != nil {
		return fmt.Errorf("invalid chain gap tolerance %q: %w", cfg.Tolerance.ChainGap, err)
	}

	// Initialize services
	investmentSvc := service.NewInvestmentService(investmentRepo, ledgerRepo)
	statementSvc := service.NewStatementService(service.StatementServiceDeps{
		Investments:    investmentRepo,
		Statements:     statementRepo,
		Reviews:        reviewRepo,
		Files:          fileRepo,
		Storage:        s3Client,
		Email:          emailSender,
		Recoverer:      pipeline,
		Classifier:     classify.NewDefaultClassifier(),
		Extractors:     extract.NewFactory(),
		Validator:      validate.NewValidator(validate.WithTolerance(reconcileTol)),
		Verifier:       chain.NewVerifier(chain.WithTolerance(gapTol)),
		ReviewTTL:      cfg.Review.TTL,
		NotifyAddrs:    cfg.Email.NotifyList(),
		MaxFileSize:    cfg.S3.MaxFileSizeMB * 1024 * 1024,
		ExtractTimeout: time.Duration(cfg.Extract.TimeoutSecs) * time.Second,
	})

	// Initialize handlers
	investmentH := handler.NewInvestmentHandler(investmentSvc)
	statementH := handler.NewStatementHandler(statementSvc)
	auditH := handler.NewAuditHandler(investmentSvc, statementSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, investmentH, statementH, auditH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Background review expiry sweeper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := service.NewReviewSweeper(reviewRepo, service.ReviewSweeperConfig{
		SweepInterval: time.Duration(cfg.Review.SweepIntervalSecs) * time.Second,
	})
	go sweeper.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Println("server stopped")
	return nil
}
