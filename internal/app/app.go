package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SEOAutomation/internal/config"
	"SEOAutomation/internal/dedupe"
	"SEOAutomation/internal/domain"
	"SEOAutomation/internal/httpapi"
	"SEOAutomation/internal/infrastructure/feeds"
	"SEOAutomation/internal/infrastructure/llm"
	"SEOAutomation/internal/infrastructure/scheduler"
	"SEOAutomation/internal/infrastructure/storage"
	"SEOAutomation/internal/infrastructure/telegram"
	"SEOAutomation/internal/logging"
	"SEOAutomation/internal/ports"
	"SEOAutomation/internal/seo"
	"SEOAutomation/internal/topics"
	"SEOAutomation/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	repository *storage.SQLRepository
	pipeline   *usecase.Pipeline
}

// New opens the content repository and builds the pipeline with all adapters.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	repo, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open content repository: %w", err)
	}

	if cfg.Settings().APIKey == "" {
		baseLogger.Warn("openai api key not set; generation disabled", "env", "OPENAI_API_KEY")
	}

	var notifier ports.Notifier
	if n := telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID); n.Configured() {
		notifier = n
	}

	pipelineLogger := baseLogger.With("component", "pipeline")
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Headlines:  feeds.NewAggregator(nil, cfg.Feeds, baseLogger.With("component", "feeds")),
		Generator:  llm.NewChatGPTClient(cfg.ChatGPT),
		Repository: repo,
		Duplicates: dedupe.NewDetector(repo, cfg.Content.ScanLimit, baseLogger.With("component", "dedupe")),
		Metadata:   seo.NewWriter(repo, cfg.Content.MetaKeys),
		Notifier:   notifier,
		Logger:     pipelineLogger,
	})

	return &Application{cfg: cfg, logger: baseLogger, repository: repo, pipeline: pipeline}, nil
}

// RunOnce performs a single pipeline execution. maxItems <= 0 uses the configured default.
func (a *Application) RunOnce(ctx context.Context, maxItems int) domain.RunResult {
	if maxItems <= 0 {
		maxItems = a.cfg.Content.MaxItems
	}
	return a.pipeline.Run(ctx, a.cfg.Settings(), maxItems)
}

// Topics returns the topics the next run would plan.
func (a *Application) Topics(maxItems int) []string {
	if maxItems <= 0 {
		maxItems = a.cfg.Content.MaxItems
	}
	return topics.Plan(a.cfg.Settings(), maxItems)
}

// Serve starts the recurring scheduler (when enabled) and the HTTP trigger, blocking until ctx ends.
func (a *Application) Serve(ctx context.Context) error {
	settings := a.cfg.Settings()

	if a.cfg.Scheduler.Enabled {
		interval := settings.Schedule.Interval()
		loc := a.cfg.Scheduler.Location()
		driver := scheduler.NewTickerScheduler(interval, loc, a.cfg.Scheduler.RunOnStart)
		sched := usecase.NewScheduler(driver, a.pipeline, a.cfg.Settings, a.cfg.Content.MaxItems)
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				a.logger.Warn("stop scheduler", "error", err)
			}
		}()
		a.logger.Info("scheduler started",
			"schedule", settings.Schedule,
			"timezone", loc.String(),
			"next_run", scheduler.NextTick(time.Now(), interval, loc),
			"run_on_start", a.cfg.Scheduler.RunOnStart,
		)
	}

	server := httpapi.New(a.pipeline, a.cfg.Settings, a.cfg.Content.MaxItems, a.logger.With("component", "http"))
	return server.Start(ctx, a.cfg.HTTP.Addr)
}

// Close releases the repository connection.
func (a *Application) Close() error {
	if a.repository == nil {
		return nil
	}
	return a.repository.Close()
}
