package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"SEOAutomation/internal/article"
	"SEOAutomation/internal/dedupe"
	"SEOAutomation/internal/domain"
	"SEOAutomation/internal/ports"
	"SEOAutomation/internal/prompt"
	"SEOAutomation/internal/seo"
	"SEOAutomation/internal/topics"
)

// PipelineDeps wires all driven adapters into the publication pipeline.
type PipelineDeps struct {
	Headlines  ports.HeadlineSource
	Generator  ports.Generator
	Repository ports.ContentRepository
	Duplicates ports.DuplicateChecker
	Metadata   ports.MetadataWriter
	Notifier   ports.Notifier
	Logger     *slog.Logger
	NewRunID   func() string
}

// Pipeline implements the topic -> generate -> dedupe -> publish workflow.
type Pipeline struct {
	headlines  ports.HeadlineSource
	generator  ports.Generator
	repository ports.ContentRepository
	duplicates ports.DuplicateChecker
	metadata   ports.MetadataWriter
	notifier   ports.Notifier
	logger     *slog.Logger
	newRunID   func() string

	active sync.Mutex
}

// NewPipeline constructs the orchestration component. Duplicates and Metadata default to the
// repository-backed detector and writer.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		headlines:  deps.Headlines,
		generator:  deps.Generator,
		repository: deps.Repository,
		duplicates: deps.Duplicates,
		metadata:   deps.Metadata,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		newRunID:   deps.NewRunID,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.duplicates == nil && p.repository != nil {
		p.duplicates = dedupe.NewDetector(p.repository, dedupe.DefaultScanLimit, p.logger)
	}
	if p.metadata == nil && p.repository != nil {
		p.metadata = seo.NewWriter(p.repository, seo.DefaultKeyMap())
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	return p
}

// Run executes one pass: it plans up to maxItems topics and publishes at most maxItems articles.
// It never fails; problems are logged, recorded as skips, and the count degrades to zero.
func (p *Pipeline) Run(ctx context.Context, settings domain.Settings, maxItems int) domain.RunResult {
	result := domain.RunResult{RunID: p.newRunID()}
	log := p.logger.With("run_id", result.RunID)

	if maxItems <= 0 {
		result.Summary = summarize(0)
		return result
	}

	plan, headlines := p.prepare(ctx, settings, maxItems)
	log.Info("run started", "topics", len(plan), "headlines", len(headlines), "max", maxItems)

	for _, topic := range plan {
		if result.Published >= maxItems {
			break
		}
		if err := ctx.Err(); err != nil {
			log.Warn("run interrupted", "error", err)
			break
		}

		id, skip := p.publishTopic(ctx, log, settings, topic, headlines)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		result.Published++
		result.ItemIDs = append(result.ItemIDs, id)
	}

	result.Summary = summarize(result.Published)
	log.Info("run finished", "published", result.Published, "skipped", len(result.Skipped))
	p.notify(ctx, log, result.Summary)
	return result
}

// TryRun is Run guarded against overlap: when another TryRun is still in progress it returns
// immediately with ok false and no run is started.
func (p *Pipeline) TryRun(ctx context.Context, settings domain.Settings, maxItems int) (domain.RunResult, bool) {
	if !p.active.TryLock() {
		return domain.RunResult{}, false
	}
	defer p.active.Unlock()
	return p.Run(ctx, settings, maxItems), true
}

// prepare plans topics and fetches headlines concurrently; neither step can fail.
func (p *Pipeline) prepare(ctx context.Context, settings domain.Settings, maxItems int) ([]string, []string) {
	var (
		plan      []string
		headlines []string
		g         errgroup.Group
	)

	g.Go(func() error {
		plan = topics.Plan(settings, maxItems)
		return nil
	})
	if p.headlines != nil {
		g.Go(func() error {
			headlines = p.headlines.FetchHeadlines(ctx, settings.CompetitorFeedURLs)
			return nil
		})
	}
	_ = g.Wait()

	return plan, headlines
}

func (p *Pipeline) publishTopic(ctx context.Context, log *slog.Logger, settings domain.Settings, topic string, headlines []string) (int64, *domain.SkipRecord) {
	skip := func(reason domain.SkipReason, title string, err error) *domain.SkipRecord {
		rec := &domain.SkipRecord{Topic: topic, Title: title, Reason: reason}
		if err != nil {
			rec.Detail = err.Error()
		}
		log.Warn("topic skipped", "topic", topic, "title", title, "reason", reason, "error", err)
		return rec
	}

	if p.generator == nil {
		return 0, skip(domain.SkipGenerationFailed, "", fmt.Errorf("generator is not configured"))
	}

	userPrompt := prompt.Build(topic, settings.Brand, settings.MinWords, headlines)
	raw, err := p.generator.Complete(ctx, settings.APIKey, prompt.SystemInstruction, userPrompt)
	if err != nil {
		return 0, skip(domain.SkipGenerationFailed, "", err)
	}

	generated := domain.GeneratedArticle{
		Topic:           topic,
		RawText:         raw,
		Title:           article.ExtractTitle(raw, topic),
		MetaDescription: article.MetaDescription(raw),
	}

	if p.duplicates == nil || p.repository == nil {
		return 0, skip(domain.SkipPersistFailed, generated.Title, fmt.Errorf("content repository is not configured"))
	}

	dup, err := p.duplicates.Check(ctx, generated.Title, generated.RawText, settings.DuplicateThreshold)
	if err != nil {
		return 0, skip(domain.SkipDuplicateCheck, generated.Title, err)
	}
	if dup {
		return 0, skip(domain.SkipDuplicate, generated.Title, nil)
	}

	id, err := p.repository.InsertItem(ctx, domain.NewContentItem{
		Title:      generated.Title,
		Body:       article.RenderBody(generated.RawText),
		Status:     settings.PostStatus,
		CategoryID: settings.CategoryID,
	})
	if err != nil {
		return 0, skip(domain.SkipPersistFailed, generated.Title, err)
	}

	if p.metadata != nil {
		if err := p.metadata.Write(ctx, id, generated.Title, generated.MetaDescription); err != nil {
			log.Error("write seo metadata", "item_id", id, "title", generated.Title, "error", err)
		}
	}

	log.Info("article published", "item_id", id, "title", generated.Title, "status", settings.PostStatus)
	return id, nil
}

func (p *Pipeline) notify(ctx context.Context, log *slog.Logger, summary string) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.PublishSummary(ctx, summary); err != nil {
		log.Warn("publish run summary", "error", err)
	}
}

func summarize(published int) string {
	return fmt.Sprintf("Published %d item(s).", published)
}
