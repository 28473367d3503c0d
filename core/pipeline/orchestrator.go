// ABOUTME: Pipeline orchestrator running one fetch, dedup, summarize, persist, broadcast cycle
// ABOUTME: Holds the in-memory watermark map and refuses overlapping runs

package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-news-api/core/domain"
	"ai-news-api/core/interfaces"
)

// ErrRunInProgress is returned by Run when another run has not finished yet
var ErrRunInProgress = errors.New("pipeline: run already in progress")

// Config wires the orchestrator's collaborators
type Config struct {
	Sources     []interfaces.Source
	Summarizer  interfaces.Summarizer
	Store       interfaces.WatermarkStore
	Broadcaster interfaces.Broadcaster

	// BatchStore, when set, keeps the latest batch across restarts
	BatchStore interfaces.BatchStore

	// Publishers receive a copy of every broadcast batch
	Publishers []interfaces.Publisher

	// SourceTimeout bounds each FetchSince call; 0 means no bound
	SourceTimeout time.Duration

	Logger interfaces.Logger
}

// RunResult describes one completed run
type RunResult struct {
	Fetched       int
	Unique        int
	Summarized    int
	Delivered     int
	FailedSources []string
	Persisted     bool
	Duration      time.Duration
}

// Orchestrator executes pipeline runs. It is safe for concurrent use; at most one run executes at a time.
type Orchestrator struct {
	cfg    Config
	logger interfaces.Logger

	// running admits one run at a time
	running sync.Mutex

	mu    sync.RWMutex
	marks domain.Watermarks
	dirty bool
}

// New creates an orchestrator
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Orchestrator{
		cfg:    cfg,
		logger: logger,
		marks:  domain.Watermarks{},
	}
}

// Watermarks returns a copy of the in-memory watermark map
func (o *Orchestrator) Watermarks() domain.Watermarks {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.marks.Clone()
}

func (o *Orchestrator) setMarks(marks domain.Watermarks) {
	o.mu.Lock()
	o.marks = marks.Clone()
	o.mu.Unlock()
}

func (o *Orchestrator) isDirty() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.dirty
}

func (o *Orchestrator) setDirty(dirty bool) {
	o.mu.Lock()
	o.dirty = dirty
	o.mu.Unlock()
}

// Run executes one cycle. Per-source and per-article failures are logged and
// absorbed; the returned error is ErrRunInProgress or the context's error.
func (o *Orchestrator) Run(ctx context.Context) (RunResult, error) {
	if !o.running.TryLock() {
		return RunResult{}, ErrRunInProgress
	}
	defer o.running.Unlock()

	start := time.Now()
	result := RunResult{}

	marks := o.loadWatermarks(ctx)

	fetched, latest, failed := o.fetchAll(ctx, marks)
	result.Fetched = len(fetched)
	result.FailedSources = failed
	if err := ctx.Err(); err != nil {
		return result, err
	}

	articles := Deduplicate(fetched)
	result.Unique = len(articles)

	if len(articles) == 0 {
		o.setMarks(marks)
		if o.isDirty() {
			result.Persisted = o.persist(ctx, marks)
		}
		result.Duration = time.Since(start)
		o.logger.Info("Run finished with no new articles", map[string]interface{}{
			"failed_sources": failed,
			"duration_ms":    result.Duration.Milliseconds(),
		})
		return result, nil
	}

	summaries := o.cfg.Summarizer.SummarizeMany(ctx, articles)
	if err := ctx.Err(); err != nil {
		// Stopped mid-batch: leave watermarks alone so nothing is skipped next run.
		return result, err
	}
	result.Summarized = len(summaries)

	items := make([]domain.NewsItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, domain.NewNewsItem(s))
	}

	for source, t := range latest {
		marks.Advance(source, t)
	}
	o.setMarks(marks)
	result.Persisted = o.persist(ctx, marks)

	if len(items) > 0 {
		result.Delivered = o.deliver(ctx, items)
	}

	result.Duration = time.Since(start)
	o.logger.Info("Run finished", map[string]interface{}{
		"fetched":        result.Fetched,
		"unique":         result.Unique,
		"summarized":     result.Summarized,
		"clients":        result.Delivered,
		"failed_sources": failed,
		"persisted":      result.Persisted,
		"duration_ms":    result.Duration.Milliseconds(),
	})
	return result, nil
}

// loadWatermarks reads the durable map and merges the in-memory one into it
func (o *Orchestrator) loadWatermarks(ctx context.Context) domain.Watermarks {
	loaded, err := o.cfg.Store.Load(ctx)
	if err != nil {
		o.logger.Warn("Watermark store unreadable, treating as cold start", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if loaded == nil {
		loaded = domain.Watermarks{}
	}
	loaded.Merge(o.Watermarks())
	return loaded
}

// fetchAll queries every source in order. It returns all fetched articles, the
// newest publish time per source, and the names of sources that failed.
func (o *Orchestrator) fetchAll(ctx context.Context, marks domain.Watermarks) ([]domain.Article, map[string]time.Time, []string) {
	var all []domain.Article
	latest := make(map[string]time.Time)
	var failed []string

	for _, src := range o.cfg.Sources {
		if ctx.Err() != nil {
			break
		}

		name := src.Name()
		cursor := marks.Cursor(name)

		articles, err := o.fetchOne(ctx, src, cursor)
		if err != nil {
			failed = append(failed, name)
			o.logger.Warn("Source unavailable, skipping", map[string]interface{}{
				"source": name,
				"error":  err.Error(),
			})
			continue
		}

		for _, a := range articles {
			if cursor != nil && !a.PublishedAt.After(*cursor) {
				continue
			}
			all = append(all, a)
			if a.PublishedAt.After(latest[name]) {
				latest[name] = a.PublishedAt
			}
		}

		o.logger.Debug("Fetched source", map[string]interface{}{
			"source":   name,
			"articles": len(articles),
		})
	}

	return all, latest, failed
}

func (o *Orchestrator) fetchOne(ctx context.Context, src interfaces.Source, cursor *time.Time) ([]domain.Article, error) {
	if o.cfg.SourceTimeout <= 0 {
		return src.FetchSince(ctx, cursor)
	}
	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.SourceTimeout)
	defer cancel()
	return src.FetchSince(fetchCtx, cursor)
}

// persist saves the full map, remembering a failure so the next run retries
func (o *Orchestrator) persist(ctx context.Context, marks domain.Watermarks) bool {
	if err := o.cfg.Store.Save(ctx, marks); err != nil {
		o.setDirty(true)
		o.logger.Error("Failed to persist watermarks, keeping them in memory", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	o.setDirty(false)
	return true
}

// deliver broadcasts items, then records and mirrors the batch
func (o *Orchestrator) deliver(ctx context.Context, items []domain.NewsItem) int {
	delivered, err := o.cfg.Broadcaster.Broadcast(items)
	if err != nil {
		o.logger.Error("Broadcast failed", map[string]interface{}{
			"items": len(items),
			"error": err.Error(),
		})
		return 0
	}

	if o.cfg.BatchStore != nil {
		if err := o.cfg.BatchStore.SaveLatest(ctx, items); err != nil {
			o.logger.Warn("Failed to save latest batch", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	for _, pub := range o.cfg.Publishers {
		if err := pub.Publish(ctx, items); err != nil {
			o.logger.Warn("Failed to mirror batch", map[string]interface{}{
				"items": len(items),
				"error": err.Error(),
			})
		}
	}

	return delivered
}
