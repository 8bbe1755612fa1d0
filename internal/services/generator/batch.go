package generator

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/models"
	"golang.org/x/time/rate"
)

// BatchResult is the final tally of one batch generation run. Batch
// operations always report a tally rather than aborting on the first
// per-item error.
type BatchResult struct {
	Total        int
	Succeeded    int
	Failed       int
	Placeholders int
}

// ItemFunc processes one article. placeholder reports that the item was
// filled with a placeholder rather than generated content.
type ItemFunc func(ctx context.Context, article *models.Article) (placeholder bool, err error)

// BatchProcessor runs per-article generation work on a bounded worker
// pool with an optional rate limit on in-flight generation calls.
type BatchProcessor struct {
	concurrency int
	limiter     *rate.Limiter
	logger      arbor.ILogger
}

// NewBatchProcessor creates a pool sized from the workers configuration.
// A rate limit of 0 means unlimited.
func NewBatchProcessor(cfg *common.WorkersConfig, logger arbor.ILogger) *BatchProcessor {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &BatchProcessor{
		concurrency: concurrency,
		limiter:     limiter,
		logger:      logger,
	}
}

// Run processes every article and returns the tally. A single item's
// failure never stops the remaining items; context cancellation drains
// the queue and counts unprocessed items as failures.
func (p *BatchProcessor) Run(ctx context.Context, articles []*models.Article, work ItemFunc) BatchResult {
	result := BatchResult{Total: len(articles)}
	if len(articles) == 0 {
		return result
	}

	queue := make(chan *models.Article)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for article := range queue {
				if err := p.wait(ctx); err != nil {
					mu.Lock()
					result.Failed++
					mu.Unlock()
					continue
				}

				placeholder, err := work(ctx, article)

				mu.Lock()
				switch {
				case err != nil:
					result.Failed++
				case placeholder:
					result.Placeholders++
				default:
					result.Succeeded++
				}
				mu.Unlock()

				if err != nil {
					p.logger.Warn().
						Err(err).
						Str("article_id", article.ID).
						Msg("Batch item failed")
				}
			}
		}()
	}

	for _, article := range articles {
		queue <- article
	}
	close(queue)
	wg.Wait()

	p.logger.Info().
		Int("total", result.Total).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("placeholders", result.Placeholders).
		Msg("Batch generation completed")

	return result
}

func (p *BatchProcessor) wait(ctx context.Context) error {
	if p.limiter == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		return nil
	}
	return p.limiter.Wait(ctx)
}
