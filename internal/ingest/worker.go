// Package ingest fetches the paginated upstream catalog with a bounded worker
// pool and persists records in transactional batches, deduplicated by the
// upstream id.
package ingest

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

// PageFetcher is the slice of the catalog client the runner needs.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) ([]RawGame, error)
}

// Options control one ingestion run. Zero values fall back to the defaults
// of the original collection job.
type Options struct {
	MaxPages  int // default 1000
	Workers   int // default 10
	BatchSize int // default 100
	StartPage int // default 1
}

func (o *Options) applyDefaults() {
	if o.MaxPages <= 0 {
		o.MaxPages = 1000
	}
	if o.Workers <= 0 {
		o.Workers = 10
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.StartPage <= 0 {
		o.StartPage = 1
	}
}

// Summary reports one completed run.
type Summary struct {
	SavedCount     int
	PagesProcessed int
	Elapsed        time.Duration
}

type pageResult struct {
	page  int
	games []domain.Game
	err   error
}

// Runner coordinates fetch workers and batch persistence. Workers are
// side-effect free (fetch + transform only); the single Run goroutine owns
// the buffer and the saved counter, so no further locking is needed around
// them.
type Runner struct {
	fetcher PageFetcher
	games   domain.GameRepository

	// delay runs before every page request to spread load on the upstream
	// API. Overridable in tests.
	delay func()
}

func NewRunner(fetcher PageFetcher, games domain.GameRepository) *Runner {
	return &Runner{
		fetcher: fetcher,
		games:   games,
		delay: func() {
			time.Sleep(time.Duration(100+rand.Intn(400)) * time.Millisecond)
		},
	}
}

// Run fetches pages [StartPage, StartPage+MaxPages) in shuffled order and
// saves transformed records in batches. Failed pages and failed batches are
// logged and skipped; only a cancelled context ends the run early.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	opts.applyDefaults()
	start := time.Now()

	pages := make([]int, opts.MaxPages)
	for i := range pages {
		pages[i] = opts.StartPage + i
	}
	rand.Shuffle(len(pages), func(i, j int) { pages[i], pages[j] = pages[j], pages[i] })

	log.Printf("[ingest] starting: max_pages=%d workers=%d batch_size=%d start_page=%d",
		opts.MaxPages, opts.Workers, opts.BatchSize, opts.StartPage)

	sem := semaphore.NewWeighted(int64(opts.Workers))
	results := make(chan pageResult)
	var wg sync.WaitGroup

	for _, page := range pages {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results <- pageResult{page: page, err: err}
				return
			}
			defer sem.Release(1)

			r.delay()
			raws, err := r.fetcher.FetchPage(ctx, page)
			if err != nil {
				results <- pageResult{page: page, err: err}
				return
			}
			games := make([]domain.Game, 0, len(raws))
			for _, raw := range raws {
				g, ok := Transform(raw)
				if !ok {
					log.Printf("[ingest] page %d: skipping game without id (%q)", page, raw.Name)
					continue
				}
				games = append(games, g)
			}
			results <- pageResult{page: page, games: games}
		}(page)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single coordinator: drains completed pages and performs every buffer
	// and database mutation.
	var (
		buffer     []domain.Game
		saved      int
		processed  int
		batchIndex int
		completed  int
	)
	for res := range results {
		completed++
		if res.err != nil {
			log.Printf("[ingest] page %d failed, skipping: %v", res.page, res.err)
			continue
		}
		processed++
		log.Printf("[ingest] page %d done: %d games (%d/%d pages)", res.page, len(res.games), completed, opts.MaxPages)

		buffer = append(buffer, res.games...)
		for len(buffer) >= opts.BatchSize {
			batch := buffer[:opts.BatchSize]
			buffer = buffer[opts.BatchSize:]
			batchIndex++
			saved += r.saveBatch(ctx, batch, batchIndex)
		}
	}

	if len(buffer) > 0 {
		batchIndex++
		saved += r.saveBatch(ctx, buffer, batchIndex)
	}

	elapsed := time.Since(start)
	throughput := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		throughput = float64(saved) / secs
	}
	log.Printf("[ingest] finished: saved=%d pages=%d elapsed=%s (%.1f games/sec)",
		saved, processed, elapsed.Round(time.Millisecond), throughput)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Summary{
		SavedCount:     saved,
		PagesProcessed: processed,
		Elapsed:        elapsed,
	}, nil
}

// saveBatch persists one batch; on failure the batch is dropped and the run
// continues.
func (r *Runner) saveBatch(ctx context.Context, batch []domain.Game, index int) int {
	n, err := r.games.SaveBatch(ctx, batch)
	if err != nil {
		log.Printf("[ingest] batch %d failed (%d games): %v", index, len(batch), err)
		return 0
	}
	log.Printf("[ingest] batch %d saved: %d new, %d existing", index, n, len(batch)-n)
	return n
}
