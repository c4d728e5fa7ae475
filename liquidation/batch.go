package liquidation

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrCancelled is returned by Process when ctx is done before every row ran.
var ErrCancelled = errors.New("batch processing cancelled")

var tracer = otel.Tracer("mguard-liquidation")

// Progress is called after each chunk with the number of rows done so far.
type Progress func(done, total int)

type BatchResult struct {
	BatchID      string        `json:"batchId"`
	Liquidations []Liquidation `json:"liquidations"`
	Summary      Summary       `json:"summary"`
	Cancelled    bool          `json:"cancelled"`
}

// Process runs rows in chunks, fanning each chunk out over the worker pool.
// Results keep row order. On cancellation the rows completed so far are
// returned together with ErrCancelled.
func (p *Processor) Process(ctx context.Context, batchID string, rows []ManifestRow, progress Progress) (*BatchResult, error) {
	ctx, span := tracer.Start(ctx, "liquidation.Process",
		trace.WithAttributes(
			attribute.String("batch.id", batchID),
			attribute.Int("batch.rows", len(rows)),
		),
	)
	defer span.End()

	duplicates := duplicateRows(rows)
	results := make([]Liquidation, len(rows))
	completed := make([]bool, len(rows))
	done := 0

	for start := 0; start < len(rows) && ctx.Err() == nil; start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		done += p.processChunk(ctx, batchID, rows, start, end, duplicates, results, completed)

		log.Debugf("Batch %s: %d/%d rows processed", batchID, done, len(rows))
		if progress != nil {
			progress(done, len(rows))
		}
	}

	res := &BatchResult{BatchID: batchID, Liquidations: make([]Liquidation, 0, done)}
	for i := range results {
		if completed[i] {
			res.Liquidations = append(res.Liquidations, results[i])
		}
	}
	res.Summary = Summarize(res.Liquidations)
	span.SetAttributes(attribute.Int("batch.completed", done))

	if done < len(rows) {
		res.Cancelled = true
		span.SetStatus(codes.Error, ErrCancelled.Error())
		log.Warnf("Batch %s cancelled after %d of %d rows", batchID, done, len(rows))
		return res, ErrCancelled
	}
	return res, nil
}

func (p *Processor) processChunk(ctx context.Context, batchID string, rows []ManifestRow, start, end int,
	duplicates map[int]bool, results []Liquidation, completed []bool) int {
	_, span := tracer.Start(ctx, "liquidation.chunk",
		trace.WithAttributes(attribute.Int("chunk.start", start), attribute.Int("chunk.end", end)))
	defer span.End()

	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	sem := make(chan struct{}, p.workers)

	for i := start; i < end; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			l := p.ProcessRow(batchID, idx, rows[idx])
			if duplicates[idx] {
				l.observe("Guía duplicada en el manifiesto")
				l.flagReview("Guía duplicada")
			}

			results[idx] = l
			mu.Lock()
			completed[idx] = true
			count++
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	return count
}

// duplicateRows marks every row whose cleaned tracking guide already appeared
// earlier in the manifest.
func duplicateRows(rows []ManifestRow) map[int]bool {
	seen := make(map[string]struct{}, len(rows))
	dups := make(map[int]bool)
	for i, r := range rows {
		t := CleanTracking(r.Tracking)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			dups[i] = true
			continue
		}
		seen[t] = struct{}{}
	}
	return dups
}
