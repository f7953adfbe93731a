/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: batch.go
Description: Batched concurrent runner for DroidStress. Partitions the target
package list into fixed-size batches, runs each batch concurrently under a
bounded worker pool, joins on batch completion, and enforces a cool-down delay
between batches so the device can settle.
*/

package monkey

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kleascm/droidstress/pkg/interfaces"
	"golang.org/x/sync/semaphore"
)

// BatchRunner drives a PackageRunner across a package list under two
// resource bounds: at most maxWorkers commands run concurrently, and
// packages are processed in consecutive batches of at most batchSize with a
// cool-down between batches. Each worker occupies one pool slot for the full
// lifetime of its child process, so maxWorkers directly limits concurrently
// running external processes.
type BatchRunner struct {
	runner     PackageRunner
	sink       interfaces.Sink
	maxWorkers int
	batchSize  int
	delay      time.Duration
}

// NewBatchRunner creates a batch runner. maxWorkers and batchSize must be
// positive; callers are expected to have validated their session config.
func NewBatchRunner(runner PackageRunner, sink interfaces.Sink, maxWorkers, batchSize int, delay time.Duration) *BatchRunner {
	return &BatchRunner{
		runner:     runner,
		sink:       sink,
		maxWorkers: maxWorkers,
		batchSize:  batchSize,
		delay:      delay,
	}
}

// partition splits packages into consecutive batches of at most size
// elements. Every package lands in exactly one batch and input order is
// preserved across batches.
func partition(packages []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(packages); start += size {
		end := start + size
		if end > len(packages) {
			end = len(packages)
		}
		batches = append(batches, packages[start:end])
	}
	return batches
}

// Run executes every package and blocks until the final batch completes.
// Batches run strictly in order: no invocation of batch N+1 starts before
// every invocation of batch N has finished. Within a batch there is no
// ordering guarantee. Individual package failures are logged and never
// abort the batch or the session.
//
// ctx is honoured only between runs, at pool acquisition and during the
// inter-batch delay; a running child process is never interrupted.
func (b *BatchRunner) Run(ctx context.Context, packages []string, build Builder) error {
	if len(packages) == 0 {
		return nil
	}

	batches := partition(packages, b.batchSize)
	sem := semaphore.NewWeighted(int64(b.maxWorkers))

	for i, batch := range batches {
		b.sink.Info("Starting batch", map[string]interface{}{
			"batch":   i + 1,
			"batches": len(batches),
			"size":    len(batch),
		})

		var failed int64
		var wg sync.WaitGroup
		for _, pkg := range batch {
			if err := sem.Acquire(ctx, 1); err != nil {
				wg.Wait()
				return err
			}
			wg.Add(1)
			go func(pkg string) {
				defer wg.Done()
				defer sem.Release(1)
				result := b.runner.Run(pkg, build(pkg))
				if result.Failed() {
					atomic.AddInt64(&failed, 1)
					b.sink.Error("Batch member failed", map[string]interface{}{
						"package": pkg,
						"status":  result.Status.String(),
						"error":   result.Error,
					})
				}
			}(pkg)
		}
		wg.Wait()

		b.sink.Info("Batch completed", map[string]interface{}{
			"batch":  i + 1,
			"size":   len(batch),
			"failed": atomic.LoadInt64(&failed),
		})

		if i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.delay):
			}
		}
	}

	return nil
}
