package usecase

import (
	"context"
	"time"

	"github.com/allisson/agrosync/internal/metrics"
	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
)

const metricsDomain = "sync"

type syncUseCaseWithMetrics struct {
	next    SyncUseCase
	metrics metrics.BusinessMetrics
}

// NewSyncUseCaseWithMetrics wraps a SyncUseCase with business metrics recording.
func NewSyncUseCaseWithMetrics(next SyncUseCase, businessMetrics metrics.BusinessMetrics) SyncUseCase {
	return &syncUseCaseWithMetrics{
		next:    next,
		metrics: businessMetrics,
	}
}

func (u *syncUseCaseWithMetrics) Sync(ctx context.Context, input SyncInput) (*SyncOutput, error) {
	start := time.Now()

	output, err := u.next.Sync(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, metricsDomain, "sync", status)
	u.metrics.RecordDuration(ctx, metricsDomain, "sync", time.Since(start), status)

	return output, err
}

type queueUseCaseWithMetrics struct {
	next    QueueUseCase
	metrics metrics.BusinessMetrics
}

// NewQueueUseCaseWithMetrics wraps a QueueUseCase with business metrics recording.
func NewQueueUseCaseWithMetrics(next QueueUseCase, businessMetrics metrics.BusinessMetrics) QueueUseCase {
	return &queueUseCaseWithMetrics{
		next:    next,
		metrics: businessMetrics,
	}
}

func (u *queueUseCaseWithMetrics) ProcessQueue(
	ctx context.Context,
	mutations []syncDomain.ClientMutation,
) ([]syncDomain.MutationResult, error) {
	start := time.Now()

	results, err := u.next.ProcessQueue(ctx, mutations)

	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, metricsDomain, "process_queue", status)
	u.metrics.RecordDuration(ctx, metricsDomain, "process_queue", time.Since(start), status)

	// Results keep mutation order, so the entity label comes from the input.
	for i, result := range results {
		if i >= len(mutations) {
			break
		}
		u.metrics.RecordMutationResult(ctx, string(mutations[i].Entity), string(result.Status))
	}

	return results, err
}
