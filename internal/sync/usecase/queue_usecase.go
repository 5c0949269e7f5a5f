package usecase

import (
	"context"

	"github.com/allisson/agrosync/internal/database"
	apperrors "github.com/allisson/agrosync/internal/errors"
	outboxDomain "github.com/allisson/agrosync/internal/outbox/domain"
	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
)

type queueUseCase struct {
	applier    *mutationApplier
	outboxRepo OutboxRepository
	txManager  database.TxManager
	clock      Clock
}

// NewQueueUseCase creates a new queueUseCase.
func NewQueueUseCase(
	alertRepo AlertRepository,
	ticketRepo TicketRepository,
	outboxRepo OutboxRepository,
	txManager database.TxManager,
	clock Clock,
) QueueUseCase {
	return &queueUseCase{
		applier:    newMutationApplier(alertRepo, ticketRepo, clock),
		outboxRepo: outboxRepo,
		txManager:  txManager,
		clock:      clock,
	}
}

// ProcessQueue applies a batch of client mutations inside one transaction.
//
// Each item resolves independently: duplicates short-circuit to skipped,
// domain rejections are recorded in the ledger as errors, and only an
// infrastructure fault aborts the batch. An aborted batch leaves no ledger
// rows behind, so the client can resubmit it wholesale and already-applied
// items from earlier batches still dedupe correctly.
func (u *queueUseCase) ProcessQueue(
	ctx context.Context,
	mutations []syncDomain.ClientMutation,
) ([]syncDomain.MutationResult, error) {
	results := make([]syncDomain.MutationResult, 0, len(mutations))

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, mutation := range mutations {
			result, err := u.processMutation(ctx, mutation)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to process mutation queue")
	}

	return results, nil
}

func (u *queueUseCase) processMutation(
	ctx context.Context,
	mutation syncDomain.ClientMutation,
) (syncDomain.MutationResult, error) {
	// Idempotency check first: a mutation id already present in the ledger was
	// fully resolved by an earlier request (applied or rejected), so the retry
	// reports skipped regardless of how the resubmitted envelope looks. An
	// id-less mutation cannot be keyed and goes straight to validation.
	if mutation.MutationID != "" {
		_, err := u.outboxRepo.GetByMutationID(ctx, mutation.MutationID)
		if err == nil {
			return syncDomain.MutationResult{
				MutationID: mutation.MutationID,
				Status:     syncDomain.ResultSkipped,
				Message:    "duplicate",
			}, nil
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return syncDomain.MutationResult{}, err
		}
	}

	if err := mutation.Validate(); err != nil {
		return u.resolveError(ctx, mutation, err)
	}

	if err := u.applier.Apply(ctx, mutation); err != nil {
		if !isDomainError(err) {
			return syncDomain.MutationResult{}, err
		}
		return u.resolveError(ctx, mutation, err)
	}

	if err := u.recordOutcome(ctx, mutation, outboxDomain.RecordStatusApplied, ""); err != nil {
		return syncDomain.MutationResult{}, err
	}

	return syncDomain.MutationResult{
		MutationID: mutation.MutationID,
		Status:     syncDomain.ResultApplied,
	}, nil
}

// resolveError records a domain-level rejection in the ledger and reports it
// back to the client without aborting the batch. A mutation that arrived
// without an id cannot be keyed, so only its result is emitted.
func (u *queueUseCase) resolveError(
	ctx context.Context,
	mutation syncDomain.ClientMutation,
	domainErr error,
) (syncDomain.MutationResult, error) {
	if mutation.MutationID != "" {
		if err := u.recordOutcome(ctx, mutation, outboxDomain.RecordStatusError, domainErr.Error()); err != nil {
			return syncDomain.MutationResult{}, err
		}
	}

	return syncDomain.MutationResult{
		MutationID: mutation.MutationID,
		Status:     syncDomain.ResultError,
		Message:    domainErr.Error(),
	}, nil
}

func (u *queueUseCase) recordOutcome(
	ctx context.Context,
	mutation syncDomain.ClientMutation,
	status outboxDomain.RecordStatus,
	message string,
) error {
	now := u.clock().UTC()
	record := &outboxDomain.MutationRecord{
		MutationID: mutation.MutationID,
		UserID:     mutation.UserID,
		Entity:     string(mutation.Entity),
		Op:         string(mutation.Op),
		Status:     status,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := u.outboxRepo.Create(ctx, record)
	if err != nil && !apperrors.Is(err, apperrors.ErrConflict) {
		return err
	}
	return nil
}
