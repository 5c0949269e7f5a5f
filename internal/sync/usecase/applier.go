package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	alertsDomain "github.com/allisson/agrosync/internal/alerts/domain"
	apperrors "github.com/allisson/agrosync/internal/errors"
	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
	ticketsDomain "github.com/allisson/agrosync/internal/tickets/domain"
)

// mutationApplier turns one validated client mutation into a store write.
//
// Every rejection it produces is a domain error (wrapped in ErrInvalidInput or
// ErrUnauthorized); anything else bubbling out of a repository is an
// infrastructure fault and aborts the whole batch upstream.
type mutationApplier struct {
	alertRepo  AlertRepository
	ticketRepo TicketRepository
	clock      Clock
}

func newMutationApplier(alertRepo AlertRepository, ticketRepo TicketRepository, clock Clock) *mutationApplier {
	return &mutationApplier{
		alertRepo:  alertRepo,
		ticketRepo: ticketRepo,
		clock:      clock,
	}
}

// Apply dispatches on the mutation's entity tag. A nil return means the
// mutation reached a terminal applied outcome, which covers writes that were
// deliberately skipped by last-write-wins or terminal-state protection.
func (a *mutationApplier) Apply(ctx context.Context, m syncDomain.ClientMutation) error {
	switch m.Entity {
	case syncDomain.EntityAlert:
		return a.applyAlert(ctx, m)
	case syncDomain.EntityTicket:
		return a.applyTicket(ctx, m)
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("Unsupported entity: %s", m.Entity))
	}
}

func (a *mutationApplier) applyAlert(ctx context.Context, m syncDomain.ClientMutation) error {
	var payload syncDomain.AlertPayload
	if err := json.Unmarshal(m.Data, &payload); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid alert payload")
	}
	if payload.ID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "alert id is required")
	}

	switch m.Op {
	case syncDomain.OpDelete:
		// Deleting an absent row is not an error.
		return a.alertRepo.Delete(ctx, payload.ID, m.UserID)
	case syncDomain.OpInsert, syncDomain.OpUpdate:
		return a.upsertAlert(ctx, m.UserID, payload)
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("Unsupported op for alert: %s", m.Op))
	}
}

// upsertAlert inserts when no row exists and otherwise applies last-write-wins:
// only an incoming updated_at strictly newer than the stored one replaces the
// row. A stale or missing incoming timestamp leaves the store untouched and
// still counts as applied.
func (a *mutationApplier) upsertAlert(ctx context.Context, userID string, payload syncDomain.AlertPayload) error {
	now := a.clock()

	stored, err := a.alertRepo.GetByID(ctx, payload.ID, userID)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		alert := &alertsDomain.Alert{
			ID:        payload.ID,
			UserID:    userID,
			CropKey:   payload.CropKey,
			TargetMin: payload.TargetMin,
			TargetMax: payload.TargetMax,
			Unit:      payload.Unit,
			Active:    payload.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return a.alertRepo.Insert(ctx, alert)
	}

	if payload.UpdatedAt == nil || !payload.UpdatedAt.After(stored.UpdatedAt) {
		return nil
	}

	stored.CropKey = payload.CropKey
	stored.TargetMin = payload.TargetMin
	stored.TargetMax = payload.TargetMax
	stored.Unit = payload.Unit
	stored.Active = payload.Active
	stored.UpdatedAt = now
	return a.alertRepo.Update(ctx, stored)
}

func (a *mutationApplier) applyTicket(ctx context.Context, m syncDomain.ClientMutation) error {
	var payload syncDomain.TicketPayload
	if err := json.Unmarshal(m.Data, &payload); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid ticket payload")
	}
	if payload.ID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "ticket id is required")
	}

	switch m.Op {
	case syncDomain.OpInsert:
		return a.insertTicket(ctx, m.UserID, payload)
	case syncDomain.OpUpdate:
		return a.cancelTicket(ctx, m.UserID, payload)
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("Unsupported op for ticket: %s", m.Op))
	}
}

// insertTicket creates the ticket in its initial state. A ticket that already
// exists under the same id and owner is left untouched, which makes replayed
// inserts safe even when the ledger row was lost before commit.
func (a *mutationApplier) insertTicket(ctx context.Context, userID string, payload syncDomain.TicketPayload) error {
	_, err := a.ticketRepo.GetByID(ctx, payload.ID, userID)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	now := a.clock()
	ticket := &ticketsDomain.Ticket{
		ID:        payload.ID,
		UserID:    userID,
		CropKey:   payload.CropKey,
		Quantity:  payload.Quantity,
		Unit:      payload.Unit,
		Status:    ticketsDomain.StatusIssued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return a.ticketRepo.Insert(ctx, ticket)
}

// cancelTicket is the only client-requestable transition. Tickets already in
// a terminal state are protected: the mutation resolves as applied without a
// store write because the client's intent is obsolete, not wrong. The same
// last-write-wins rule as alerts applies, so a cancel whose timestamp is
// absent or not strictly newer than the stored row is a no-op.
func (a *mutationApplier) cancelTicket(ctx context.Context, userID string, payload syncDomain.TicketPayload) error {
	requested := ticketsDomain.Status(payload.Status)
	if requested != ticketsDomain.StatusCanceled {
		return apperrors.Wrap(apperrors.ErrInvalidInput,
			fmt.Sprintf("ticket status transition to %q is not allowed", payload.Status))
	}

	stored, err := a.ticketRepo.GetByID(ctx, payload.ID, userID)
	if err != nil {
		return err
	}

	if !stored.Status.ClientCancelable() {
		return nil
	}

	if payload.UpdatedAt == nil || !payload.UpdatedAt.After(stored.UpdatedAt) {
		return nil
	}

	return a.ticketRepo.UpdateStatus(ctx, stored.ID, userID, ticketsDomain.StatusCanceled, a.clock())
}

// isDomainError reports whether an apply failure is a domain-level rejection
// that should be recorded in the ledger instead of aborting the batch.
func isDomainError(err error) bool {
	return apperrors.Is(err, apperrors.ErrInvalidInput) ||
		apperrors.Is(err, apperrors.ErrNotFound) ||
		apperrors.Is(err, apperrors.ErrConflict) ||
		apperrors.Is(err, apperrors.ErrUnauthorized)
}
