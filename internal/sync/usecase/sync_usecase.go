package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/agrosync/internal/errors"
)

type syncUseCase struct {
	marketRepo    MarketRepository
	cropPriceRepo CropPriceRepository
	alertRepo     AlertRepository
	ticketRepo    TicketRepository
	pageLimit     int
	clock         Clock
}

// NewSyncUseCase creates a new syncUseCase.
func NewSyncUseCase(
	marketRepo MarketRepository,
	cropPriceRepo CropPriceRepository,
	alertRepo AlertRepository,
	ticketRepo TicketRepository,
	pageLimit int,
	clock Clock,
) SyncUseCase {
	return &syncUseCase{
		marketRepo:    marketRepo,
		cropPriceRepo: cropPriceRepo,
		alertRepo:     alertRepo,
		ticketRepo:    ticketRepo,
		pageLimit:     pageLimit,
		clock:         clock,
	}
}

// Sync returns every row changed after the client's cursor, one capped page
// per collection, plus the next cursor. A client holding a full page simply
// calls again with the new cursor until the backlog drains.
func (u *syncUseCase) Sync(ctx context.Context, input SyncInput) (*SyncOutput, error) {
	if input.UserID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user_id is required")
	}

	serverTime := u.clock().UTC()

	markets, err := u.marketRepo.ListChangedSince(ctx, input.Since, input.Areas, u.pageLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed markets")
	}

	cropPrices, err := u.cropPriceRepo.ListChangedSince(ctx, input.Since, input.CropKeys, u.pageLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed crop prices")
	}

	alerts, err := u.alertRepo.ListChangedSince(ctx, input.UserID, input.Since, u.pageLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed alerts")
	}

	tickets, err := u.ticketRepo.ListChangedSince(ctx, input.UserID, input.Since, u.pageLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed tickets")
	}

	output := &SyncOutput{
		ServerTime: serverTime,
		Markets:    markets,
		CropPrices: cropPrices,
		Alerts:     alerts,
		Tickets:    tickets,
	}
	output.NextSince = u.nextSince(input.Since, serverTime, output)

	return output, nil
}

// nextSince is the only place the cursor advances. It is the maximum
// updated_at observed across every collection in this response, the current
// server time when nothing changed, and never behind the cursor the client
// sent in.
func (u *syncUseCase) nextSince(since *time.Time, serverTime time.Time, output *SyncOutput) time.Time {
	next := time.Time{}

	for _, market := range output.Markets {
		if market.UpdatedAt.After(next) {
			next = market.UpdatedAt
		}
	}
	for _, price := range output.CropPrices {
		if price.UpdatedAt.After(next) {
			next = price.UpdatedAt
		}
	}
	for _, alert := range output.Alerts {
		if alert.UpdatedAt.After(next) {
			next = alert.UpdatedAt
		}
	}
	for _, ticket := range output.Tickets {
		if ticket.UpdatedAt.After(next) {
			next = ticket.UpdatedAt
		}
	}

	if next.IsZero() {
		next = serverTime
	}
	if since != nil && next.Before(*since) {
		next = *since
	}

	return next
}
