// Package usecase implements the sync and queue coordinators.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	alertsDomain "github.com/allisson/agrosync/internal/alerts/domain"
	outboxDomain "github.com/allisson/agrosync/internal/outbox/domain"
	refdataDomain "github.com/allisson/agrosync/internal/refdata/domain"
	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
	ticketsDomain "github.com/allisson/agrosync/internal/tickets/domain"
)

// MarketRepository defines the delta read operations for markets.
type MarketRepository interface {
	ListChangedSince(ctx context.Context, since *time.Time, areas []string, limit int) ([]*refdataDomain.Market, error)
}

// CropPriceRepository defines the delta read operations for crop prices.
type CropPriceRepository interface {
	ListChangedSince(ctx context.Context, since *time.Time, cropKeys []string, limit int) ([]*refdataDomain.CropPrice, error)
}

// AlertRepository defines the operations the coordinators need for alerts.
type AlertRepository interface {
	ListChangedSince(ctx context.Context, userID string, since *time.Time, limit int) ([]*alertsDomain.Alert, error)
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*alertsDomain.Alert, error)
	Insert(ctx context.Context, alert *alertsDomain.Alert) error
	Update(ctx context.Context, alert *alertsDomain.Alert) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// TicketRepository defines the operations the coordinators need for tickets.
type TicketRepository interface {
	ListChangedSince(ctx context.Context, userID string, since *time.Time, limit int) ([]*ticketsDomain.Ticket, error)
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*ticketsDomain.Ticket, error)
	Insert(ctx context.Context, ticket *ticketsDomain.Ticket) error
	UpdateStatus(ctx context.Context, id uuid.UUID, userID string, status ticketsDomain.Status, updatedAt time.Time) error
}

// OutboxRepository defines the mutation ledger operations.
type OutboxRepository interface {
	GetByMutationID(ctx context.Context, mutationID string) (*outboxDomain.MutationRecord, error)
	Create(ctx context.Context, record *outboxDomain.MutationRecord) error
}

// Clock supplies the current time; injected for deterministic tests.
type Clock func() time.Time

// SyncInput is the request for one sync call.
type SyncInput struct {
	UserID   string
	Since    *time.Time
	Areas    []string
	CropKeys []string
}

// SyncOutput bundles the delta for one sync call together with the cursor the
// client must persist and resend on its next call.
type SyncOutput struct {
	ServerTime time.Time
	NextSince  time.Time
	Markets    []*refdataDomain.Market
	CropPrices []*refdataDomain.CropPrice
	Alerts     []*alertsDomain.Alert
	Tickets    []*ticketsDomain.Ticket
}

// SyncUseCase is the read-side coordinator: it computes "what changed since
// the cursor" across every entity collection for one user.
type SyncUseCase interface {
	Sync(ctx context.Context, input SyncInput) (*SyncOutput, error)
}

// QueueUseCase is the write-side coordinator: it applies a batch of queued
// client mutations with per-item idempotency and partial-failure isolation.
type QueueUseCase interface {
	ProcessQueue(ctx context.Context, mutations []syncDomain.ClientMutation) ([]syncDomain.MutationResult, error)
}
