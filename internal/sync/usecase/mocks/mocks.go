// Package mocks provides testify mocks for the sync use case dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	alertsDomain "github.com/allisson/agrosync/internal/alerts/domain"
	outboxDomain "github.com/allisson/agrosync/internal/outbox/domain"
	refdataDomain "github.com/allisson/agrosync/internal/refdata/domain"
	ticketsDomain "github.com/allisson/agrosync/internal/tickets/domain"
)

// MarketRepository is a mock implementation of usecase.MarketRepository.
type MarketRepository struct {
	mock.Mock
}

func (m *MarketRepository) ListChangedSince(
	ctx context.Context,
	since *time.Time,
	areas []string,
	limit int,
) ([]*refdataDomain.Market, error) {
	args := m.Called(ctx, since, areas, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*refdataDomain.Market), args.Error(1)
}

// CropPriceRepository is a mock implementation of usecase.CropPriceRepository.
type CropPriceRepository struct {
	mock.Mock
}

func (m *CropPriceRepository) ListChangedSince(
	ctx context.Context,
	since *time.Time,
	cropKeys []string,
	limit int,
) ([]*refdataDomain.CropPrice, error) {
	args := m.Called(ctx, since, cropKeys, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*refdataDomain.CropPrice), args.Error(1)
}

// AlertRepository is a mock implementation of usecase.AlertRepository.
type AlertRepository struct {
	mock.Mock
}

func (m *AlertRepository) ListChangedSince(
	ctx context.Context,
	userID string,
	since *time.Time,
	limit int,
) ([]*alertsDomain.Alert, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*alertsDomain.Alert), args.Error(1)
}

func (m *AlertRepository) GetByID(ctx context.Context, id uuid.UUID, userID string) (*alertsDomain.Alert, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alertsDomain.Alert), args.Error(1)
}

func (m *AlertRepository) Insert(ctx context.Context, alert *alertsDomain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *AlertRepository) Update(ctx context.Context, alert *alertsDomain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *AlertRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// TicketRepository is a mock implementation of usecase.TicketRepository.
type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) ListChangedSince(
	ctx context.Context,
	userID string,
	since *time.Time,
	limit int,
) ([]*ticketsDomain.Ticket, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticketsDomain.Ticket), args.Error(1)
}

func (m *TicketRepository) GetByID(ctx context.Context, id uuid.UUID, userID string) (*ticketsDomain.Ticket, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticketsDomain.Ticket), args.Error(1)
}

func (m *TicketRepository) Insert(ctx context.Context, ticket *ticketsDomain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	userID string,
	status ticketsDomain.Status,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, id, userID, status, updatedAt)
	return args.Error(0)
}

// OutboxRepository is a mock implementation of usecase.OutboxRepository.
type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) GetByMutationID(ctx context.Context, mutationID string) (*outboxDomain.MutationRecord, error) {
	args := m.Called(ctx, mutationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outboxDomain.MutationRecord), args.Error(1)
}

func (m *OutboxRepository) Create(ctx context.Context, record *outboxDomain.MutationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// TxManager is a mock implementation of database.TxManager. When the
// configured return is nil it runs the callback so per-item behavior inside
// the transaction stays observable in tests.
type TxManager struct {
	mock.Mock
}

func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
