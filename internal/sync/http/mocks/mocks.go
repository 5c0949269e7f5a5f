// Package mocks provides testify mocks for the sync HTTP handler dependencies.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
	"github.com/allisson/agrosync/internal/sync/usecase"
)

// SyncUseCase is a mock implementation of usecase.SyncUseCase.
type SyncUseCase struct {
	mock.Mock
}

func (m *SyncUseCase) Sync(ctx context.Context, input usecase.SyncInput) (*usecase.SyncOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SyncOutput), args.Error(1)
}

// QueueUseCase is a mock implementation of usecase.QueueUseCase.
type QueueUseCase struct {
	mock.Mock
}

func (m *QueueUseCase) ProcessQueue(
	ctx context.Context,
	mutations []syncDomain.ClientMutation,
) ([]syncDomain.MutationResult, error) {
	args := m.Called(ctx, mutations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncDomain.MutationResult), args.Error(1)
}
