package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/agrosync/internal/errors"
	"github.com/allisson/agrosync/internal/metrics"
	syncDomain "github.com/allisson/agrosync/internal/sync/domain"
)

// mockSyncUseCase is a mock implementation of SyncUseCase for decorator tests.
type mockSyncUseCase struct {
	mock.Mock
}

func (m *mockSyncUseCase) Sync(ctx context.Context, input SyncInput) (*SyncOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SyncOutput), args.Error(1)
}

// mockQueueUseCase is a mock implementation of QueueUseCase for decorator tests.
type mockQueueUseCase struct {
	mock.Mock
}

func (m *mockQueueUseCase) ProcessQueue(
	ctx context.Context,
	mutations []syncDomain.ClientMutation,
) ([]syncDomain.MutationResult, error) {
	args := m.Called(ctx, mutations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncDomain.MutationResult), args.Error(1)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordMutationResult(ctx context.Context, entity, status string) {
	m.Called(ctx, entity, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestMetricsDecorator_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &mockSyncUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := SyncInput{UserID: "user-1"}
		output := &SyncOutput{ServerTime: time.Now().UTC()}

		mockUseCase.On("Sync", ctx, input).Return(output, nil)
		mockMetrics.On("RecordOperation", ctx, "sync", "sync", "success").Return()
		mockMetrics.On("RecordDuration", ctx, "sync", "sync", mock.Anything, "success").Return()

		decorator := NewSyncUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Sync(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, output, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &mockSyncUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := SyncInput{UserID: "user-1"}

		mockUseCase.On("Sync", ctx, input).Return(nil, errors.New("boom"))
		mockMetrics.On("RecordOperation", ctx, "sync", "sync", "error").Return()
		mockMetrics.On("RecordDuration", ctx, "sync", "sync", mock.Anything, "error").Return()

		decorator := NewSyncUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Sync(ctx, input)

		assert.Error(t, err)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_ProcessQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("RecordsPerMutationResults", func(t *testing.T) {
		mockUseCase := &mockQueueUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mutations := []syncDomain.ClientMutation{
			{MutationID: "m1", Entity: syncDomain.EntityAlert},
			{MutationID: "m2", Entity: syncDomain.EntityTicket},
		}
		results := []syncDomain.MutationResult{
			{MutationID: "m1", Status: syncDomain.ResultApplied},
			{MutationID: "m2", Status: syncDomain.ResultError},
		}

		mockUseCase.On("ProcessQueue", ctx, mutations).Return(results, nil)
		mockMetrics.On("RecordOperation", ctx, "sync", "process_queue", "success").Return()
		mockMetrics.On("RecordDuration", ctx, "sync", "process_queue", mock.Anything, "success").Return()
		mockMetrics.On("RecordMutationResult", ctx, "alert", "applied").Return()
		mockMetrics.On("RecordMutationResult", ctx, "ticket", "error").Return()

		decorator := NewQueueUseCaseWithMetrics(mockUseCase, mockMetrics)
		got, err := decorator.ProcessQueue(ctx, mutations)

		assert.NoError(t, err)
		assert.Equal(t, results, got)
		mockMetrics.AssertExpectations(t)
	})
}
