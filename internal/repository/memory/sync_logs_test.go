package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

func TestAppendListsNewestFirst(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "a", Status: domain.SyncStatusSuccess}))
	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "b", Status: domain.SyncStatusInProgress}))

	logs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b", logs[0].ID)
	assert.Equal(t, "a", logs[1].ID)
	assert.False(t, logs[0].CreatedAt.IsZero())
}

func TestCompleteMarksLogTerminal(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "a", Status: domain.SyncStatusInProgress}))
	require.NoError(t, store.Complete(ctx, "a", domain.SyncStatusFailed, "provider timeout"))

	logs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncStatusFailed, logs[0].Status)
	assert.Equal(t, "provider timeout", logs[0].ErrorMessage)
	require.NotNil(t, logs[0].CompletedAt)
}

func TestCompleteRejectsTerminalTransition(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "a", Status: domain.SyncStatusInProgress}))
	require.NoError(t, store.Complete(ctx, "a", domain.SyncStatusSuccess, ""))

	err := store.Complete(ctx, "a", domain.SyncStatusFailed, "late failure")
	require.Error(t, err)

	var invalid *errors.ErrInvalidStateTransition
	assert.ErrorAs(t, err, &invalid)
}

func TestCompleteUnknownLog(t *testing.T) {
	store := NewSyncLogStore()

	err := store.Complete(context.Background(), "missing", domain.SyncStatusSuccess, "")
	require.Error(t, err)

	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestStatsCountsByStatus(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "a", Status: domain.SyncStatusSuccess}))
	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "b", Status: domain.SyncStatusSuccess}))
	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "c", Status: domain.SyncStatusFailed}))
	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "d", Status: domain.SyncStatusInProgress}))
	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "e", Status: domain.SyncStatusPending}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Success)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Pending)
}

func TestListReturnsCopy(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &domain.SyncLog{ID: "a", Status: domain.SyncStatusInProgress}))

	logs, err := store.List(ctx)
	require.NoError(t, err)
	logs[0].Status = domain.SyncStatusFailed

	fresh, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusInProgress, fresh[0].Status)
}
