// Package memory provides an in-memory SyncLogStore. It backs tests and
// deployments without a database; all mutation goes through a single mutex
// so concurrent imports cannot race on the log list.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/pkg/errors"
)

type SyncLogStore struct {
	mu   sync.Mutex
	logs []domain.SyncLog
}

// NewSyncLogStore creates an empty in-memory sync log store
func NewSyncLogStore() *SyncLogStore {
	return &SyncLogStore{}
}

func (s *SyncLogStore) Append(_ context.Context, log *domain.SyncLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	// Newest first, matching the reporting surface's expectations
	s.logs = append([]domain.SyncLog{*log}, s.logs...)
	return nil
}

func (s *SyncLogStore) Complete(_ context.Context, id string, status domain.SyncStatus, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.logs {
		if s.logs[i].ID != id {
			continue
		}
		if !s.logs[i].Status.CanTransitionTo(status) {
			return &errors.ErrInvalidStateTransition{From: s.logs[i].Status, To: status}
		}
		now := time.Now()
		s.logs[i].Status = status
		s.logs[i].ErrorMessage = errorMessage
		s.logs[i].CompletedAt = &now
		return nil
	}

	return &errors.ErrNotFound{Resource: "sync log", ID: id}
}

func (s *SyncLogStore) List(_ context.Context) ([]domain.SyncLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]domain.SyncLog, len(s.logs))
	copy(logs, s.logs)
	return logs, nil
}

func (s *SyncLogStore) Stats(_ context.Context) (domain.SyncStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats domain.SyncStats
	for _, log := range s.logs {
		stats.Total++
		switch log.Status {
		case domain.SyncStatusPending:
			stats.Pending++
		case domain.SyncStatusSuccess:
			stats.Success++
		case domain.SyncStatusFailed:
			stats.Failed++
		case domain.SyncStatusInProgress:
			stats.InProgress++
		}
	}

	return stats, nil
}
