package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// syncTask is one queued out-of-band sync action
type syncTask struct {
	syncID   string
	action   domain.SyncType
	provider string
}

// StartSync queues a non-import sync action and returns its sync log id
// immediately; callers poll the log for completion.
func (s *SyncService) StartSync(ctx context.Context, action domain.SyncType, provider string) (string, error) {
	switch action {
	case domain.SyncTypeBulkImport, domain.SyncTypeUpdatePrices, domain.SyncTypeCheckInventory:
	default:
		return "", &errors.ErrInvalidSyncAction{Action: string(action)}
	}

	log := &domain.SyncLog{
		ID:           newSyncID("sync"),
		SyncType:     action,
		Status:       domain.SyncStatusInProgress,
		ProviderType: provider,
	}
	if err := s.repos.SyncLog.Append(ctx, log); err != nil {
		return "", fmt.Errorf("failed to create sync log: %w", err)
	}

	if err := s.enqueue(syncTask{syncID: log.ID, action: action, provider: provider}); err != nil {
		if cerr := s.repos.SyncLog.Complete(context.WithoutCancel(ctx), log.ID, domain.SyncStatusFailed, err.Error()); cerr != nil {
			s.logger.Error("Failed to complete sync log", zap.Error(cerr))
		}
		return "", err
	}

	return log.ID, nil
}

// enqueue hands a task to the background worker. The mutex orders enqueues
// against Close so a send can never hit a closed channel.
func (s *SyncService) enqueue(task syncTask) error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return fmt.Errorf("sync service is shut down")
	}

	select {
	case s.tasks <- task:
		return nil
	default:
		return fmt.Errorf("sync queue full")
	}
}

// Close stops accepting background tasks and waits for the worker to drain
func (s *SyncService) Close() {
	s.closeOnce.Do(func() {
		s.closeMu.Lock()
		s.closed = true
		close(s.tasks)
		s.closeMu.Unlock()
	})
	s.taskWG.Wait()
}

func (s *SyncService) runTasks() {
	defer s.taskWG.Done()

	for task := range s.tasks {
		s.executeTask(context.Background(), task)
	}
}

func (s *SyncService) executeTask(ctx context.Context, task syncTask) {
	s.logger.Info("Running sync task",
		zap.String("sync_id", task.syncID),
		zap.String("action", string(task.action)),
		zap.String("provider", task.provider),
	)

	var err error
	switch task.action {
	case domain.SyncTypeBulkImport:
		err = s.runBulkImport(ctx, task.provider)
	case domain.SyncTypeUpdatePrices:
		err = s.runUpdatePrices(ctx)
	case domain.SyncTypeCheckInventory:
		err = s.runCheckInventory(ctx)
	}

	status := domain.SyncStatusSuccess
	errMsg := ""
	if err != nil {
		status = domain.SyncStatusFailed
		errMsg = err.Error()
		s.logger.Error("Sync task failed",
			zap.String("sync_id", task.syncID),
			zap.Error(err),
		)
	}

	if cerr := s.repos.SyncLog.Complete(ctx, task.syncID, status, errMsg); cerr != nil {
		s.logger.Error("Failed to complete sync log", zap.Error(cerr))
	}
}

// runBulkImport imports every provider product not yet linked to an internal
// product
func (s *SyncService) runBulkImport(ctx context.Context, provider string) error {
	if provider != ProviderPrintful {
		return fmt.Errorf("bulk import not supported for provider: %s", provider)
	}

	products, err := s.client.FetchCatalogProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch Printful catalog: %w", err)
	}

	importedIDs, err := s.repos.Product.ListProviderProductIDs(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to list imported products: %w", err)
	}
	imported := make(map[string]bool, len(importedIDs))
	for _, id := range importedIDs {
		imported[id] = true
	}

	var pending []string
	for _, p := range products {
		id := strconv.FormatInt(p.ID, 10)
		if !imported[id] {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	result, err := s.importBatch(ctx, provider, pending)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d products failed to import", result.Failed, len(pending))
	}
	return nil
}

// runUpdatePrices re-prices every internal product through the pricing policy
func (s *SyncService) runUpdatePrices(ctx context.Context) error {
	products, err := s.repos.Product.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	var failed int
	for _, product := range products {
		price, err := s.pricing.Price(printful.CatalogProduct{Name: product.Title}, nil)
		if err != nil {
			failed++
			continue
		}
		if err := s.repos.Product.UpdatePrice(ctx, product.ID, price, product.CurrencyCode); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d price updates failed", failed, len(products))
	}
	return nil
}

// runCheckInventory verifies every imported Printful product still resolves
// to a sellable variant
func (s *SyncService) runCheckInventory(ctx context.Context) error {
	ids, err := s.repos.Product.ListProviderProductIDs(ctx, ProviderPrintful)
	if err != nil {
		return fmt.Errorf("failed to list imported products: %w", err)
	}

	var failed int
	for _, id := range ids {
		if _, err := s.variants.Resolve(ctx, id); err != nil {
			s.logger.Warn("Imported product no longer sellable",
				zap.String("printful_product_id", id),
				zap.Error(err),
			)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d products are no longer sellable", failed, len(ids))
	}
	return nil
}
