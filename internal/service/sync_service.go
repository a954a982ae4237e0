package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/internal/repository"
	"github.com/sencommerce/podbridge/pkg/errors"
)

const (
	ProviderPrintful = "printful"
	ProviderDigital  = "digital"
)

// SyncService orchestrates catalog synchronization: listing importable
// provider products, importing selected ones, and running the out-of-band
// sync actions.
type SyncService struct {
	client   ProviderAPI
	repos    *repository.Repositories
	pricing  PricingPolicy
	variants *variantResolver
	store    config.StoreConfig
	workers  int
	logger   *zap.Logger

	tasks     chan syncTask
	taskWG    sync.WaitGroup
	closeOnce sync.Once
	closeMu   sync.Mutex
	closed    bool
}

// NewSyncService creates the sync engine and starts its background task
// worker. Call Close to drain it on shutdown.
func NewSyncService(
	client ProviderAPI,
	repos *repository.Repositories,
	pricing PricingPolicy,
	store config.StoreConfig,
	workers int,
	logger *zap.Logger,
) *SyncService {
	if workers < 1 {
		workers = 4
	}

	s := &SyncService{
		client:   client,
		repos:    repos,
		pricing:  pricing,
		variants: NewVariantResolver(client, logger),
		store:    store,
		workers:  workers,
		logger:   logger,
		tasks:    make(chan syncTask, 16),
	}

	s.taskWG.Add(1)
	go s.runTasks()

	return s
}

// Overview returns sync logs, per-status stats, and the import candidates
// from both providers. The three upstream fetches run concurrently; a failed
// fetch degrades to an empty list instead of failing the whole response.
func (s *SyncService) Overview(ctx context.Context) (*SyncOverview, error) {
	var (
		wg               sync.WaitGroup
		catalogProducts  []printful.CatalogProduct
		importedIDs      []string
		digitalProducts  []*domain.DigitalProduct
		importedDigitals []string
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		products, err := s.client.FetchCatalogProducts(ctx)
		if err != nil {
			s.logger.Warn("Printful catalog not available", zap.Error(err))
			return
		}
		catalogProducts = products
	}()

	go func() {
		defer wg.Done()
		ids, err := s.repos.Product.ListProviderProductIDs(ctx, ProviderPrintful)
		if err != nil {
			s.logger.Warn("Failed to list imported Printful products", zap.Error(err))
			return
		}
		importedIDs = ids
	}()

	go func() {
		defer wg.Done()
		products, err := s.repos.DigitalProduct.List(ctx)
		if err != nil {
			s.logger.Warn("Digital products not available", zap.Error(err))
			return
		}
		digitalProducts = products

		ids, err := s.repos.Product.ListProviderProductIDs(ctx, ProviderDigital)
		if err != nil {
			s.logger.Warn("Failed to list imported digital products", zap.Error(err))
			return
		}
		importedDigitals = ids
	}()

	wg.Wait()

	logs, err := s.repos.SyncLog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync logs: %w", err)
	}
	stats, err := s.repos.SyncLog.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sync stats: %w", err)
	}

	imported := make(map[string]bool, len(importedIDs))
	for _, id := range importedIDs {
		imported[id] = true
	}
	importedDigital := make(map[string]bool, len(importedDigitals))
	for _, id := range importedDigitals {
		importedDigital[id] = true
	}

	available := AvailableProducts{
		Printful: make([]AvailableProduct, 0, len(catalogProducts)),
		Digital:  make([]AvailableDigitalProduct, 0, len(digitalProducts)),
	}
	for _, p := range catalogProducts {
		id := strconv.FormatInt(p.ID, 10)
		available.Printful = append(available.Printful, AvailableProduct{
			ID:              id,
			Name:            p.Name,
			Description:     p.Description,
			ThumbnailURL:    p.ThumbnailURL,
			Status:          "available",
			Provider:        ProviderPrintful,
			AlreadyImported: imported[id],
		})
	}
	for _, dp := range digitalProducts {
		available.Digital = append(available.Digital, AvailableDigitalProduct{
			ID:              dp.ID,
			Name:            dp.Name,
			Description:     dp.Description,
			FileSize:        dp.FileSize,
			MimeType:        dp.MimeType,
			Status:          "available",
			Provider:        ProviderDigital,
			AlreadyImported: importedDigital[dp.ID],
		})
	}

	return &SyncOverview{
		Logs:              logs,
		Stats:             stats,
		AvailableProducts: available,
	}, nil
}

// ImportProducts imports the selected provider products as a best-effort
// batch: one item's failure never prevents the others from being attempted.
func (s *SyncService) ImportProducts(ctx context.Context, provider string, productIDs []string) (*ImportResult, error) {
	if provider != ProviderPrintful && provider != ProviderDigital {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	batchLog := &domain.SyncLog{
		ID:           newSyncID("sync"),
		SyncType:     domain.SyncTypeImportProducts,
		Status:       domain.SyncStatusInProgress,
		ProviderType: provider,
	}
	if err := s.repos.SyncLog.Append(ctx, batchLog); err != nil {
		return nil, fmt.Errorf("failed to create sync log: %w", err)
	}

	// Completion writes run on a detached context: a caller abandoning the
	// request must not leave the batch log stuck in_progress
	logCtx := context.WithoutCancel(ctx)

	result, err := s.importBatch(ctx, provider, productIDs)
	if err != nil {
		if cerr := s.repos.SyncLog.Complete(logCtx, batchLog.ID, domain.SyncStatusFailed, err.Error()); cerr != nil {
			s.logger.Error("Failed to complete sync log", zap.Error(cerr))
		}
		return nil, err
	}

	status := domain.SyncStatusSuccess
	errMsg := ""
	if result.Failed > 0 {
		status = domain.SyncStatusFailed
		errMsg = fmt.Sprintf("%d of %d products failed to import", result.Failed, len(productIDs))
	}
	if cerr := s.repos.SyncLog.Complete(logCtx, batchLog.ID, status, errMsg); cerr != nil {
		s.logger.Error("Failed to complete sync log", zap.Error(cerr))
	}

	return result, nil
}

// importBatch runs the per-item import loop over a bounded worker pool,
// collecting per-item outcomes without aborting on failure.
func (s *SyncService) importBatch(ctx context.Context, provider string, productIDs []string) (*ImportResult, error) {
	var catalog map[string]printful.CatalogProduct
	if provider == ProviderPrintful {
		products, err := s.client.FetchCatalogProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch Printful catalog: %w", err)
		}
		catalog = make(map[string]printful.CatalogProduct, len(products))
		for _, p := range products {
			catalog[strconv.FormatInt(p.ID, 10)] = p
		}
	}

	var (
		mu     sync.Mutex
		seen   = make(map[string]bool, len(productIDs))
		result = &ImportResult{
			ImportedProducts: []ImportedProduct{},
			Errors:           []ImportError{},
		}
	)

	jobs := make(chan string)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(productIDs) {
		workers = len(productIDs)
	}
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for productID := range jobs {
				imported, err := s.importOne(ctx, provider, productID, catalog)

				mu.Lock()
				if err != nil {
					result.Failed++
					result.Errors = append(result.Errors, ImportError{
						ProductID: productID,
						Error:     err.Error(),
					})
				} else {
					result.Imported++
					result.ImportedProducts = append(result.ImportedProducts, *imported)
				}
				mu.Unlock()

				s.appendItemLog(ctx, provider, productID, imported, err)
			}
		}()
	}

	for _, id := range productIDs {
		mu.Lock()
		dup := seen[id]
		seen[id] = true
		mu.Unlock()
		if dup {
			continue
		}
		select {
		case jobs <- id:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	return result, nil
}

func (s *SyncService) importOne(ctx context.Context, provider, productID string, catalog map[string]printful.CatalogProduct) (*ImportedProduct, error) {
	exists, err := s.repos.Product.ExistsByProviderProductID(ctx, provider, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing product: %w", err)
	}
	if exists {
		return nil, &errors.ErrAlreadyImported{ProviderProductID: productID}
	}

	var product *domain.Product
	switch provider {
	case ProviderPrintful:
		product, err = s.buildPrintfulProduct(productID, catalog)
	case ProviderDigital:
		product, err = s.buildDigitalProduct(ctx, productID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		// Lost the race against a concurrent import of the same id; the
		// store's unique index is the dedup authority
		if dup, ok := err.(*errors.ErrAlreadyImported); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Imported product",
		zap.String("provider", provider),
		zap.String("provider_product_id", productID),
		zap.String("product_id", product.ID.String()),
	)

	return &ImportedProduct{
		ProductID:         productID,
		InternalProductID: product.ID.String(),
		Provider:          provider,
	}, nil
}

func (s *SyncService) buildPrintfulProduct(productID string, catalog map[string]printful.CatalogProduct) (*domain.Product, error) {
	catalogProduct, ok := catalog[productID]
	if !ok {
		return nil, fmt.Errorf("product not found in Printful")
	}

	// Guard against missing provider data with deterministic fallbacks so no
	// import silently produces an invalid internal product
	title := catalogProduct.Name
	if title == "" {
		title = "Printful Product " + productID
	}

	price, err := s.pricing.Price(catalogProduct, nil)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		Title:          title,
		Description:    catalogProduct.Description,
		Status:         domain.ProductStatusDraft,
		ThumbnailURL:   catalogProduct.ThumbnailURL,
		SKU:            "printful-" + productID,
		PriceAmount:    price,
		CurrencyCode:   "usd",
		SalesChannelID: s.store.SalesChannelID,
		Metadata: domain.FulfillmentMetadata{
			FulfillmentType:   domain.FulfillmentTypePrintfulPOD,
			PrintfulProductID: productID,
			SourceProvider:    ProviderPrintful,
		},
	}, nil
}

func (s *SyncService) buildDigitalProduct(ctx context.Context, productID string) (*domain.Product, error) {
	digital, err := s.repos.DigitalProduct.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("digital product not found: %w", err)
	}

	price, err := s.pricing.Price(printful.CatalogProduct{}, nil)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		Title:          digital.Name,
		Description:    digital.Description,
		Status:         domain.ProductStatusDraft,
		SKU:            "digital-" + productID,
		PriceAmount:    price,
		CurrencyCode:   "usd",
		SalesChannelID: s.store.SalesChannelID,
		Metadata: domain.FulfillmentMetadata{
			FulfillmentType:  domain.FulfillmentTypeDigitalDownload,
			DigitalProductID: productID,
			SourceProvider:   ProviderDigital,
		},
	}, nil
}

// appendItemLog records one per-item outcome alongside the batch log
func (s *SyncService) appendItemLog(ctx context.Context, provider, productID string, imported *ImportedProduct, itemErr error) {
	now := time.Now()
	log := &domain.SyncLog{
		ID:           newSyncID("import"),
		ProductID:    productID,
		SyncType:     domain.SyncTypeImport,
		Status:       domain.SyncStatusSuccess,
		ProviderType: provider,
		CreatedAt:    now,
		CompletedAt:  &now,
	}
	if itemErr != nil {
		log.Status = domain.SyncStatusFailed
		log.ErrorMessage = itemErr.Error()
	} else if imported != nil {
		log.ProductID = imported.InternalProductID
	}

	// Detached context: item outcomes are recorded even when the batch was
	// canceled mid-flight
	if err := s.repos.SyncLog.Append(context.WithoutCancel(ctx), log); err != nil {
		s.logger.Error("Failed to append item sync log", zap.Error(err))
	}
}

// newSyncID builds a time-based log id. The time prefix is part of the
// observable API; the uuid suffix keeps ids unique under concurrent imports.
func newSyncID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
