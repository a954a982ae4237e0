package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
	"github.com/sencommerce/podbridge/internal/domain"
	"github.com/sencommerce/podbridge/internal/printful"
	"github.com/sencommerce/podbridge/internal/repository"
	"github.com/sencommerce/podbridge/internal/repository/memory"
	"github.com/sencommerce/podbridge/internal/service"
	"github.com/sencommerce/podbridge/pkg/errors"
)

// stubAPI is a canned-response Printful client for handler tests
type stubAPI struct {
	catalog      []printful.CatalogProduct
	syncProducts map[string]*printful.SyncProductDetail
	createOrder  func(*printful.OrderRequest) (*printful.Order, error)
	lastOrder    *printful.OrderRequest
}

func (s *stubAPI) FetchCatalogProducts(_ context.Context) ([]printful.CatalogProduct, error) {
	return s.catalog, nil
}

func (s *stubAPI) GetSyncProduct(_ context.Context, id string) (*printful.SyncProductDetail, error) {
	if detail, ok := s.syncProducts[id]; ok {
		return detail, nil
	}
	return nil, &printful.APIError{StatusCode: 404, Body: "not found"}
}

func (s *stubAPI) CreateOrder(_ context.Context, order *printful.OrderRequest) (*printful.Order, error) {
	s.lastOrder = order
	if s.createOrder != nil {
		return s.createOrder(order)
	}
	return &printful.Order{ID: 9001, ExternalID: order.ExternalID, Status: "draft"}, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products []*domain.Product
}

func (m *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Metadata.SourceProvider == product.Metadata.SourceProvider &&
			p.Metadata.PrintfulProductID == product.Metadata.PrintfulProductID &&
			p.Metadata.DigitalProductID == product.Metadata.DigitalProductID {
			return &errors.ErrAlreadyImported{ProviderProductID: product.Metadata.PrintfulProductID}
		}
	}
	product.ID = uuid.New()
	m.products = append(m.products, product)
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (m *memProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Product{}, m.products...), nil
}

func (m *memProductRepo) ListProviderProductIDs(_ context.Context, provider string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, p := range m.products {
		if p.Metadata.SourceProvider != provider {
			continue
		}
		if p.Metadata.PrintfulProductID != "" {
			ids = append(ids, p.Metadata.PrintfulProductID)
		} else {
			ids = append(ids, p.Metadata.DigitalProductID)
		}
	}
	return ids, nil
}

func (m *memProductRepo) ExistsByProviderProductID(_ context.Context, provider, providerProductID string) (bool, error) {
	ids, _ := m.ListProviderProductIDs(context.Background(), provider)
	for _, id := range ids {
		if id == providerProductID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProductRepo) UpdatePrice(_ context.Context, id uuid.UUID, amount int64, currencyCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			p.PriceAmount = amount
			p.CurrencyCode = currencyCode
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

type memDigitalRepo struct {
	products []*domain.DigitalProduct
}

func (m *memDigitalRepo) List(_ context.Context) ([]*domain.DigitalProduct, error) {
	return m.products, nil
}

func (m *memDigitalRepo) GetByID(_ context.Context, id string) (*domain.DigitalProduct, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "digital product", ID: id}
}

type memArtworkRepo struct {
	artworks map[string]*domain.Artwork
}

func (m *memArtworkRepo) GetByID(_ context.Context, id string) (*domain.Artwork, error) {
	if artwork, ok := m.artworks[id]; ok {
		return artwork, nil
	}
	return nil, &errors.ErrNotFound{Resource: "artwork", ID: id}
}

type memOrderRepo struct {
	orders map[string]*domain.Order
}

func (m *memOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id}
}

func newTestRepos() *repository.Repositories {
	return &repository.Repositories{
		Product:        &memProductRepo{},
		Artwork:        &memArtworkRepo{},
		DigitalProduct: &memDigitalRepo{},
		Order:          &memOrderRepo{orders: map[string]*domain.Order{}},
		SyncLog:        memory.NewSyncLogStore(),
	}
}

func newSyncRouter(t *testing.T, api *stubAPI) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := newTestRepos()
	syncService := service.NewSyncService(api, repos, service.FixedPolicy{Amount: 2500},
		config.StoreConfig{}, 2, zap.NewNop())
	t.Cleanup(syncService.Close)

	router := gin.New()
	router.GET("/admin/product-sync", HandleGetProductSync(syncService, zap.NewNop()))
	router.POST("/admin/product-sync", HandlePostProductSync(syncService, zap.NewNop()))
	return router, repos
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProductSyncReturnsOverview(t *testing.T) {
	api := &stubAPI{
		catalog: []printful.CatalogProduct{{ID: 1, Name: "Classic Tee"}},
	}
	router, _ := newSyncRouter(t, api)

	w := doJSON(router, http.MethodGet, "/admin/product-sync", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Logs              []domain.SyncLog          `json:"logs"`
		Stats             domain.SyncStats          `json:"stats"`
		AvailableProducts service.AvailableProducts `json:"available_products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.AvailableProducts.Printful, 1)
	assert.Equal(t, "1", resp.AvailableProducts.Printful[0].ID)
	assert.False(t, resp.AvailableProducts.Printful[0].AlreadyImported)
	assert.Equal(t, 0, resp.Stats.Total)
}

func TestPostProductSyncRequiresAction(t *testing.T) {
	router, _ := newSyncRouter(t, &stubAPI{})

	w := doJSON(router, http.MethodPost, "/admin/product-sync", `{"provider":"printful"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestPostProductSyncImportsProducts(t *testing.T) {
	api := &stubAPI{
		catalog: []printful.CatalogProduct{{ID: 1, Name: "Classic Tee"}},
	}
	router, repos := newSyncRouter(t, api)

	w := doJSON(router, http.MethodPost, "/admin/product-sync",
		`{"action":"import_products","product_ids":["1","404"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                  `json:"success"`
		Imported int                   `json:"imported"`
		Failed   int                   `json:"failed"`
		Errors   []service.ImportError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "404", resp.Errors[0].ProductID)

	stored, err := repos.Product.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestPostProductSyncQueuesBackgroundAction(t *testing.T) {
	api := &stubAPI{
		catalog: []printful.CatalogProduct{{ID: 1, Name: "Classic Tee"}},
	}
	router, _ := newSyncRouter(t, api)

	w := doJSON(router, http.MethodPost, "/admin/product-sync", `{"action":"bulk_import"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		SyncID  string `json:"syncId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.SyncID, "sync_"))
}

func TestPostProductSyncRejectsUnknownAction(t *testing.T) {
	router, _ := newSyncRouter(t, &stubAPI{})

	w := doJSON(router, http.MethodPost, "/admin/product-sync", `{"action":"reindex"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
	assert.Contains(t, w.Body.String(), "unknown sync action: reindex")
}
