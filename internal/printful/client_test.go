package printful

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.PrintfulConfig{
		APIBase:  server.URL,
		APIToken: "test-token",
		StoreID:  "store-42",
	}, zap.NewNop())

	return client, server
}

func TestFetchCatalogProductsSetsAuthHeader(t *testing.T) {
	var gotAuth string
	var storePresent bool

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, storePresent = r.Header["X-Pf-Store-Id"]
		assert.Equal(t, "/store/products", r.URL.Path)
		w.Write([]byte(`{"code":200,"result":[{"id":123,"name":"Classic Tee","thumbnail_url":"https://img/tee.png"}]}`))
	})

	products, err := client.FetchCatalogProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, "Bearer test-token", gotAuth)
	// The store-id header belongs to the order endpoints only
	assert.False(t, storePresent)
	assert.Equal(t, int64(123), products[0].ID)
	assert.Equal(t, "Classic Tee", products[0].Name)
}

func TestGetSyncProductParsesVariants(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/products/384829302", r.URL.Path)
		w.Write([]byte(`{
			"code": 200,
			"result": {
				"sync_product": {"id": 384829302, "name": "Art Print"},
				"sync_variants": [
					{"id": 7, "variant_id": 42, "synced": true, "retail_price": "19.00",
					 "files": [{"type": "default", "preview_url": "https://files/design.png"}]}
				]
			}
		}`))
	})

	detail, err := client.GetSyncProduct(context.Background(), "384829302")
	require.NoError(t, err)

	require.Len(t, detail.SyncVariants, 1)
	assert.Equal(t, int64(7), detail.SyncVariants[0].ID)
	assert.Equal(t, int64(42), detail.SyncVariants[0].VariantID)
	assert.True(t, detail.SyncVariants[0].Synced)
	assert.Equal(t, "https://files/design.png", detail.SyncVariants[0].Files[0].PreviewURL)
}

func TestCreateOrderPropagatesProviderError(t *testing.T) {
	body := `{"code":422,"result":"Invalid variant","error":{"reason":"BadRequest","message":"Invalid variant"}}`

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(body))
	})

	_, err := client.CreateOrder(context.Background(), &OrderRequest{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, body, apiErr.Body)
}

func TestCreateOrderUnwrapsResultEnvelope(t *testing.T) {
	var gotStore string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStore = r.Header.Get("X-PF-Store-Id")
		w.Write([]byte(`{"code":200,"result":{"id":9001,"external_id":"order_1","status":"draft"}}`))
	})

	order, err := client.CreateOrder(context.Background(), &OrderRequest{ExternalID: "order_1"})
	require.NoError(t, err)

	assert.Equal(t, "store-42", gotStore)
	assert.Equal(t, int64(9001), order.ID)
	assert.Equal(t, "order_1", order.ExternalID)
	assert.Equal(t, "draft", order.Status)
}

func TestGetOrderFetchesByID(t *testing.T) {
	var gotStore string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStore = r.Header.Get("X-PF-Store-Id")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/9001", r.URL.Path)
		w.Write([]byte(`{"code":200,"result":{"id":9001,"external_id":"order_1","status":"fulfilled"}}`))
	})

	order, err := client.GetOrder(context.Background(), "9001")
	require.NoError(t, err)

	assert.Equal(t, "store-42", gotStore)
	assert.Equal(t, int64(9001), order.ID)
	assert.Equal(t, "fulfilled", order.Status)
}

func TestStoreIDHeaderOmittedWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Pf-Store-Id"]
		assert.False(t, present)
		w.Write([]byte(`{"code":200,"result":{"id":9001}}`))
	}))
	defer server.Close()

	client := NewClient(config.PrintfulConfig{
		APIBase:  server.URL,
		APIToken: "test-token",
	}, zap.NewNop())

	_, err := client.CreateOrder(context.Background(), &OrderRequest{})
	require.NoError(t, err)
}
