package printful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sencommerce/podbridge/internal/config"
)

// APIError carries a non-2xx provider response. The body is kept verbatim so
// callers can surface the provider's own diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("printful API error: status %d, body: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	apiToken   string
	storeID    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Printful REST client
func NewClient(cfg config.PrintfulConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.APIBase, "/")
	if baseURL == "" {
		baseURL = "https://api.printful.com"
	}

	return &Client{
		baseURL:  baseURL,
		apiToken: cfg.APIToken,
		storeID:  cfg.StoreID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// FetchCatalogProducts lists the products registered in the Printful store
func (c *Client) FetchCatalogProducts(ctx context.Context) ([]CatalogProduct, error) {
	var products []CatalogProduct
	if err := c.do(ctx, http.MethodGet, "/store/products", nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

// GetSyncProduct fetches the synced representation of one store product,
// including its sync variants and attached files
func (c *Client) GetSyncProduct(ctx context.Context, syncProductID string) (*SyncProductDetail, error) {
	var detail SyncProductDetail
	if err := c.do(ctx, http.MethodGet, "/sync/products/"+syncProductID, nil, &detail, false); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateOrder submits an order to Printful. No retries are performed; the
// caller decides retry policy.
func (c *Client) CreateOrder(ctx context.Context, order *OrderRequest) (*Order, error) {
	var created Order
	if err := c.do(ctx, http.MethodPost, "/orders", order, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOrder fetches a previously created provider order
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// withStoreID marks the order endpoints, the only calls that take the
// optional X-PF-Store-Id header
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, withStoreID bool) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if withStoreID && c.storeID != "" {
		req.Header.Set("X-PF-Store-Id", c.storeID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Printful API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if out != nil && env.Result != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	return nil
}
