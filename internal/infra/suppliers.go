package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ProveedorExterno is a supplier record served by the external suppliers API.
type ProveedorExterno struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	NIT      string `json:"nit"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// SuppliersClient queries the external suppliers catalog. All calls go through
// a circuit breaker so a flapping catalog cannot stall return registration.
type SuppliersClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewSuppliersClient(baseURL string, cb *CircuitBreaker) *SuppliersClient {
	return &SuppliersClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

// ListProveedores fetches the supplier catalog.
func (c *SuppliersClient) ListProveedores(ctx context.Context) ([]ProveedorExterno, error) {
	var out []ProveedorExterno
	err := c.cb.Execute(func() error {
		return c.getJSON(ctx, "/providers", &out)
	})
	return out, err
}

// FindProveedorPorFactura resolves the supplier that issued an invoice number.
func (c *SuppliersClient) FindProveedorPorFactura(ctx context.Context, numeroFactura string) (*ProveedorExterno, error) {
	var out ProveedorExterno
	err := c.cb.Execute(func() error {
		return c.getJSON(ctx, "/providers/byInvoice/"+url.PathEscape(numeroFactura), &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SuppliersClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("suppliers: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("suppliers: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("suppliers: api returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("suppliers: decode response: %w", err)
	}
	return nil
}
