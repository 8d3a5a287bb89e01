package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/qyinm/craftshelf/types"
)

const (
	// DefaultEndpoint is the opensheet export of the storefront's product sheet.
	DefaultEndpoint = "https://opensheet.elk.sh/1UglRFt6MylhszasX9AyxuXuX3QTEUM05AoMcne4evEo/Sheet1"

	userAgent      = "craftshelf/1.0 (+https://github.com/qyinm/craftshelf)"
	defaultTimeout = 10 * time.Second
)

// HTTPSource implements types.CatalogSource with one GET against a JSON endpoint.
type HTTPSource struct {
	endpoint string
	client   *http.Client
}

// Compile-time interface check
var _ types.CatalogSource = (*HTTPSource)(nil)

// NewHTTPSource creates an HTTPSource. A non-positive timeout uses the default.
func NewHTTPSource(endpoint string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSource{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewSource picks the source for endpoint: local .xlsx exports are read with
// SheetSource, anything else is fetched over HTTP.
func NewSource(endpoint string, timeout time.Duration) types.CatalogSource {
	e := strings.TrimSpace(endpoint)
	if strings.HasSuffix(strings.ToLower(e), ".xlsx") && !strings.Contains(e, "://") {
		return NewSheetSource(e, "")
	}
	return NewHTTPSource(e, timeout)
}

// FetchProducts downloads and decodes the product array.
func (s *HTTPSource) FetchProducts(ctx context.Context) ([]types.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded slice of the body for error context
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	products, err := ParseProducts(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse products: %w", err)
	}
	return products, nil
}

// sheetRecord mirrors one row of the sheet export.
type sheetRecord struct {
	ID    cell `json:"id"`
	Name  cell `json:"name"`
	Price cell `json:"price"`
	Image cell `json:"image"`
	Desc  cell `json:"desc"`
	Group cell `json:"group"`
}

// cell accepts strings, numbers, booleans and null. Sheet exporters emit bare
// numbers for numeric-looking columns such as price and id.
type cell string

func (c *cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = cell(s)
		return nil
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("unsupported cell value %s", data)
	default:
		*c = cell(data)
		return nil
	}
}

// ParseProducts decodes a JSON array of product records.
func ParseProducts(r io.Reader) ([]types.Product, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("payload is not a product array")
	}

	var records []sheetRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	products := make([]types.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, types.NewProduct(
			string(rec.ID),
			string(rec.Name),
			string(rec.Price),
			string(rec.Image),
			string(rec.Desc),
			string(rec.Group),
		))
	}
	return products, nil
}
