package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"thrift-deals-service/internal/domain"
)

// Catalog holds the in-memory product array. It is loaded once at
// startup from a local file or URL and re-fetched on a fixed schedule;
// readers always see a consistent snapshot behind the RWMutex.
type Catalog struct {
	source string
	client *http.Client
	logger *log.Logger
	onSwap func()

	mu       sync.RWMutex
	products []domain.Product
	loadedAt time.Time
}

// New creates a catalog backed by source, which is either a filesystem
// path or an http(s) URL to a products.json resource.
func New(source string, fetchTimeout time.Duration, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		source: source,
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// OnSwap registers a callback invoked after a new snapshot is installed.
// The search engine uses it to drop stale cached results.
func (c *Catalog) OnSwap(fn func()) {
	c.onSwap = fn
}

// Load performs the initial fetch. A failed or malformed load is not
// fatal: the embedded sample dataset is substituted so the interactive
// paths stay available, matching the production site's fallback.
func (c *Catalog) Load(ctx context.Context) {
	products, err := c.fetch(ctx)
	if err != nil {
		c.logger.Printf("WARN: catalog load from %s failed, falling back to sample data: %v", c.source, err)
		products = SampleProducts()
	}
	c.swap(products)
	c.logger.Printf("INFO: catalog loaded with %d products", len(products))
}

// Refresh re-fetches the source. Unlike Load, a failure keeps the
// previous snapshot; a site should never trade real data for samples.
func (c *Catalog) Refresh(ctx context.Context) {
	products, err := c.fetch(ctx)
	if err != nil {
		c.logger.Printf("WARN: catalog refresh failed, keeping previous snapshot: %v", err)
		return
	}
	c.swap(products)
	c.logger.Printf("INFO: catalog refreshed, %d products", len(products))
}

func (c *Catalog) swap(products []domain.Product) {
	c.mu.Lock()
	c.products = products
	c.loadedAt = time.Now()
	c.mu.Unlock()
	if c.onSwap != nil {
		c.onSwap()
	}
}

func (c *Catalog) fetch(ctx context.Context) ([]domain.Product, error) {
	data, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}

func (c *Catalog) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
		if err != nil {
			return nil, fmt.Errorf("catalog: building request: %w", err)
		}
		res, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog: fetching %s: %w", c.source, err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog: fetching %s: unexpected status %d", c.source, res.StatusCode)
		}
		return io.ReadAll(res.Body)
	}
	return os.ReadFile(c.source)
}

// decodeProducts accepts both observed shapes of products.json: an
// object wrapping a "products" array, or a bare array.
func decodeProducts(data []byte) ([]domain.Product, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if strings.HasPrefix(trimmed, "[") {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("catalog: decoding product array: %w", err)
		}
		return products, nil
	}

	var wrapper struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("catalog: decoding products object: %w", err)
	}
	if wrapper.Products == nil {
		return nil, fmt.Errorf("catalog: no products field in object payload")
	}
	return wrapper.Products, nil
}

// Products returns the current snapshot. Callers must treat it as
// read-only; the slice is replaced wholesale on refresh, never mutated.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// Len returns the number of products in the current snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// LoadedAt returns when the current snapshot was installed.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
