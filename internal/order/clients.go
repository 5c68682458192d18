package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/cache"
)

// Product is the catalog's view of a product, as returned by validate_products.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ProductValidator resolves product ids against the catalog service.
// Validate always goes to the wire and is used at creation time, where prices
// must be fresh. Lookup may serve a short-lived cached copy and is only used
// for read-time name enrichment, where staleness is already tolerated.
type ProductValidator interface {
	Validate(ctx context.Context, ids []string) ([]Product, error)
	Lookup(ctx context.Context, ids []string) ([]Product, error)
}

// Catalog talks to the product catalog over HTTP.
type Catalog struct {
	HTTP    *http.Client
	BaseURL string
	Cache   cache.Cache // optional; nil disables the Lookup cache
	TTL     time.Duration
}

func NewCatalog(baseURL string, timeout time.Duration, c cache.Cache) *Catalog {
	return &Catalog{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Cache:   c,
		TTL:     30 * time.Second,
	}
}

func (c *Catalog) Validate(ctx context.Context, ids []string) ([]Product, error) {
	body, _ := json.Marshal(map[string][]string{"ids": ids})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/products/validate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: validate returned %s", res.Status)
	}
	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Catalog) Lookup(ctx context.Context, ids []string) ([]Product, error) {
	if c.Cache == nil {
		return c.Validate(ctx, ids)
	}
	key := c.Cache.Key("validate", cacheKey(ids))
	if cached, err := c.Cache.Get(ctx, key); err == nil && cached != "" {
		var products []Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	}
	products, err := c.Validate(ctx, ids)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(products); err == nil {
		_ = c.Cache.Set(ctx, key, string(raw), c.TTL)
	}
	return products, nil
}

func cacheKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
