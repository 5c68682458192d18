package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProduct = errors.New("invalid product ids")
	ErrInvalidStatus  = errors.New("invalid order status")
)

// Service owns the order workflows: validated creation, paginated listing,
// enriched reads and status transitions.
type Service struct {
	repo     Repository
	products ProductValidator
}

func NewService(repo Repository, products ProductValidator) *Service {
	return &Service{repo: repo, products: products}
}

// Create validates every requested product against the catalog, recomputes the
// totals from the resolved prices and persists order + items atomically.
// Client-supplied totals are ignored. Any unknown product, or a catalog that
// cannot be reached in time, fails the whole operation before anything is
// written.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Detail, error) {
	ids := distinctProductIDs(req.Items)

	products, err := s.products.Validate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	o := &Order{
		ID:     uuid.NewString(),
		Status: StatusPending,
	}
	total := decimal.Zero
	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProduct, it.ProductID)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: bad price for %s", ErrInvalidProduct, it.ProductID)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		o.TotalItems += it.Quantity
		items = append(items, Item{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     p.Price,
		})
	}
	o.TotalAmount = total.String()

	if err := s.repo.Create(ctx, o, items); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Name = byID[items[i].ProductID].Name
	}
	return &Detail{Order: *o, Items: items}, nil
}

// FindAll returns one page of order summaries plus pagination metadata. Pages
// past the end yield an empty data list with the correct total.
func (s *Service) FindAll(ctx context.Context, q PageQuery) (*Page, error) {
	if q.Status != "" && !ValidStatus(q.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, q.Status)
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	total, err := s.repo.Count(ctx, q.Status)
	if err != nil {
		return nil, err
	}
	data, err := s.repo.List(ctx, Query{
		Status: q.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []Order{}
	}
	return &Page{
		Data: data,
		Meta: PageMeta{
			Total:    total,
			Page:     page,
			LastPage: (total + limit - 1) / limit,
		},
	}, nil
}

// FindOne loads an order with its items and joins in the catalog name per
// item. A product the catalog no longer knows leaves that item's name empty,
// and a failed catalog call returns the order unenriched: historic orders stay
// readable even when the catalog has moved on.
func (s *Service) FindOne(ctx context.Context, id string) (*Detail, error) {
	o, items, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		ids := make([]string, 0, len(items))
		seen := make(map[string]bool, len(items))
		for _, it := range items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
		products, err := s.products.Lookup(ctx, ids)
		if err != nil {
			log.Printf("[orders] product lookup failed for order %s: %v", id, err)
		} else {
			names := make(map[string]string, len(products))
			for _, p := range products {
				names[p.ID] = p.Name
			}
			for i := range items {
				items[i].Name = names[items[i].ProductID]
			}
		}
	}
	return &Detail{Order: *o, Items: items}, nil
}

// ChangeStatus overwrites the order status. Setting the status an order
// already has is a no-op that returns the unchanged order and issues no write.
// No transition graph is enforced; concurrent changes race last-write-wins.
func (s *Service) ChangeStatus(ctx context.Context, id, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	o, err := s.repo.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == status {
		return o, nil
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func distinctProductIDs(items []CreateOrderItem) []string {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	return ids
}
