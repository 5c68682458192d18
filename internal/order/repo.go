package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Query struct {
	Status string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	GetSummary(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, q Query) ([]Order, error)
	Count(ctx context.Context, status string) (int, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create persists the order and all of its items in one transaction: either
// every row becomes visible or none does.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO orders (id, total_amount, total_items, status, paid, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
    RETURNING created_at, updated_at
  `, o.ID, o.TotalAmount, o.TotalItems, o.Status, o.Paid).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, quantity, price)
      VALUES ($1,$2,$3,$4,$5)
    `, it.ID, o.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	o, err := r.GetSummary(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.db.Query(ctx, `
    SELECT id,order_id,product_id,quantity,price::text
    FROM order_items WHERE order_id=$1
  `, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return o, items, rows.Err()
}

// GetSummary loads the order row without items. The status path uses this to
// avoid dragging the catalog join into a plain existence check.
func (r *PGRepo) GetSummary(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
    SELECT id,total_amount::text,total_items,status,paid,created_at,updated_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.TotalAmount, &o.TotalItems, &o.Status, &o.Paid, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List returns one page of order summaries. Limit and offset are taken as
// given: the service normalizes them, and meta computed there must describe
// exactly the page served here.
func (r *PGRepo) List(ctx context.Context, q Query) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id,total_amount::text,total_items,status,paid,created_at,updated_at
    FROM orders
    WHERE ($1 = '' OR status = $1)
    ORDER BY created_at DESC LIMIT $2 OFFSET $3
  `, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.TotalAmount, &o.TotalItems, &o.Status, &o.Paid, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, status string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `
    SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)
  `, status).Scan(&n)
	return n, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
    UPDATE orders
    SET status = $2, updated_at = NOW()
    WHERE id = $1
    RETURNING id,total_amount::text,total_items,status,paid,created_at,updated_at
  `, id, status).Scan(&o.ID, &o.TotalAmount, &o.TotalItems, &o.Status, &o.Paid, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
