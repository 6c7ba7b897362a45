package postgres

import (
	"context"
	"encoding/json"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
	"github.com/danuartha/go-commerce-ddd/internal/domain/repository"
)

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// orderItemRow pins the JSONB storage shape for line items.
type orderItemRow struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

const orderColumns = `id, user_id, status, total_amount, items, created_at, updated_at`

func (r *OrderRepository) FindByID(ctx context.Context, id entity.OrderID) (*entity.Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id.String())
	return scanOrder(row)
}

// Save inserts or replaces the row for the aggregate's id.
func (r *OrderRepository) Save(ctx context.Context, o entity.Order) (*entity.Order, error) {
	items, err := marshalItems(o.Items)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, status, total_amount, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    total_amount = EXCLUDED.total_amount,
		    items = EXCLUDED.items,
		    updated_at = EXCLUDED.updated_at
		RETURNING `+orderColumns+`
	`, o.ID.String(), o.UserID.String(), string(o.Status), o.TotalAmount, items, o.CreatedAt, o.UpdatedAt)
	return scanOrder(row)
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID entity.UserID) ([]entity.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID.String())
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

type orderRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectOrders(rows orderRows) ([]entity.Order, error) {
	orders := make([]entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	o := &entity.Order{}
	var itemsRaw []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &itemsRaw, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	items, err := unmarshalItems(itemsRaw)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func marshalItems(items []entity.OrderItem) ([]byte, error) {
	rows := make([]orderItemRow, len(items))
	for i, it := range items {
		rows[i] = orderItemRow{ProductID: it.ProductID.String(), Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return json.Marshal(rows)
}

func unmarshalItems(raw []byte) ([]entity.OrderItem, error) {
	var rows []orderItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, len(rows))
	for i, rw := range rows {
		items[i] = entity.OrderItem{ProductID: entity.ProductID(rw.ProductID), Quantity: rw.Quantity, UnitPrice: rw.UnitPrice}
	}
	return items, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
