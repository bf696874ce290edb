package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

// Repository provides order persistence.
type Repository interface {
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	ListAll(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	// FindByQuoteID returns the most recently created order converted from
	// the quote, or httpx.ErrNotFound.
	FindByQuoteID(ctx context.Context, quoteID int64) (Order, error)
	Create(ctx context.Context, order Order) (Order, error)
	UpdateContents(ctx context.Context, id int64, items []LineItem, total float64) error
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
	Delete(ctx context.Context, id int64) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
	// TotalsByCustomer aggregates order count and revenue for one customer.
	TotalsByCustomer(ctx context.Context, customerID int64) (int, float64, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const orderColumns = `id, number, quote_id, customer_id, items, total_amount, status, order_date, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM orders WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.CustomerID != nil {
		argCount++
		cond := ` AND customer_id = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, *req.CustomerID)
	}
	if req.Status != nil {
		argCount++
		cond := ` AND status = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, string(*req.Status))
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY created_at DESC, id DESC`
	if req.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, req.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, req.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, httpx.ErrNotFound
	}
	return o, err
}

func (r *repository) FindByQuoteID(ctx context.Context, quoteID int64) (Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE quote_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, quoteID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, httpx.ErrNotFound
	}
	return o, err
}

func (r *repository) Create(ctx context.Context, order Order) (Order, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return Order{}, fmt.Errorf("marshal items: %w", err)
	}
	const query = `INSERT INTO orders (number, quote_id, customer_id, items, total_amount, status, order_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`
	now := time.Now()
	err = r.db.QueryRow(ctx, query,
		order.Number, order.QuoteID, order.CustomerID, itemsJSON, order.TotalAmount,
		string(order.Status), order.OrderDate, now,
	).Scan(&order.ID)
	if err != nil {
		return Order{}, err
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	return order, nil
}

func (r *repository) UpdateContents(ctx context.Context, id int64, items []LineItem, total float64) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET items = $1, total_amount = $2, updated_at = $3 WHERE id = $4`,
		itemsJSON, total, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status OrderStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "SO", date.Format("200601")).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SO-%s-%04d", date.Format("0601"), seq), nil
}

func (r *repository) TotalsByCustomer(ctx context.Context, customerID int64) (int, float64, error) {
	var count int
	var revenue float64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders WHERE customer_id = $1 AND status <> 'cancelled'`,
		customerID,
	).Scan(&count, &revenue)
	return count, revenue, err
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var itemsJSON []byte
	err := row.Scan(&o.ID, &o.Number, &o.QuoteID, &o.CustomerID, &itemsJSON, &o.TotalAmount,
		&o.Status, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return Order{}, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return o, nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var result []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
