package quotes

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

// Repository provides quote persistence. Line items are stored as a JSON
// document alongside the header, matching the flat-record data model.
type Repository interface {
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error)
	ListAll(ctx context.Context) ([]Quote, error)
	Get(ctx context.Context, id int64) (Quote, error)
	Create(ctx context.Context, quote Quote) (Quote, error)
	UpdateContents(ctx context.Context, id int64, items []LineItem, subtotal, transportCost, commissionRate, total float64) error
	UpdateStatus(ctx context.Context, id int64, status QuoteStatus) error
	Delete(ctx context.Context, id int64) error
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const quoteColumns = `id, number, customer_id, items, subtotal, transport_cost, commission_rate, total_amount, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM quotes WHERE 1=1`
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

	quotesList, err := scanQuotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return quotesList, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Quote, error) {
	rows, err := r.db.Query(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotes(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Quote, error) {
	row := r.db.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	q, err := scanQuote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, httpx.ErrNotFound
	}
	return q, err
}

func (r *repository) Create(ctx context.Context, quote Quote) (Quote, error) {
	itemsJSON, err := json.Marshal(quote.Items)
	if err != nil {
		return Quote{}, fmt.Errorf("marshal items: %w", err)
	}
	const query = `INSERT INTO quotes (number, customer_id, items, subtotal, transport_cost, commission_rate, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	now := time.Now()
	err = r.db.QueryRow(ctx, query,
		quote.Number, quote.CustomerID, itemsJSON, quote.Subtotal, quote.TransportCost,
		quote.CommissionRate, quote.TotalAmount, string(quote.Status), now,
	).Scan(&quote.ID)
	if err != nil {
		return Quote{}, err
	}
	quote.CreatedAt = now
	quote.UpdatedAt = now
	return quote, nil
}

func (r *repository) UpdateContents(ctx context.Context, id int64, items []LineItem, subtotal, transportCost, commissionRate, total float64) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	const query = `UPDATE quotes SET items = $1, subtotal = $2, transport_cost = $3,
		commission_rate = $4, total_amount = $5, updated_at = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, query, itemsJSON, subtotal, transportCost, commissionRate, total, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status QuoteStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE quotes SET status = $1, updated_at = $2 WHERE id = $3`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
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
	`, "QT", date.Format("200601")).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("QT-%s-%04d", date.Format("0601"), seq), nil
}

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	var itemsJSON []byte
	err := row.Scan(&q.ID, &q.Number, &q.CustomerID, &itemsJSON, &q.Subtotal, &q.TransportCost,
		&q.CommissionRate, &q.TotalAmount, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return Quote{}, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &q.Items); err != nil {
			return Quote{}, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return q, nil
}

func scanQuotes(rows pgx.Rows) ([]Quote, error) {
	var result []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}
