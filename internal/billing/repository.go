package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

// Repository provides invoice persistence.
type Repository interface {
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error)
	ListAll(ctx context.Context) ([]Invoice, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	// FindByOrderID returns the most recently created invoice referencing
	// the order, or httpx.ErrNotFound.
	FindByOrderID(ctx context.Context, orderID int64) (Invoice, error)
	Create(ctx context.Context, invoice Invoice) (Invoice, error)
	UpdateContents(ctx context.Context, id int64, items []LineItem, total float64) error
	RecordPayment(ctx context.Context, id int64, amountPaid float64, status InvoiceStatus, paymentDate *time.Time) error
	UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) error
	Delete(ctx context.Context, id int64) error
	// MarkOverdue flips unpaid and partially paid invoices past their due
	// date to overdue, returning how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const invoiceColumns = `id, number, order_id, customer_id, items, total_amount, amount_paid, status, issue_date, due_date, payment_date, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM invoices WHERE 1=1`
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

	result, err := scanInvoices(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Invoice, error) {
	rows, err := r.db.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, httpx.ErrNotFound
	}
	return inv, err
}

func (r *repository) FindByOrderID(ctx context.Context, orderID int64) (Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, orderID)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, httpx.ErrNotFound
	}
	return inv, err
}

func (r *repository) Create(ctx context.Context, invoice Invoice) (Invoice, error) {
	itemsJSON, err := json.Marshal(invoice.Items)
	if err != nil {
		return Invoice{}, fmt.Errorf("marshal items: %w", err)
	}
	const query = `INSERT INTO invoices (number, order_id, customer_id, items, total_amount, amount_paid, status, issue_date, due_date, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING id`
	now := time.Now()
	err = r.db.QueryRow(ctx, query,
		invoice.Number, invoice.OrderID, invoice.CustomerID, itemsJSON, invoice.TotalAmount,
		invoice.AmountPaid, string(invoice.Status), invoice.IssueDate, invoice.DueDate,
		invoice.PaymentDate, now,
	).Scan(&invoice.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Invoice{}, fmt.Errorf("%w: invoice number %s", httpx.ErrDuplicate, invoice.Number)
		}
		return Invoice{}, err
	}
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	return invoice, nil
}

func (r *repository) UpdateContents(ctx context.Context, id int64, items []LineItem, total float64) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE invoices SET items = $1, total_amount = $2, updated_at = $3 WHERE id = $4`,
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

func (r *repository) RecordPayment(ctx context.Context, id int64, amountPaid float64, status InvoiceStatus, paymentDate *time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE invoices SET amount_paid = $1, status = $2, payment_date = $3, updated_at = $4 WHERE id = $5`,
		amountPaid, string(status), paymentDate, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3`, string(status), time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE invoices SET status = 'overdue', updated_at = $1 WHERE status IN ('unpaid', 'partially_paid') AND due_date < $2`,
		time.Now(), asOf,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "INV", date.Format("200601")).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%04d", date.Format("0601"), seq), nil
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	var itemsJSON []byte
	err := row.Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.CustomerID, &itemsJSON,
		&inv.TotalAmount, &inv.AmountPaid, &inv.Status, &inv.IssueDate, &inv.DueDate,
		&inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return Invoice{}, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
			return Invoice{}, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return inv, nil
}

func scanInvoices(rows pgx.Rows) ([]Invoice, error) {
	var result []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, rows.Err()
}
