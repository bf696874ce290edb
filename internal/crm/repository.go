package crm

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

// Repository provides customer persistence.
type Repository interface {
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Get(ctx context.Context, id int64) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, id int64, customer Customer) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const customerColumns = `id, name, email, phone, company, country, notes, status, source, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM customers WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Status != nil {
		argCount++
		cond := ` AND status = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, string(*req.Status))
	}
	if req.Search != "" {
		argCount++
		cond := ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR email ILIKE $` + strconv.Itoa(argCount) + ` OR company ILIKE $` + strconv.Itoa(argCount) + `)`
		query += cond
		countQuery += cond
		args = append(args, "%"+req.Search+"%")
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

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Country, &c.Notes, &c.Status, &c.Source, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Customer, error) {
	var c Customer
	err := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Country, &c.Notes, &c.Status, &c.Source, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, httpx.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	const query = `INSERT INTO customers (name, email, phone, company, country, notes, status, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Company, customer.Country,
		customer.Notes, string(customer.Status), customer.Source, now,
	).Scan(&customer.ID)
	if err != nil {
		return Customer{}, err
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return customer, nil
}

func (r *repository) Update(ctx context.Context, id int64, customer Customer) error {
	const query = `UPDATE customers SET name = $1, email = $2, phone = $3, company = $4, country = $5,
		notes = $6, status = $7, source = $8, updated_at = $9 WHERE id = $10`
	tag, err := r.db.Exec(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Company, customer.Country,
		customer.Notes, string(customer.Status), customer.Source, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
