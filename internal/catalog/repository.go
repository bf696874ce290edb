package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

// Repository provides product persistence.
type Repository interface {
	List(ctx context.Context, req ListProductsRequest) ([]Product, int, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	// FindBySKU returns the oldest product carrying the SKU, or
	// httpx.ErrNotFound. SKUs are not unique; the first match wins.
	FindBySKU(ctx context.Context, sku string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, sku, name, selling_price, purchase_price, stock_quantity, created_at, updated_at`

func (r *repository) List(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if req.Search != "" {
		argCount++
		cond := ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR sku ILIKE $` + strconv.Itoa(argCount) + `)`
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

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.SellingPrice, &p.PurchasePrice, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) FindBySKU(ctx context.Context, sku string) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1 ORDER BY created_at ASC, id ASC LIMIT 1`, sku).Scan(
		&p.ID, &p.SKU, &p.Name, &p.SellingPrice, &p.PurchasePrice, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	const query = `INSERT INTO products (sku, name, selling_price, purchase_price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		product.SKU, product.Name, product.SellingPrice, product.PurchasePrice, product.StockQuantity, now,
	).Scan(&product.ID)
	if err != nil {
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	const query = `UPDATE products SET sku = $1, name = $2, selling_price = $3, purchase_price = $4,
		stock_quantity = $5, updated_at = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, query,
		product.SKU, product.Name, product.SellingPrice, product.PurchasePrice, product.StockQuantity, time.Now(), id,
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
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.SellingPrice, &p.PurchasePrice, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
