package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

// Repository provides admin account lookups.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	const query = `SELECT id, email, full_name, password_hash, is_active, created_at, updated_at
		FROM admins WHERE lower(email) = lower($1)`
	var a Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
