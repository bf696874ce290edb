package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the single settings row.
type Repository interface {
	// Load returns the saved settings, or Defaults when nothing was saved.
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) (Settings, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a postgres backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Load(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRow(ctx, `SELECT company_name, company_name_zh, email, phone, address, display_currency, exchange_rate, updated_at
		FROM company_settings WHERE id = 1`).Scan(
		&s.CompanyName, &s.CompanyNameZh, &s.Email, &s.Phone, &s.Address,
		&s.DisplayCurrency, &s.ExchangeRate, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (r *repository) Save(ctx context.Context, s Settings) (Settings, error) {
	s.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, `INSERT INTO company_settings (id, company_name, company_name_zh, email, phone, address, display_currency, exchange_rate, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_name_zh = EXCLUDED.company_name_zh,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			display_currency = EXCLUDED.display_currency,
			exchange_rate = EXCLUDED.exchange_rate,
			updated_at = EXCLUDED.updated_at`,
		s.CompanyName, s.CompanyNameZh, s.Email, s.Phone, s.Address,
		s.DisplayCurrency, s.ExchangeRate, s.UpdatedAt,
	)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}
