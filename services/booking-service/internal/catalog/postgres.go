package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/obelixq/obelixq/libs/db"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

// Postgres reads the catalog owned by the business service's database.
type Postgres struct {
	pool *db.Pool
}

func NewPostgres(pool *db.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) FindBusiness(ctx context.Context, id string) (model.Business, bool, error) {
	var b model.Business
	err := p.pool.QueryRow(ctx, `
		SELECT id, name, coalesce(description, ''), category, coalesce(phone, ''), coalesce(email, ''),
			coalesce(address, ''), coalesce(city, ''), to_char(opening_time, 'HH24:MI'),
			to_char(closing_time, 'HH24:MI'), coalesce(working_days, '{}'), coalesce(owner_id, ''), is_active
		FROM businesses
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Description, &b.Category, &b.Phone, &b.Email,
		&b.Address, &b.City, &b.OpeningTime, &b.ClosingTime, &b.WorkingDays, &b.OwnerID, &b.Active)
	return found(b, err)
}

func (p *Postgres) FindService(ctx context.Context, id string) (model.Service, bool, error) {
	var s model.Service
	err := p.pool.QueryRow(ctx, `
		SELECT id, business_id, name, coalesce(description, ''), price, duration_minutes, is_active
		FROM business_services
		WHERE id = $1
	`, id).Scan(&s.ID, &s.BusinessID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.Active)
	return found(s, err)
}

func (p *Postgres) FindUser(ctx context.Context, id string) (model.User, bool, error) {
	var u model.User
	err := p.pool.QueryRow(ctx, `
		SELECT id, full_name, email, coalesce(phone, '')
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.FullName, &u.Email, &u.Phone)
	return found(u, err)
}

func found[T any](v T, err error) (T, bool, error) {
	var zero T
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
