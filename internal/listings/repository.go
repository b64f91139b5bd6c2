package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Search(ctx context.Context, filter SearchFilter, limit int) ([]Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const listingColumns = `id, title, address, city, locality, size, price, property_type, parking, is_featured, security_deposit, footfall, infrastructure, competitor_count, preferred_categories, created_at`

func (r *postgresRepository) Create(ctx context.Context, l *Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Title, l.Address, l.City, l.Locality,
		l.Size, l.Price, l.PropertyType, l.Parking, l.IsFeatured,
		l.SecurityDeposit, l.Footfall, l.Infrastructure,
		l.CompetitorCount, l.PreferredCategories, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting listing: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l := &Listing{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Title, &l.Address, &l.City, &l.Locality,
		&l.Size, &l.Price, &l.PropertyType, &l.Parking, &l.IsFeatured,
		&l.SecurityDeposit, &l.Footfall, &l.Infrastructure,
		&l.CompetitorCount, &l.PreferredCategories, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying listing by id: %w", err)
	}
	return l, nil
}

func (r *postgresRepository) Search(ctx context.Context, filter SearchFilter, limit int) ([]Listing, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.City != "" {
		conditions = append(conditions, "LOWER(city) = LOWER("+arg(filter.City)+")")
	}
	if filter.PropertyType != "" {
		conditions = append(conditions, "LOWER(property_type) = LOWER("+arg(filter.PropertyType)+")")
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, "price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, "price <= "+arg(filter.MaxPrice))
	}
	if filter.MinSize > 0 {
		conditions = append(conditions, "size >= "+arg(filter.MinSize))
	}
	if filter.MaxSize > 0 {
		conditions = append(conditions, "size <= "+arg(filter.MaxSize))
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY is_featured DESC, created_at DESC LIMIT " + arg(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching listings: %w", err)
	}
	defer rows.Close()

	var results []Listing
	for rows.Next() {
		var l Listing
		err := rows.Scan(
			&l.ID, &l.Title, &l.Address, &l.City, &l.Locality,
			&l.Size, &l.Price, &l.PropertyType, &l.Parking, &l.IsFeatured,
			&l.SecurityDeposit, &l.Footfall, &l.Infrastructure,
			&l.CompetitorCount, &l.PreferredCategories, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning listing row: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing not found")
	}
	return nil
}
