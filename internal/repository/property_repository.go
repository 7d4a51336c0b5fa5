package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentora/rentora-api/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest, slug string) (*domain.Property, error)
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	ListAvailable(ctx context.Context) ([]domain.PropertyListing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error)
}

type propertyRepository struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyCols = `id, owner_id, title, slug, description, price, location, available, created_at, updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Slug, &p.Description, &p.Price,
		&p.Location, &p.Available, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest, slug string) (*domain.Property, error) {
	const q = `
		INSERT INTO properties (owner_id, title, slug, description, price, location, available)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING ` + propertyCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.db.QueryRow(ctx, q, ownerID, req.Title, slug, req.Description, req.Price, req.Location))
}

func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.db.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *propertyRepository) ListAvailable(ctx context.Context) ([]domain.PropertyListing, error) {
	const q = `
		SELECT p.id, p.owner_id, p.title, p.slug, p.description, p.price, p.location, p.available, p.created_at, p.updated_at,
		       u.id, u.name, u.email
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		WHERE p.available
		ORDER BY p.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.PropertyListing
	for rows.Next() {
		var l domain.PropertyListing
		if err := rows.Scan(
			&l.ID, &l.OwnerID, &l.Title, &l.Slug, &l.Description, &l.Price,
			&l.Location, &l.Available, &l.CreatedAt, &l.UpdatedAt,
			&l.Owner.ID, &l.Owner.Name, &l.Owner.Email,
		); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}
