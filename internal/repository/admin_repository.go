package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentora/rentora-api/internal/domain"
)

type AdminRepository interface {
	DeleteUserCascade(ctx context.Context, user *domain.User) error
	DeletePropertyCascade(ctx context.Context, propertyID int64) error
}

type adminRepository struct {
	db DB
}

func NewAdminRepository(db DB) AdminRepository {
	return &adminRepository{db: db}
}

// DeleteUserCascade removes the user together with every dependent
// record in one transaction. For OWNER users the bookings held by other
// renters on the owned properties go first, then the properties
// themselves; otherwise a foreign key would be left dangling. Any
// failure rolls the whole sequence back.
func (r *adminRepository) DeleteUserCascade(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if user.Role == domain.RoleOwner {
		if _, err := tx.Exec(ctx,
			`DELETE FROM bookings WHERE property_id IN (SELECT id FROM properties WHERE owner_id = $1)`,
			user.ID,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM properties WHERE owner_id = $1`, user.ID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`, user.ID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE user_id = $1`, user.ID); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

// DeletePropertyCascade removes a property and its bookings atomically.
func (r *adminRepository) DeletePropertyCascade(ctx context.Context, propertyID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE property_id = $1`, propertyID); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM properties WHERE id = $1`, propertyID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
