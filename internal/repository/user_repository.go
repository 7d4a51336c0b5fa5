package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentora/rentora-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, req *domain.RegisterRequest, passwordHash, codeHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest, codeHash string) (*domain.User, error)
	SetPendingPassword(ctx context.Context, id int64, tempHash, codeHash string) error
	MarkVerifiedByEmail(ctx context.Context, email string) error
	ConfirmPending(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userCols = `id, role, email, password_hash, name, phone, document, address, number, complement, zip_code, is_verified, verification_code, temp_password, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Role, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Document,
		&u.Address, &u.Number, &u.Complement, &u.ZipCode,
		&u.IsVerified, &u.VerificationCode, &u.TempPassword, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, req *domain.RegisterRequest, passwordHash, codeHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (role, email, password_hash, name, phone, document, address, number, complement, zip_code, is_verified, verification_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, $11)
		RETURNING ` + userCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, q,
		req.Role, req.Email, passwordHash, req.Name, req.Phone, req.Document,
		req.Address, req.Number, req.Complement, req.ZipCode, codeHash,
	))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, q, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// UpdateProfile applies the patch and drops the user back to the
// pending-verification state with a fresh code hash.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest, codeHash string) (*domain.User, error) {
	const q = `
		UPDATE users
		SET
			name       = COALESCE($2, name),
			email      = COALESCE($3, email),
			phone      = COALESCE($4, phone),
			address    = COALESCE($5, address),
			number     = COALESCE($6, number),
			complement = COALESCE($7, complement),
			zip_code   = COALESCE($8, zip_code),
			is_verified = false,
			verification_code = $9,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, q,
		id, req.Name, req.Email, req.Phone, req.Address, req.Number, req.Complement, req.ZipCode, codeHash,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// SetPendingPassword parks the new hash in temp_password; the active
// password stays untouched until the code is confirmed.
func (r *userRepository) SetPendingPassword(ctx context.Context, id int64, tempHash, codeHash string) error {
	const q = `
		UPDATE users
		SET temp_password = $2, is_verified = false, verification_code = $3, updated_at = now()
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.db.Exec(ctx, q, id, tempHash, codeHash)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) MarkVerifiedByEmail(ctx context.Context, email string) error {
	const q = `UPDATE users SET is_verified = true, verification_code = NULL, updated_at = now() WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.db.Exec(ctx, q, email)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ConfirmPending marks the user verified, clears the code and promotes
// a parked temp_password to the active hash in one statement.
func (r *userRepository) ConfirmPending(ctx context.Context, id int64) error {
	const q = `
		UPDATE users
		SET
			is_verified = true,
			verification_code = NULL,
			password_hash = COALESCE(temp_password, password_hash),
			temp_password = NULL,
			updated_at = now()
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
