package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/dokugo-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, firstname, lastname, username, email, phone_number, password_hash, photo, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Firstname, &user.Lastname, &user.Username, &user.Email,
		&user.PhoneNumber, &user.PasswordHash, &user.Photo, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) getBy(ctx context.Context, column string, value any) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getBy(ctx, "id", id)
}

// Create inserts a user. A duplicate email or username yields model.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, firstname, lastname, username, email, phone_number, password_hash, photo, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Firstname, user.Lastname, user.Username, user.Email,
		user.PhoneNumber, user.PasswordHash, user.Photo, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", mapError(err))
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users
			  SET firstname = $2, lastname = $3, username = $4, email = $5, phone_number = $6, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Firstname, user.Lastname, user.Username, user.Email, user.PhoneNumber,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", mapError(err))
	}

	return saved, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "update password", query, id, passwordHash)
}

func (r *UserRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	const query = `UPDATE users SET photo = $2, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "update photo", query, id, photo)
}

// Delete removes the user; their transactions go with it through the foreign key cascade.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`
	return r.exec(ctx, "delete user", query, id)
}

func (r *UserRepository) exec(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
