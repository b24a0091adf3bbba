package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

type UserRepository interface {
	WithDB(db db.DB) UserRepository
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

type userRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{db: db}
}

func (r userRepository) WithDB(db db.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, role, is_active, created_at`

func (r userRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (email, password_hash, role, is_active)
		VALUES (@email, @password_hash, @role, @is_active)
		RETURNING `+userColumns, pgx.NamedArgs{
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
		"is_active":     user.IsActive,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", constraintErr(err))
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return model.User{}, fmt.Errorf("collect user: %w", constraintErr(err))
	}

	return userRowToModel(row), nil
}

func (r userRepository) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
}

func (r userRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = @email`, pgx.NamedArgs{"email": email})
}

func (r userRepository) getUser(ctx context.Context, query string, args pgx.NamedArgs) (model.User, error) {
	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return model.User{}, fmt.Errorf("query user: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("collect user: %w", err)
	}

	return userRowToModel(row), nil
}

func userRowToModel(row userRow) model.User {
	return model.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         model.Role(row.Role),
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
	}
}
