package writerepo

import (
	"context"
	"errors"
	"time"

	"boxbook/internal/domain/user"
	"boxbook/internal/infra"
	"boxbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct {
	db shared.DBTX
}

func NewUserRepository(db shared.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const selectUserByPhoneSQL = `
SELECT id, phone, name, role, password_hash, active, last_login, created_at
FROM users
WHERE phone = $1`

func (r *UserRepository) FindByPhone(ctx context.Context, phone user.Phone) (*user.User, error) {
	row := r.db.QueryRow(ctx, selectUserByPhoneSQL, phone.String())

	var (
		id           uuid.UUID
		phoneVal     string
		name         string
		role         string
		passwordHash *string
		active       bool
		lastLogin    *time.Time
		createdAt    time.Time
	)
	if err := row.Scan(&id, &phoneVal, &name, &role, &passwordHash, &active, &lastLogin, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by phone", err)
	}

	return user.ReconstructUser(
		id, user.Phone(phoneVal), name, user.Role(role),
		passwordHash, active, lastLogin, createdAt,
	), nil
}

const insertUserSQL = `
INSERT INTO users (id, phone, name, role, password_hash, active)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(), u.Phone().String(), u.Name(), u.Role().String(),
		u.PasswordHash(), u.IsActive(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("phone already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert user", err)
	}
	return nil
}

const recordLoginSQL = `
UPDATE users SET last_login = $1 WHERE id = $2`

func (r *UserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := r.db.Exec(ctx, recordLoginSQL, at, id); err != nil {
		return infra.WrapRepoErr("failed to record login", err)
	}
	return nil
}
