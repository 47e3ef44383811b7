// Package auth_repo provides the PostgreSQL user store.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain/auth"
	"merx/internal/infrastructure/storage/postgres"
)

const usersTable = "sys_users"

var userCols = postgres.ExtractDBColumns[auth.User]()

// UserRepo implements auth.Repository.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *UserRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	data := postgres.StructToMap(user)

	filtered := make(map[string]any, len(userCols))
	for _, col := range userCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(usersTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepo) getWhere(ctx context.Context, where squirrel.Eq, ident string) (*auth.User, error) {
	user := &auth.User{}

	sql, args, err := r.builder().
		Select(userCols...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", ident)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": userID}, userID.String())
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"email": email}, email)
}

// Update persists user changes.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	data := postgres.StructToMap(user)

	filtered := make(map[string]any, len(userCols))
	for _, col := range userCols {
		if col == "id" || col == "created_at" || col == "updated_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(usersTable).
		SetMap(filtered).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}

	return nil
}

// ExistsByEmail checks if a user with the email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(usersTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}

	return true, nil
}
