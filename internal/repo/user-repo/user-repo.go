package user_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	usernameConstraint = "users_username_key"

	userColumns = `id, username, full_name, email, password_hash, role, is_active, created_at, updated_at`
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepoContract {
	return &UserRepo{
		db: db,
	}
}

func scanUser(row pgx.Row) (entity.UserEntity, error) {
	var u entity.UserEntity
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepo) findOne(ctx context.Context, column, value string) (*entity.UserEntity, *app_errors.AppError) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1 LIMIT 1`, userColumns, column)

	u, err := scanUser(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.NewNotFoundError("user_not_found")
		}
		return nil, app_errors.MapPgxError(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	return r.findOne(ctx, "id", userID)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError) {
	return r.findOne(ctx, "username", username)
}

// FindManyByIDs liefert nur existierende Benutzer; fehlende IDs tauchen im Ergebnis einfach nicht auf.
func (r *UserRepo) FindManyByIDs(ctx context.Context, userIDs []string) ([]entity.UserEntity, *app_errors.AppError) {
	if len(userIDs) == 0 {
		return []entity.UserEntity{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ANY($1::uuid[])`, userColumns)

	return r.collect(ctx, query, userIDs)
}

func (r *UserRepo) ListByRole(ctx context.Context, role *entity.UserRole) ([]entity.UserEntity, *app_errors.AppError) {
	// Base query
	query := fmt.Sprintf(`SELECT %s FROM users WHERE is_active`, userColumns)
	args := []any{}

	if role != nil {
		query += ` AND role = $1`
		args = append(args, string(*role))
	}
	query += ` ORDER BY username`

	return r.collect(ctx, query, args...)
}

func (r *UserRepo) ListIDsByRole(ctx context.Context, roles ...entity.UserRole) ([]string, *app_errors.AppError) {
	if len(roles) == 0 {
		return []string{}, nil
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE is_active AND role = ANY($1) ORDER BY id`, names)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return ids, nil
}

func (r *UserRepo) collect(ctx context.Context, query string, args ...any) ([]entity.UserEntity, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	users := []entity.UserEntity{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return users, nil
}

func (r *UserRepo) InsertUser(ctx context.Context, u *entity.UserEntity) *app_errors.AppError {
	query := `
		INSERT INTO users (
			id,
			username,
			full_name,
			email,
			password_hash,
			role,
			is_active,
			created_at,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
	`
	if _, err := r.db.Exec(ctx, query, u.ID, u.Username, u.FullName, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt); err != nil {
		if app_errors.IsUniqueViolation(err, usernameConstraint) {
			return app_errors.NewConflictError("user.username_taken", err)
		}
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *UserRepo) UpdatePasswordHashTx(ctx context.Context, t tx.Tx, userID, hash string) *app_errors.AppError {
	pgxTx, txErr := tx.Unwrap(t)
	if txErr != nil {
		return txErr
	}
	tag, err := pgxTx.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, userID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("user_not_found")
	}
	return nil
}
