package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medequip-system/internal/entities"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

const userColumns = "id, staff_code, email, password, name, department, is_admin, created_at, updated_at"

type UserRepositoryInterface interface {
	ListUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByStaffCode(ctx context.Context, staffCode string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (uint64, error)
	UpdateUser(ctx context.Context, id uint64, user *entities.User) error
	UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error
	DeleteUser(ctx context.Context, id uint64) error
	DistinctDepartments(ctx context.Context) ([]string, error)
}

type UserRepository struct {
	storage querier
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.StaffCode, &user.Email, &user.Password,
		&user.Name, &user.Department, &user.IsAdmin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) findBy(ctx context.Context, pred sq.Eq) (*entities.User, error) {
	query, args, err := psql.Select(userColumns).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) ListUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	b := psql.Select(userColumns).From("users")
	b = inFilter(b, filter.Filter, "department", "department")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"staff_code": pattern},
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").FromSelect(b, "filtered").ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args, err := b.OrderBy("staff_code ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID, &user.StaffCode, &user.Email, &user.Password,
			&user.Name, &user.Department, &user.IsAdmin,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findBy(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findBy(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) FindUserByStaffCode(ctx context.Context, staffCode string) (*entities.User, error) {
	return r.findBy(ctx, sq.Eq{"staff_code": staffCode})
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (uint64, error) {
	query, args, err := psql.Insert("users").
		Columns("staff_code", "email", "password", "name", "department", "is_admin").
		Values(user.StaffCode, user.Email, user.Password, user.Name, user.Department, user.IsAdmin).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, user *entities.User) error {
	query, args, err := psql.Update("users").
		Set("staff_code", user.StaffCode).
		Set("email", user.Email).
		Set("name", user.Name).
		Set("department", user.Department).
		Set("is_admin", user.IsAdmin).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE users SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", hashedPassword, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT DISTINCT department FROM users ORDER BY department")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
