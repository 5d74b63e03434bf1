package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medequip-system/internal/entities"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

const usageColumns = "us.id, us.device_id, us.requester_id, us.usage_department, us.start_date, us.end_date, us.created_at, us.updated_at"

type UsageRepositoryInterface interface {
	ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Usage, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Usage, uint64, error)
	ListAll(ctx context.Context) ([]entities.Usage, error)
	ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.Usage, error)
	FindByID(ctx context.Context, id uint64) (*entities.Usage, error)
	Create(ctx context.Context, u *entities.Usage) (uint64, error)
	Update(ctx context.Context, id uint64, u *entities.Usage) error
	Delete(ctx context.Context, id uint64) error
	DistinctDepartments(ctx context.Context) ([]string, error)
}

type UsageRepository struct {
	storage querier
}

func NewUsageRepository(storage *pgxpool.Pool) UsageRepositoryInterface {
	return &UsageRepository{storage: storage}
}

func scanUsage(rows pgx.Rows, withJoins bool) (*entities.Usage, error) {
	var u entities.Usage
	dest := []interface{}{
		&u.ID, &u.DeviceID, &u.RequesterID, &u.UsageDepartment,
		&u.StartDate, &u.EndDate, &u.CreatedAt, &u.UpdatedAt,
	}
	if withJoins {
		u.Device = &entities.Device{}
		u.Requester = &entities.User{}
		dest = append(dest,
			&u.Device.ID, &u.Device.DeviceCode, &u.Device.Name,
			&u.Requester.ID, &u.Requester.StaffCode, &u.Requester.Name,
		)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsageRepository) queryList(ctx context.Context, b sq.SelectBuilder, withJoins bool) ([]entities.Usage, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.Usage
	for rows.Next() {
		u, err := scanUsage(rows, withJoins)
		if err != nil {
			return nil, err
		}
		records = append(records, *u)
	}
	return records, rows.Err()
}

func (r *UsageRepository) joined() sq.SelectBuilder {
	return psql.Select(usageColumns + ", d.id, d.device_code, d.name, u.id, u.staff_code, u.name").
		From("usages us").
		LeftJoin("devices d ON d.id = us.device_id").
		LeftJoin("users u ON u.id = us.requester_id")
}

func (r *UsageRepository) applyFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	b = inFilter(b, filter.Filter, "usage_department", "us.usage_department")
	if month, ok := filter.Filter["month"]; ok {
		if vals := filterValues(month); len(vals) > 0 {
			b = monthOfAny(b, vals[0], "us.start_date", "us.end_date")
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"d.device_code": pattern},
			sq.ILike{"d.name": pattern},
			sq.ILike{"u.staff_code": pattern},
			sq.ILike{"u.name": pattern},
		})
	}
	return b
}

func (r *UsageRepository) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Usage, error) {
	b := psql.Select(usageColumns).From("usages us").
		Where(sq.Eq{"us.device_id": deviceID}).
		OrderBy("us.start_date DESC")
	return r.queryList(ctx, b, false)
}

func (r *UsageRepository) List(ctx context.Context, filter types.Filter) ([]entities.Usage, uint64, error) {
	b := r.applyFilters(r.joined(), filter).
		OrderBy("us.start_date DESC", "us.end_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, 0, err
	}

	countB := r.applyFilters(
		psql.Select("COUNT(*)").From("usages us").
			LeftJoin("devices d ON d.id = us.device_id").
			LeftJoin("users u ON u.id = us.requester_id"),
		filter,
	)
	query, args, err := countB.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *UsageRepository) ListAll(ctx context.Context) ([]entities.Usage, error) {
	return r.queryList(ctx, psql.Select(usageColumns).From("usages us"), false)
}

func (r *UsageRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.Usage, error) {
	b := r.joined().
		Where(sq.LtOrEq{"us.start_date": end}).
		Where(sq.GtOrEq{"us.end_date": start})
	return r.queryList(ctx, b, true)
}

func (r *UsageRepository) FindByID(ctx context.Context, id uint64) (*entities.Usage, error) {
	records, err := r.queryList(ctx, r.joined().Where(sq.Eq{"us.id": id}), true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &records[0], nil
}

func (r *UsageRepository) Create(ctx context.Context, u *entities.Usage) (uint64, error) {
	query, args, err := psql.Insert("usages").
		Columns("device_id", "requester_id", "usage_department", "start_date", "end_date").
		Values(u.DeviceID, u.RequesterID, u.UsageDepartment, u.StartDate, u.EndDate).
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

func (r *UsageRepository) Update(ctx context.Context, id uint64, u *entities.Usage) error {
	query, args, err := psql.Update("usages").
		Set("device_id", u.DeviceID).
		Set("requester_id", u.RequesterID).
		Set("usage_department", u.UsageDepartment).
		Set("start_date", u.StartDate).
		Set("end_date", u.EndDate).
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
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsageRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM usages WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsageRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT DISTINCT usage_department FROM usages ORDER BY usage_department")
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
