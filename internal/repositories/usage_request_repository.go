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

const usageRequestColumns = "ur.id, ur.requester_id, ur.usage_department, ur.device_name, ur.quantity, ur.start_date, ur.end_date, ur.status, ur.created_at, ur.updated_at"

type UsageRequestRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.UsageRequest, uint64, error)
	ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.UsageRequest, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.UsageRequest, error)
	Create(ctx context.Context, req *entities.UsageRequest) (uint64, error)
	Update(ctx context.Context, id uint64, req *entities.UsageRequest) error
	UpdateStatus(ctx context.Context, id uint64, status entities.RequestStatus) error
	Delete(ctx context.Context, id uint64) error
	DistinctDepartments(ctx context.Context) ([]string, error)
}

type UsageRequestRepository struct {
	storage querier
}

func NewUsageRequestRepository(storage *pgxpool.Pool) UsageRequestRepositoryInterface {
	return &UsageRequestRepository{storage: storage}
}

func scanUsageRequest(rows pgx.Rows, withJoins bool) (*entities.UsageRequest, error) {
	var req entities.UsageRequest
	dest := []interface{}{
		&req.ID, &req.RequesterID, &req.UsageDepartment, &req.DeviceName,
		&req.Quantity, &req.StartDate, &req.EndDate, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withJoins {
		req.Requester = &entities.User{}
		dest = append(dest, &req.Requester.ID, &req.Requester.StaffCode, &req.Requester.Name)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *UsageRequestRepository) queryList(ctx context.Context, b sq.SelectBuilder, withJoins bool) ([]entities.UsageRequest, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.UsageRequest
	for rows.Next() {
		req, err := scanUsageRequest(rows, withJoins)
		if err != nil {
			return nil, err
		}
		records = append(records, *req)
	}
	return records, rows.Err()
}

func (r *UsageRequestRepository) joined() sq.SelectBuilder {
	return psql.Select(usageRequestColumns + ", u.id, u.staff_code, u.name").
		From("usage_requests ur").
		LeftJoin("users u ON u.id = ur.requester_id")
}

func (r *UsageRequestRepository) applyFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	b = inFilter(b, filter.Filter, "usage_department", "ur.usage_department")
	b = inFilter(b, filter.Filter, "status", "ur.status")
	if month, ok := filter.Filter["month"]; ok {
		if vals := filterValues(month); len(vals) > 0 {
			b = monthOfAny(b, vals[0], "ur.start_date")
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"ur.device_name": pattern},
			sq.ILike{"u.staff_code": pattern},
			sq.ILike{"u.name": pattern},
		})
	}
	return b
}

func (r *UsageRequestRepository) countWith(ctx context.Context, filter types.Filter, extra sq.Sqlizer) (uint64, error) {
	b := psql.Select("COUNT(*)").From("usage_requests ur").
		LeftJoin("users u ON u.id = ur.requester_id")
	if extra != nil {
		b = b.Where(extra)
	}
	b = r.applyFilters(b, filter)

	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UsageRequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.UsageRequest, uint64, error) {
	b := r.applyFilters(r.joined(), filter).
		OrderBy("ur.start_date DESC", "ur.end_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.countWith(ctx, filter, nil)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *UsageRequestRepository) ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.UsageRequest, uint64, error) {
	cond := sq.Eq{"ur.requester_id": requesterID}
	b := r.applyFilters(r.joined().Where(cond), filter).
		OrderBy("ur.start_date DESC", "ur.end_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.countWith(ctx, filter, cond)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *UsageRequestRepository) FindByID(ctx context.Context, id uint64) (*entities.UsageRequest, error) {
	records, err := r.queryList(ctx, r.joined().Where(sq.Eq{"ur.id": id}), true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &records[0], nil
}

func (r *UsageRequestRepository) Create(ctx context.Context, req *entities.UsageRequest) (uint64, error) {
	query, args, err := psql.Insert("usage_requests").
		Columns("requester_id", "usage_department", "device_name", "quantity", "start_date", "end_date", "status").
		Values(req.RequesterID, req.UsageDepartment, req.DeviceName, req.Quantity, req.StartDate, req.EndDate, req.Status).
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

func (r *UsageRequestRepository) Update(ctx context.Context, id uint64, req *entities.UsageRequest) error {
	query, args, err := psql.Update("usage_requests").
		Set("usage_department", req.UsageDepartment).
		Set("device_name", req.DeviceName).
		Set("quantity", req.Quantity).
		Set("start_date", req.StartDate).
		Set("end_date", req.EndDate).
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

func (r *UsageRequestRepository) UpdateStatus(ctx context.Context, id uint64, status entities.RequestStatus) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE usage_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsageRequestRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM usage_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsageRequestRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT DISTINCT usage_department FROM usage_requests ORDER BY usage_department")
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
