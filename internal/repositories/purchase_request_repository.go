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

const purchaseRequestColumns = "pr.id, pr.requester_id, pr.device_name, pr.quantity, pr.unit_price_estimated, pr.total_amount_estimated, pr.date_of_request, pr.status, pr.created_at, pr.updated_at"

type PurchaseRequestRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.PurchaseRequest, uint64, error)
	ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.PurchaseRequest, uint64, error)
	ListAll(ctx context.Context) ([]entities.PurchaseRequest, error)
	FindByID(ctx context.Context, id uint64) (*entities.PurchaseRequest, error)
	Create(ctx context.Context, req *entities.PurchaseRequest) (uint64, error)
	Update(ctx context.Context, id uint64, req *entities.PurchaseRequest) error
	UpdateStatus(ctx context.Context, id uint64, status entities.RequestStatus) error
	Delete(ctx context.Context, id uint64) error
}

type PurchaseRequestRepository struct {
	storage querier
}

func NewPurchaseRequestRepository(storage *pgxpool.Pool) PurchaseRequestRepositoryInterface {
	return &PurchaseRequestRepository{storage: storage}
}

func scanPurchaseRequest(rows pgx.Rows, withJoins bool) (*entities.PurchaseRequest, error) {
	var req entities.PurchaseRequest
	dest := []interface{}{
		&req.ID, &req.RequesterID, &req.DeviceName, &req.Quantity,
		&req.UnitPriceEstimated, &req.TotalAmountEstimated, &req.DateOfRequest,
		&req.Status, &req.CreatedAt, &req.UpdatedAt,
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

func (r *PurchaseRequestRepository) queryList(ctx context.Context, b sq.SelectBuilder, withJoins bool) ([]entities.PurchaseRequest, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.PurchaseRequest
	for rows.Next() {
		req, err := scanPurchaseRequest(rows, withJoins)
		if err != nil {
			return nil, err
		}
		records = append(records, *req)
	}
	return records, rows.Err()
}

func (r *PurchaseRequestRepository) joined() sq.SelectBuilder {
	return psql.Select(purchaseRequestColumns + ", u.id, u.staff_code, u.name").
		From("purchase_requests pr").
		LeftJoin("users u ON u.id = pr.requester_id")
}

func (r *PurchaseRequestRepository) applyFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	b = inFilter(b, filter.Filter, "status", "pr.status")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"pr.device_name": pattern},
			sq.ILike{"u.staff_code": pattern},
			sq.ILike{"u.name": pattern},
		})
	}
	return b
}

func (r *PurchaseRequestRepository) countWith(ctx context.Context, filter types.Filter, extra sq.Sqlizer) (uint64, error) {
	b := psql.Select("COUNT(*)").From("purchase_requests pr").
		LeftJoin("users u ON u.id = pr.requester_id")
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

func (r *PurchaseRequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.PurchaseRequest, uint64, error) {
	b := r.applyFilters(r.joined(), filter).
		OrderBy("pr.date_of_request DESC").
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

func (r *PurchaseRequestRepository) ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.PurchaseRequest, uint64, error) {
	cond := sq.Eq{"pr.requester_id": requesterID}
	b := r.applyFilters(r.joined().Where(cond), filter).
		OrderBy("pr.date_of_request DESC").
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

func (r *PurchaseRequestRepository) ListAll(ctx context.Context) ([]entities.PurchaseRequest, error) {
	return r.queryList(ctx, psql.Select(purchaseRequestColumns).From("purchase_requests pr"), false)
}

func (r *PurchaseRequestRepository) FindByID(ctx context.Context, id uint64) (*entities.PurchaseRequest, error) {
	records, err := r.queryList(ctx, r.joined().Where(sq.Eq{"pr.id": id}), true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &records[0], nil
}

func (r *PurchaseRequestRepository) Create(ctx context.Context, req *entities.PurchaseRequest) (uint64, error) {
	query, args, err := psql.Insert("purchase_requests").
		Columns("requester_id", "device_name", "quantity", "unit_price_estimated", "total_amount_estimated", "date_of_request", "status").
		Values(req.RequesterID, req.DeviceName, req.Quantity, req.UnitPriceEstimated, req.TotalAmountEstimated, req.DateOfRequest, req.Status).
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

func (r *PurchaseRequestRepository) Update(ctx context.Context, id uint64, req *entities.PurchaseRequest) error {
	query, args, err := psql.Update("purchase_requests").
		Set("device_name", req.DeviceName).
		Set("quantity", req.Quantity).
		Set("unit_price_estimated", req.UnitPriceEstimated).
		Set("total_amount_estimated", req.TotalAmountEstimated).
		Set("date_of_request", req.DateOfRequest).
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

func (r *PurchaseRequestRepository) UpdateStatus(ctx context.Context, id uint64, status entities.RequestStatus) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE purchase_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PurchaseRequestRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM purchase_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
