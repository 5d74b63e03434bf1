package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medequip-system/internal/entities"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

const faultRepairColumns = "fr.id, fr.device_id, fr.reporter_id, fr.reported_at, fr.description, fr.repair_status, fr.start_date, fr.finished_date, fr.repair_service_provider, fr.cost, fr.created_at, fr.updated_at"

type FaultRepairRepositoryInterface interface {
	ListByDevice(ctx context.Context, deviceID uint64) ([]entities.FaultRepair, error)
	ListByReporter(ctx context.Context, reporterID uint64, filter types.Filter) ([]entities.FaultRepair, uint64, error)
	List(ctx context.Context, filter types.Filter) ([]entities.FaultRepair, uint64, error)
	ListAll(ctx context.Context) ([]entities.FaultRepair, error)
	ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.FaultRepair, error)
	FindByID(ctx context.Context, id uint64) (*entities.FaultRepair, error)
	Create(ctx context.Context, f *entities.FaultRepair) (uint64, error)
	UpdateReport(ctx context.Context, id uint64, reportedAt time.Time, description string) error
	UpdateDecision(ctx context.Context, id uint64, decision entities.RepairDecision) error
	UpdateRepairInfo(ctx context.Context, id uint64, start time.Time, finished null.Time, provider null.String, cost float64) error
}

type FaultRepairRepository struct {
	storage querier
}

func NewFaultRepairRepository(storage *pgxpool.Pool) FaultRepairRepositoryInterface {
	return &FaultRepairRepository{storage: storage}
}

func scanFaultRepair(rows pgx.Rows, withJoins bool) (*entities.FaultRepair, error) {
	var f entities.FaultRepair
	dest := []interface{}{
		&f.ID, &f.DeviceID, &f.ReporterID, &f.ReportedAt, &f.Description,
		&f.RepairStatus, &f.StartDate, &f.FinishedDate, &f.Provider, &f.Cost,
		&f.CreatedAt, &f.UpdatedAt,
	}
	if withJoins {
		f.Device = &entities.Device{}
		f.Reporter = &entities.User{}
		dest = append(dest,
			&f.Device.ID, &f.Device.DeviceCode, &f.Device.Name,
			&f.Reporter.ID, &f.Reporter.StaffCode, &f.Reporter.Name,
		)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FaultRepairRepository) queryList(ctx context.Context, b sq.SelectBuilder, withJoins bool) ([]entities.FaultRepair, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.FaultRepair
	for rows.Next() {
		f, err := scanFaultRepair(rows, withJoins)
		if err != nil {
			return nil, err
		}
		records = append(records, *f)
	}
	return records, rows.Err()
}

func (r *FaultRepairRepository) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.FaultRepair, error) {
	b := psql.Select(faultRepairColumns).From("fault_repairs fr").
		Where(sq.Eq{"fr.device_id": deviceID}).
		OrderBy("fr.reported_at DESC")
	return r.queryList(ctx, b, false)
}

func (r *FaultRepairRepository) joined() sq.SelectBuilder {
	return psql.Select(faultRepairColumns + ", d.id, d.device_code, d.name, u.id, u.staff_code, u.name").
		From("fault_repairs fr").
		LeftJoin("devices d ON d.id = fr.device_id").
		LeftJoin("users u ON u.id = fr.reporter_id")
}

func (r *FaultRepairRepository) applyFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	b = inFilter(b, filter.Filter, "repair_status", "fr.repair_status")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"d.device_code": pattern},
			sq.ILike{"d.name": pattern},
			sq.ILike{"u.staff_code": pattern},
			sq.ILike{"u.name": pattern},
			sq.ILike{"fr.description": pattern},
		})
	}
	return b
}

func (r *FaultRepairRepository) count(ctx context.Context, b sq.SelectBuilder) (uint64, error) {
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

func (r *FaultRepairRepository) List(ctx context.Context, filter types.Filter) ([]entities.FaultRepair, uint64, error) {
	b := r.applyFilters(r.joined(), filter).
		OrderBy("fr.reported_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, 0, err
	}

	countB := r.applyFilters(
		psql.Select("COUNT(*)").From("fault_repairs fr").
			LeftJoin("devices d ON d.id = fr.device_id").
			LeftJoin("users u ON u.id = fr.reporter_id"),
		filter,
	)
	total, err := r.count(ctx, countB)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *FaultRepairRepository) ListByReporter(ctx context.Context, reporterID uint64, filter types.Filter) ([]entities.FaultRepair, uint64, error) {
	base := r.joined().Where(sq.Eq{"fr.reporter_id": reporterID})
	b := r.applyFilters(base, filter).
		OrderBy("fr.reported_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, 0, err
	}

	countB := r.applyFilters(
		psql.Select("COUNT(*)").From("fault_repairs fr").
			LeftJoin("devices d ON d.id = fr.device_id").
			LeftJoin("users u ON u.id = fr.reporter_id").
			Where(sq.Eq{"fr.reporter_id": reporterID}),
		filter,
	)
	total, err := r.count(ctx, countB)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *FaultRepairRepository) ListAll(ctx context.Context) ([]entities.FaultRepair, error) {
	return r.queryList(ctx, psql.Select(faultRepairColumns).From("fault_repairs fr"), false)
}

// ListOverlapping returns repair records whose [start_date, finished_date]
// interval intersects the given range, with device data attached.
func (r *FaultRepairRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.FaultRepair, error) {
	b := r.joined().
		Where(sq.LtOrEq{"fr.start_date": end}).
		Where(sq.GtOrEq{"fr.finished_date": start})
	return r.queryList(ctx, b, true)
}

func (r *FaultRepairRepository) FindByID(ctx context.Context, id uint64) (*entities.FaultRepair, error) {
	b := r.joined().Where(sq.Eq{"fr.id": id})
	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &records[0], nil
}

func (r *FaultRepairRepository) Create(ctx context.Context, f *entities.FaultRepair) (uint64, error) {
	query, args, err := psql.Insert("fault_repairs").
		Columns("device_id", "reporter_id", "reported_at", "description", "repair_status").
		Values(f.DeviceID, f.ReporterID, f.ReportedAt, f.Description, f.RepairStatus).
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

func (r *FaultRepairRepository) exec(ctx context.Context, b sq.UpdateBuilder) error {
	query, args, err := b.ToSql()
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

func (r *FaultRepairRepository) UpdateReport(ctx context.Context, id uint64, reportedAt time.Time, description string) error {
	return r.exec(ctx, psql.Update("fault_repairs").
		Set("reported_at", reportedAt).
		Set("description", description).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}))
}

func (r *FaultRepairRepository) UpdateDecision(ctx context.Context, id uint64, decision entities.RepairDecision) error {
	return r.exec(ctx, psql.Update("fault_repairs").
		Set("repair_status", decision).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}))
}

func (r *FaultRepairRepository) UpdateRepairInfo(ctx context.Context, id uint64, start time.Time, finished null.Time, provider null.String, cost float64) error {
	return r.exec(ctx, psql.Update("fault_repairs").
		Set("start_date", start).
		Set("finished_date", finished).
		Set("repair_service_provider", provider).
		Set("cost", cost).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}))
}
