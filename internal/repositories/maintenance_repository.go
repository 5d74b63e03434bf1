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

const maintenanceColumns = "m.id, m.device_id, m.start_date, m.finished_date, m.performer, m.cost, m.maintenance_service_provider, m.created_at, m.updated_at"

type MaintenanceRepositoryInterface interface {
	ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Maintenance, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error)
	ListAll(ctx context.Context) ([]entities.Maintenance, error)
	ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.Maintenance, error)
	FindByID(ctx context.Context, id uint64) (*entities.Maintenance, error)
	Create(ctx context.Context, m *entities.Maintenance) (uint64, error)
	Update(ctx context.Context, id uint64, m *entities.Maintenance) error
	Delete(ctx context.Context, id uint64) error
	DistinctProviders(ctx context.Context) ([]string, error)
}

type MaintenanceRepository struct {
	storage querier
}

func NewMaintenanceRepository(storage *pgxpool.Pool) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage}
}

func scanMaintenance(rows pgx.Rows, withJoins bool) (*entities.Maintenance, error) {
	var m entities.Maintenance
	dest := []interface{}{
		&m.ID, &m.DeviceID, &m.StartDate, &m.FinishedDate, &m.Performer,
		&m.Cost, &m.Provider, &m.CreatedAt, &m.UpdatedAt,
	}
	if withJoins {
		m.Device = &entities.Device{}
		dest = append(dest, &m.Device.ID, &m.Device.DeviceCode, &m.Device.Name)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepository) queryList(ctx context.Context, b sq.SelectBuilder, withJoins bool) ([]entities.Maintenance, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows, withJoins)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}
	return records, rows.Err()
}

func (r *MaintenanceRepository) joined() sq.SelectBuilder {
	return psql.Select(maintenanceColumns + ", d.id, d.device_code, d.name").
		From("maintenances m").
		LeftJoin("devices d ON d.id = m.device_id")
}

func (r *MaintenanceRepository) applyFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	b = inFilter(b, filter.Filter, "provider", "m.maintenance_service_provider")
	if month, ok := filter.Filter["month"]; ok {
		if vals := filterValues(month); len(vals) > 0 {
			b = monthOfAny(b, vals[0], "m.start_date", "m.finished_date")
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"d.device_code": pattern},
			sq.ILike{"d.name": pattern},
			sq.ILike{"m.performer": pattern},
		})
	}
	return b
}

func (r *MaintenanceRepository) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Maintenance, error) {
	b := psql.Select(maintenanceColumns).From("maintenances m").
		Where(sq.Eq{"m.device_id": deviceID}).
		OrderBy("m.start_date DESC")
	return r.queryList(ctx, b, false)
}

func (r *MaintenanceRepository) List(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error) {
	b := r.applyFilters(r.joined(), filter).
		OrderBy("m.start_date DESC", "m.finished_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	records, err := r.queryList(ctx, b, true)
	if err != nil {
		return nil, 0, err
	}

	countB := r.applyFilters(
		psql.Select("COUNT(*)").From("maintenances m").
			LeftJoin("devices d ON d.id = m.device_id"),
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

func (r *MaintenanceRepository) ListAll(ctx context.Context) ([]entities.Maintenance, error) {
	return r.queryList(ctx, psql.Select(maintenanceColumns).From("maintenances m"), false)
}

func (r *MaintenanceRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.Maintenance, error) {
	b := r.joined().
		Where(sq.LtOrEq{"m.start_date": end}).
		Where(sq.GtOrEq{"m.finished_date": start})
	return r.queryList(ctx, b, true)
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	records, err := r.queryList(ctx, r.joined().Where(sq.Eq{"m.id": id}), true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &records[0], nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *entities.Maintenance) (uint64, error) {
	query, args, err := psql.Insert("maintenances").
		Columns("device_id", "start_date", "finished_date", "performer", "cost", "maintenance_service_provider").
		Values(m.DeviceID, m.StartDate, m.FinishedDate, m.Performer, m.Cost, m.Provider).
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

func (r *MaintenanceRepository) Update(ctx context.Context, id uint64, m *entities.Maintenance) error {
	query, args, err := psql.Update("maintenances").
		Set("device_id", m.DeviceID).
		Set("start_date", m.StartDate).
		Set("finished_date", m.FinishedDate).
		Set("performer", m.Performer).
		Set("cost", m.Cost).
		Set("maintenance_service_provider", m.Provider).
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

func (r *MaintenanceRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM maintenances WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) DistinctProviders(ctx context.Context) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT DISTINCT maintenance_service_provider FROM maintenances WHERE maintenance_service_provider IS NOT NULL ORDER BY maintenance_service_provider")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}
