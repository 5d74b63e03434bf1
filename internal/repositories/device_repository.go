package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medequip-system/internal/entities"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

const deviceColumns = "d.id, d.device_code, d.name, d.serial_number, d.classification, d.manufacturer, d.origin, d.manufacturing_year, d.importation_date, d.price, d.storage_location, d.warranty_period, d.maintenance_cycle_months, d.created_at, d.updated_at"

type DeviceRepositoryInterface interface {
	ListDevices(ctx context.Context, filter types.Filter) ([]entities.Device, error)
	ListAllDevices(ctx context.Context) ([]entities.Device, error)
	FindDevice(ctx context.Context, id uint64) (*entities.Device, error)
	FindDeviceByCode(ctx context.Context, code string) (*entities.Device, error)
	CreateDevice(ctx context.Context, d *entities.Device) (uint64, error)
	UpdateDevice(ctx context.Context, id uint64, d *entities.Device) error
	DeleteDevice(ctx context.Context, id uint64) error
	DistinctManufacturers(ctx context.Context) ([]string, error)
	DistinctStorageLocations(ctx context.Context) ([]string, error)
}

type DeviceRepository struct {
	storage querier
}

func NewDeviceRepository(storage *pgxpool.Pool) DeviceRepositoryInterface {
	return &DeviceRepository{storage: storage}
}

func scanDevice(row pgx.Row) (*entities.Device, error) {
	var d entities.Device
	err := row.Scan(
		&d.ID, &d.DeviceCode, &d.Name, &d.SerialNumber, &d.Classification,
		&d.Manufacturer, &d.Origin, &d.ManufacturingYear, &d.ImportationDate,
		&d.Price, &d.StorageLocation, &d.WarrantyPeriod, &d.MaintenanceCycleMonths,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeviceRepository) queryDevices(ctx context.Context, b sq.SelectBuilder) ([]entities.Device, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []entities.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *d)
	}
	return devices, rows.Err()
}

// ListDevices returns every device matching the query filters, newest imports
// first. Pagination happens in the service layer, after the derived status is
// attached and status filtering is applied.
func (r *DeviceRepository) ListDevices(ctx context.Context, filter types.Filter) ([]entities.Device, error) {
	b := psql.Select(deviceColumns).From("devices d").OrderBy("d.importation_date DESC")

	b = inFilter(b, filter.Filter, "classification", "d.classification")
	b = inFilter(b, filter.Filter, "manufacturer", "d.manufacturer")
	b = inFilter(b, filter.Filter, "storage_location", "d.storage_location")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"d.device_code": pattern},
			sq.ILike{"d.name": pattern},
		})
	}

	return r.queryDevices(ctx, b)
}

func (r *DeviceRepository) ListAllDevices(ctx context.Context) ([]entities.Device, error) {
	return r.queryDevices(ctx, psql.Select(deviceColumns).From("devices d").OrderBy("d.importation_date DESC"))
}

func (r *DeviceRepository) FindDevice(ctx context.Context, id uint64) (*entities.Device, error) {
	query, args, err := psql.Select(deviceColumns).From("devices d").Where(sq.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanDevice(r.storage.QueryRow(ctx, query, args...))
}

func (r *DeviceRepository) FindDeviceByCode(ctx context.Context, code string) (*entities.Device, error) {
	query, args, err := psql.Select(deviceColumns).From("devices d").Where(sq.Eq{"d.device_code": code}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanDevice(r.storage.QueryRow(ctx, query, args...))
}

func (r *DeviceRepository) CreateDevice(ctx context.Context, d *entities.Device) (uint64, error) {
	query, args, err := psql.Insert("devices").
		Columns("device_code", "name", "serial_number", "classification", "manufacturer",
			"origin", "manufacturing_year", "importation_date", "price",
			"storage_location", "warranty_period", "maintenance_cycle_months").
		Values(d.DeviceCode, d.Name, d.SerialNumber, d.Classification, d.Manufacturer,
			d.Origin, d.ManufacturingYear, d.ImportationDate, d.Price,
			d.StorageLocation, d.WarrantyPeriod, d.MaintenanceCycleMonths).
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

func (r *DeviceRepository) UpdateDevice(ctx context.Context, id uint64, d *entities.Device) error {
	query, args, err := psql.Update("devices").
		Set("device_code", d.DeviceCode).
		Set("name", d.Name).
		Set("serial_number", d.SerialNumber).
		Set("classification", d.Classification).
		Set("manufacturer", d.Manufacturer).
		Set("origin", d.Origin).
		Set("manufacturing_year", d.ManufacturingYear).
		Set("importation_date", d.ImportationDate).
		Set("price", d.Price).
		Set("storage_location", d.StorageLocation).
		Set("warranty_period", d.WarrantyPeriod).
		Set("maintenance_cycle_months", d.MaintenanceCycleMonths).
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

// DeleteDevice removes the device; usage, maintenance, and fault records
// follow via ON DELETE CASCADE.
func (r *DeviceRepository) DeleteDevice(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM devices WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DeviceRepository) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT DISTINCT "+column+" FROM devices WHERE "+column+" IS NOT NULL ORDER BY "+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *DeviceRepository) DistinctManufacturers(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "manufacturer")
}

func (r *DeviceRepository) DistinctStorageLocations(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "storage_location")
}
