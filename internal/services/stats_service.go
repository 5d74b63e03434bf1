package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/utils"
)

// maintenanceDueWindowDays is how far ahead the due-for-maintenance listing
// looks for the next scheduled maintenance date.
const maintenanceDueWindowDays = 7

type StatsServiceInterface interface {
	AverageUptime(ctx context.Context, now time.Time) (float64, error)
	MTBF(ctx context.Context, now time.Time) (float64, error)
	AverageAgeFailureRate(ctx context.Context, now time.Time) (float64, error)
	AverageMaintenanceRatio(ctx context.Context, now time.Time) (float64, error)
	AverageRepairTime(ctx context.Context) (float64, error)
	AverageMaintenanceTime(ctx context.Context) (float64, error)
	TotalCostMillions(ctx context.Context) (int64, error)
	MonthlyBreakdown(ctx context.Context, year int, now time.Time) (*dto.MonthlyBreakdownDTO, error)
	DashboardStats(ctx context.Context, now time.Time) (*dto.DashboardStatsDTO, error)
	DevicesDueForMaintenance(ctx context.Context, now time.Time) ([]dto.DeviceDueForMaintenanceDTO, error)
}

type StatsService struct {
	deviceRepo          repositories.DeviceRepositoryInterface
	faultRepairRepo     repositories.FaultRepairRepositoryInterface
	maintenanceRepo     repositories.MaintenanceRepositoryInterface
	usageRepo           repositories.UsageRepositoryInterface
	purchaseRequestRepo repositories.PurchaseRequestRepositoryInterface
	logger              *zap.Logger
}

func NewStatsService(
	deviceRepo repositories.DeviceRepositoryInterface,
	faultRepairRepo repositories.FaultRepairRepositoryInterface,
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	usageRepo repositories.UsageRepositoryInterface,
	purchaseRequestRepo repositories.PurchaseRequestRepositoryInterface,
	logger *zap.Logger,
) StatsServiceInterface {
	return &StatsService{
		deviceRepo:          deviceRepo,
		faultRepairRepo:     faultRepairRepo,
		maintenanceRepo:     maintenanceRepo,
		usageRepo:           usageRepo,
		purchaseRequestRepo: purchaseRequestRepo,
		logger:              logger,
	}
}

// downtime holds a device's accumulated fault and maintenance intervals.
type downtime struct {
	days       int
	hours      float64
	faultCount int
}

// loadDowntime groups every fault and maintenance interval by device. Open
// intervals are measured up to now.
func (s *StatsService) loadDowntime(ctx context.Context, now time.Time) (map[uint64]*downtime, error) {
	faults, err := s.faultRepairRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	maintenances, err := s.maintenanceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	acc := make(map[uint64]*downtime)
	get := func(deviceID uint64) *downtime {
		d, ok := acc[deviceID]
		if !ok {
			d = &downtime{}
			acc[deviceID] = d
		}
		return d
	}

	for i := range faults {
		f := &faults[i]
		end := now
		if f.FinishedDate.Valid {
			end = f.FinishedDate.Time
		}
		d := get(f.DeviceID)
		d.days += utils.DaysBetween(f.ReportedAt, end)
		d.hours += utils.HoursBetween(f.ReportedAt, end)
		d.faultCount++
	}
	for i := range maintenances {
		m := &maintenances[i]
		end := now
		if m.FinishedDate.Valid {
			end = m.FinishedDate.Time
		}
		d := get(m.DeviceID)
		d.days += utils.DaysBetween(m.StartDate, end)
		d.hours += utils.HoursBetween(m.StartDate, end)
	}
	return acc, nil
}

// AverageUptime averages (age - downtime) / age over devices with a nonzero
// age. Values are not clamped, overlapping intervals can push a device below
// zero or past one hundred percent.
func (s *StatsService) AverageUptime(ctx context.Context, now time.Time) (float64, error) {
	devices, err := s.deviceRepo.ListAllDevices(ctx)
	if err != nil {
		return 0, err
	}
	down, err := s.loadDowntime(ctx, now)
	if err != nil {
		return 0, err
	}

	var sum float64
	var counted int
	for i := range devices {
		age := utils.DaysBetween(devices[i].ImportationDate, now)
		if age == 0 {
			continue
		}
		downDays := 0
		if d, ok := down[devices[i].ID]; ok {
			downDays = d.days
		}
		sum += float64(age-downDays) / float64(age) * 100
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

// MTBF averages (ageInHours - downHours) / faultCount over the devices that
// have at least one fault record.
func (s *StatsService) MTBF(ctx context.Context, now time.Time) (float64, error) {
	devices, err := s.deviceRepo.ListAllDevices(ctx)
	if err != nil {
		return 0, err
	}
	down, err := s.loadDowntime(ctx, now)
	if err != nil {
		return 0, err
	}

	var sum float64
	var counted int
	for i := range devices {
		d, ok := down[devices[i].ID]
		if !ok || d.faultCount == 0 {
			continue
		}
		ageHours := utils.HoursBetween(devices[i].ImportationDate, now)
		sum += (ageHours - d.hours) / float64(d.faultCount)
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

// AverageAgeFailureRate averages downDays / ageInDays over devices with a
// nonzero age.
func (s *StatsService) AverageAgeFailureRate(ctx context.Context, now time.Time) (float64, error) {
	devices, err := s.deviceRepo.ListAllDevices(ctx)
	if err != nil {
		return 0, err
	}
	down, err := s.loadDowntime(ctx, now)
	if err != nil {
		return 0, err
	}

	var sum float64
	var counted int
	for i := range devices {
		age := utils.DaysBetween(devices[i].ImportationDate, now)
		if age == 0 {
			continue
		}
		downDays := 0
		if d, ok := down[devices[i].ID]; ok {
			downDays = d.days
		}
		sum += float64(downDays) / float64(age) * 100
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

// AverageMaintenanceRatio averages actual over expected maintenance counts.
// A device whose cycle has not yet come due counts as fully maintained.
func (s *StatsService) AverageMaintenanceRatio(ctx context.Context, now time.Time) (float64, error) {
	devices, err := s.deviceRepo.ListAllDevices(ctx)
	if err != nil {
		return 0, err
	}
	maintenances, err := s.maintenanceRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	actual := make(map[uint64]int)
	for i := range maintenances {
		actual[maintenances[i].DeviceID]++
	}

	var sum float64
	var counted int
	for i := range devices {
		d := &devices[i]
		if d.MaintenanceCycleMonths <= 0 {
			continue
		}
		expected := utils.MonthsBetween(d.ImportationDate, now) / d.MaintenanceCycleMonths
		if expected <= 0 {
			sum += 100
		} else {
			sum += float64(actual[d.ID]) / float64(expected) * 100
		}
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

// AverageRepairTime is the mean repair duration in days over repairs that
// have both a start and a finish date.
func (s *StatsService) AverageRepairTime(ctx context.Context) (float64, error) {
	faults, err := s.faultRepairRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	var sum float64
	var counted int
	for i := range faults {
		f := &faults[i]
		if !f.StartDate.Valid || !f.FinishedDate.Valid {
			continue
		}
		sum += float64(utils.DaysBetween(f.StartDate.Time, f.FinishedDate.Time))
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

func (s *StatsService) AverageMaintenanceTime(ctx context.Context) (float64, error) {
	maintenances, err := s.maintenanceRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	var sum float64
	var counted int
	for i := range maintenances {
		m := &maintenances[i]
		if !m.FinishedDate.Valid {
			continue
		}
		sum += float64(utils.DaysBetween(m.StartDate, m.FinishedDate.Time))
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

// TotalCostMillions sums repair and maintenance costs, in millions, rounded.
// Records without a cost contribute zero.
func (s *StatsService) TotalCostMillions(ctx context.Context) (int64, error) {
	faults, err := s.faultRepairRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	maintenances, err := s.maintenanceRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for i := range faults {
		if faults[i].Cost.Valid {
			total += faults[i].Cost.Float64
		}
	}
	for i := range maintenances {
		if maintenances[i].Cost.Valid {
			total += maintenances[i].Cost.Float64
		}
	}
	return int64(math.Round(total / 1_000_000)), nil
}

func inYearMonth(t time.Time, year, month int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// MonthlyBreakdown counts records per month of the given year. Interval
// records count in a month when either endpoint falls in it; single-date
// records count by their one date. For the current year only the elapsed
// months are reported.
func (s *StatsService) MonthlyBreakdown(ctx context.Context, year int, now time.Time) (*dto.MonthlyBreakdownDTO, error) {
	usages, err := s.usageRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	maintenances, err := s.maintenanceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	faults, err := s.faultRepairRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRequestRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	lastMonth := 12
	if year == now.Year() {
		lastMonth = int(now.Month())
	}

	result := &dto.MonthlyBreakdownDTO{Year: year}
	for month := 1; month <= lastMonth; month++ {
		var usageCount, maintenanceCount, repairCount, faultCount, purchaseCount int

		for i := range usages {
			if inYearMonth(usages[i].StartDate, year, month) || inYearMonth(usages[i].EndDate, year, month) {
				usageCount++
			}
		}
		for i := range maintenances {
			m := &maintenances[i]
			if inYearMonth(m.StartDate, year, month) ||
				(m.FinishedDate.Valid && inYearMonth(m.FinishedDate.Time, year, month)) {
				maintenanceCount++
			}
		}
		for i := range faults {
			f := &faults[i]
			if inYearMonth(f.ReportedAt, year, month) {
				faultCount++
			}
			if (f.StartDate.Valid && inYearMonth(f.StartDate.Time, year, month)) ||
				(f.FinishedDate.Valid && inYearMonth(f.FinishedDate.Time, year, month)) {
				repairCount++
			}
		}
		for i := range purchases {
			if inYearMonth(purchases[i].DateOfRequest, year, month) {
				purchaseCount++
			}
		}

		result.Usages = append(result.Usages, dto.MonthlyCountDTO{Month: month, Count: usageCount})
		result.Maintenances = append(result.Maintenances, dto.MonthlyCountDTO{Month: month, Count: maintenanceCount})
		result.Repairs = append(result.Repairs, dto.MonthlyCountDTO{Month: month, Count: repairCount})
		result.FaultReports = append(result.FaultReports, dto.MonthlyCountDTO{Month: month, Count: faultCount})
		result.PurchaseRequests = append(result.PurchaseRequests, dto.MonthlyCountDTO{Month: month, Count: purchaseCount})
	}
	return result, nil
}

// DashboardStats computes every scalar metric concurrently and fails as a
// whole if any reducer fails. There are no partial dashboards.
func (s *StatsService) DashboardStats(ctx context.Context, now time.Time) (*dto.DashboardStatsDTO, error) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		errs  []error
		stats dto.DashboardStatsDTO
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) {
		devices, err := s.deviceRepo.ListAllDevices(ctx)
		if err == nil {
			stats.TotalDevices = len(devices)
		}
		return
	})
	addTask(func() (err error) { stats.AverageUptimePercent, err = s.AverageUptime(ctx, now); return })
	addTask(func() (err error) { stats.MTBFHours, err = s.MTBF(ctx, now); return })
	addTask(func() (err error) { stats.AgeFailureRatePercent, err = s.AverageAgeFailureRate(ctx, now); return })
	addTask(func() (err error) { stats.MaintenanceRatioPercent, err = s.AverageMaintenanceRatio(ctx, now); return })
	addTask(func() (err error) { stats.AverageRepairDays, err = s.AverageRepairTime(ctx); return })
	addTask(func() (err error) { stats.AverageMaintenanceDays, err = s.AverageMaintenanceTime(ctx); return })
	addTask(func() (err error) { stats.TotalCostMillions, err = s.TotalCostMillions(ctx); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("failed to compute dashboard stats", zap.Error(errs[0]))
		return nil, apperrors.NewHttpError(500, "Không thể tải số liệu thống kê", errs[0], nil)
	}
	return &stats, nil
}

// DevicesDueForMaintenance lists devices whose next scheduled maintenance
// date falls within the lookahead window. Schedules step in cycle-month
// blocks of thirty days from the importation date.
func (s *StatsService) DevicesDueForMaintenance(ctx context.Context, now time.Time) ([]dto.DeviceDueForMaintenanceDTO, error) {
	devices, err := s.deviceRepo.ListAllDevices(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]dto.DeviceDueForMaintenanceDTO, 0)
	for i := range devices {
		d := &devices[i]
		if next, ok := nextMaintenanceDate(d, now); ok {
			due = append(due, dto.DeviceDueForMaintenanceDTO{
				DeviceCode: d.DeviceCode,
				Name:       d.Name,
				Date:       next.Format("2006-01-02"),
			})
		}
	}
	// Dates carry the 2006-01-02 layout, so the string order is the
	// chronological order. Latest due date first.
	sort.Slice(due, func(i, j int) bool { return due[i].Date > due[j].Date })
	return due, nil
}

func nextMaintenanceDate(d *entities.Device, now time.Time) (time.Time, bool) {
	if d.MaintenanceCycleMonths <= 0 {
		return time.Time{}, false
	}
	cycle := time.Duration(d.MaintenanceCycleMonths) * 30 * 24 * time.Hour
	next := d.ImportationDate.Add(cycle)
	for next.Before(now) {
		next = next.Add(cycle)
	}
	if utils.DaysBetween(now, next) <= maintenanceDueWindowDays {
		return next, true
	}
	return time.Time{}, false
}
