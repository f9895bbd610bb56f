package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
)

const (
	recentActivityLimit = 10
	defaultTrailLimit   = 50
	maxTrailLimit       = 100
)

// ProfitabilityReport is the full dashboard payload: headline metrics,
// per-make breakdown, and the most recent audit activity.
type ProfitabilityReport struct {
	Metrics        domain.Metrics             `json:"metrics"`
	ProfitByMake   []domain.ProfitByMakeEntry `json:"profitByMake"`
	RecentActivity []*domain.InventoryLog     `json:"recentActivity"`
}

// Pagination describes one page of audit trail results
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// AuditTrailPage is one page of the inventory audit trail
type AuditTrailPage struct {
	Logs       []*domain.InventoryLog `json:"logs"`
	Pagination Pagination             `json:"pagination"`
}

// AuditTrailQuery selects and pages audit trail entries
type AuditTrailQuery struct {
	CarID   string
	Action  string
	AdminID string
	Page    int
	Limit   int
}

// ProfitabilityUseCase computes financial reporting over the inventory
type ProfitabilityUseCase struct {
	carRepo ports.CarRepository
	logRepo ports.InventoryLogRepository
}

// NewProfitabilityUseCase creates a new profitability use case
func NewProfitabilityUseCase(carRepo ports.CarRepository, logRepo ports.InventoryLogRepository) *ProfitabilityUseCase {
	return &ProfitabilityUseCase{
		carRepo: carRepo,
		logRepo: logRepo,
	}
}

// GetMetrics loads the full inventory at a single point in time and
// recomputes the profitability snapshot from scratch. Sparse or empty
// inventory degrades to zeroed metrics rather than an error.
func (uc *ProfitabilityUseCase) GetMetrics(ctx context.Context) (*ProfitabilityReport, error) {
	cars, err := uc.carRepo.List(ctx, domain.CarFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	snapshot := domain.ComputeMetrics(cars)

	recent, err := uc.logRepo.List(ctx, domain.LogFilter{Limit: recentActivityLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	return &ProfitabilityReport{
		Metrics:        snapshot.Metrics,
		ProfitByMake:   snapshot.ProfitByMake,
		RecentActivity: recent,
	}, nil
}

// GetDateRangeMetrics computes sales totals for cars created within the
// inclusive bounds. Either bound may be empty.
func (uc *ProfitabilityUseCase) GetDateRangeMetrics(ctx context.Context, startDate, endDate string) (*domain.DateRangeMetrics, error) {
	filter := domain.CarFilter{}

	if startDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		filter.StartDate = &start
	}
	if endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		// Inclusive upper bound: extend to the end of the day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	cars, err := uc.carRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	metrics := domain.ComputeDateRangeMetrics(cars, domain.DateRangePeriod{
		StartDate: startDate,
		EndDate:   endDate,
	})
	return &metrics, nil
}

// GetAuditTrail reads one page of the audit trail, newest first,
// filterable by exact match on car, action, and admin.
func (uc *ProfitabilityUseCase) GetAuditTrail(ctx context.Context, query AuditTrailQuery) (*AuditTrailPage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = defaultTrailLimit
	}
	if query.Limit > maxTrailLimit {
		query.Limit = maxTrailLimit
	}

	filter := domain.LogFilter{
		Limit:  query.Limit,
		Offset: (query.Page - 1) * query.Limit,
	}
	if query.CarID != "" {
		filter.CarID = &query.CarID
	}
	if query.Action != "" {
		action := domain.Action(query.Action)
		filter.Action = &action
	}
	if query.AdminID != "" {
		filter.AdminID = &query.AdminID
	}

	logs, err := uc.logRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}

	total, err := uc.logRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit trail: %w", err)
	}

	if logs == nil {
		logs = []*domain.InventoryLog{}
	}

	return &AuditTrailPage{
		Logs: logs,
		Pagination: Pagination{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
		},
	}, nil
}
