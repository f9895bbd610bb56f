package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/driveline/driveline/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProfitabilityUseCase_GetMetrics_EmptyInventory(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := NewProfitabilityUseCase(carRepo, logRepo)

	carRepo.On("List", mock.Anything, mock.Anything).Return([]*domain.Car{}, nil)
	logRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.LogFilter) bool {
		return f.Limit == recentActivityLimit
	})).Return([]*domain.InventoryLog{}, nil)

	report, err := uc.GetMetrics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0.0, report.Metrics.GrossInventoryValue)
	assert.Equal(t, 0.0, report.Metrics.AvgMarkup)
	assert.Empty(t, report.ProfitByMake)
	logRepo.AssertExpectations(t)
}

func TestProfitabilityUseCase_GetDateRangeMetrics(t *testing.T) {
	carRepo := &MockCarRepository{}
	uc := NewProfitabilityUseCase(carRepo, &MockLogRepository{})

	var captured domain.CarFilter
	carRepo.On("List", mock.Anything, mock.AnythingOfType("domain.CarFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.CarFilter)
		}).Return([]*domain.Car{}, nil)

	metrics, err := uc.GetDateRangeMetrics(context.Background(), "2026-01-01", "2026-01-31")

	assert.NoError(t, err)
	assert.Equal(t, "2026-01-01", metrics.Period.StartDate)
	assert.Equal(t, "2026-01-31", metrics.Period.EndDate)

	// End bound covers the whole final day.
	if assert.NotNil(t, captured.EndDate) {
		assert.Equal(t, 31, captured.EndDate.Day())
		assert.Equal(t, 23, captured.EndDate.Hour())
	}
	if assert.NotNil(t, captured.StartDate) {
		assert.Equal(t, time.January, captured.StartDate.Month())
	}
}

func TestProfitabilityUseCase_GetDateRangeMetrics_InvalidDate(t *testing.T) {
	uc := NewProfitabilityUseCase(&MockCarRepository{}, &MockLogRepository{})

	_, err := uc.GetDateRangeMetrics(context.Background(), "01/15/2026", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")
}

func TestProfitabilityUseCase_GetAuditTrail_Defaults(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := NewProfitabilityUseCase(carRepo, logRepo)

	logRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.LogFilter) bool {
		return f.Limit == defaultTrailLimit && f.Offset == 0
	})).Return([]*domain.InventoryLog{}, nil)
	logRepo.On("Count", mock.Anything, mock.Anything).Return(0, nil)

	page, err := uc.GetAuditTrail(context.Background(), AuditTrailQuery{})

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, defaultTrailLimit, page.Pagination.Limit)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.NotNil(t, page.Logs)
	logRepo.AssertExpectations(t)
}

func TestProfitabilityUseCase_GetAuditTrail_LimitCapped(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := NewProfitabilityUseCase(carRepo, logRepo)

	logRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.LogFilter) bool {
		return f.Limit == maxTrailLimit && f.Offset == maxTrailLimit
	})).Return([]*domain.InventoryLog{}, nil)
	logRepo.On("Count", mock.Anything, mock.Anything).Return(0, nil)

	page, err := uc.GetAuditTrail(context.Background(), AuditTrailQuery{Page: 2, Limit: 100000})

	assert.NoError(t, err)
	assert.Equal(t, maxTrailLimit, page.Pagination.Limit)
	logRepo.AssertExpectations(t)
}

func TestProfitabilityUseCase_GetAuditTrail_PaginationMath(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := NewProfitabilityUseCase(carRepo, logRepo)

	entries := []*domain.InventoryLog{
		domain.NewInventoryLog("car-1", "admin-1", domain.ActionPriceChange, nil, ""),
	}

	logRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.LogFilter) bool {
		// page 3 at limit 25 skips the first 50 entries
		return f.Limit == 25 && f.Offset == 50
	})).Return(entries, nil)
	logRepo.On("Count", mock.Anything, mock.Anything).Return(101, nil)

	page, err := uc.GetAuditTrail(context.Background(), AuditTrailQuery{Page: 3, Limit: 25})

	assert.NoError(t, err)
	assert.Equal(t, 101, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Page)
	assert.Equal(t, 5, page.Pagination.TotalPages)
	assert.Len(t, page.Logs, 1)
	logRepo.AssertExpectations(t)
}

func TestProfitabilityUseCase_GetAuditTrail_Filters(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := NewProfitabilityUseCase(carRepo, logRepo)

	logRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.LogFilter) bool {
		return f.CarID != nil && *f.CarID == "car-7" &&
			f.Action != nil && *f.Action == domain.ActionStatusChange &&
			f.AdminID != nil && *f.AdminID == "admin-2"
	})).Return([]*domain.InventoryLog{}, nil)
	logRepo.On("Count", mock.Anything, mock.Anything).Return(0, nil)

	_, err := uc.GetAuditTrail(context.Background(), AuditTrailQuery{
		CarID:   "car-7",
		Action:  "STATUS_CHANGE",
		AdminID: "admin-2",
	})

	assert.NoError(t, err)
	logRepo.AssertExpectations(t)
}
