package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/service/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInventoryUseCase(carRepo *MockCarRepository, logRepo *MockLogRepository) *InventoryUseCase {
	return NewInventoryUseCase(carRepo, logRepo, logger.Noop())
}

func storedCar() *domain.Car {
	cost := 20000.0
	return &domain.Car{
		ID:        "car-1",
		Make:      "Toyota",
		Model:     "Camry",
		Year:      2021,
		Price:     20000,
		CostPrice: &cost,
		Status:    domain.CarStatusAvailable,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestInventoryUseCase_AddCar(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := newInventoryUseCase(carRepo, logRepo)

	carRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Car")).Return(nil)
	logRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.InventoryLog) bool {
		return entry.Action == domain.ActionCreate && entry.AdminID == "admin-1"
	})).Return(nil)

	car, err := uc.AddCar(context.Background(), CreateCarRequest{
		Make:  "Toyota",
		Model: "Camry",
		Year:  2021,
		Price: 30000,
	}, "admin-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, car.ID)
	assert.Equal(t, domain.CarStatusAcquired, car.Status)
	carRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestInventoryUseCase_AddCar_LogFailureDoesNotFail(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := newInventoryUseCase(carRepo, logRepo)

	carRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	logRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("log table down"))

	car, err := uc.AddCar(context.Background(), CreateCarRequest{
		Make:  "Honda",
		Model: "Civic",
		Year:  2020,
		Price: 25000,
	}, "admin-1")

	assert.NoError(t, err)
	assert.NotNil(t, car)
}

func TestInventoryUseCase_AddCar_Validation(t *testing.T) {
	uc := newInventoryUseCase(&MockCarRepository{}, &MockLogRepository{})

	tests := []struct {
		name string
		req  CreateCarRequest
	}{
		{"missing make", CreateCarRequest{Model: "Camry", Year: 2021, Price: 100}},
		{"missing model", CreateCarRequest{Make: "Toyota", Year: 2021, Price: 100}},
		{"negative price", CreateCarRequest{Make: "Toyota", Model: "Camry", Year: 2021, Price: -1}},
		{"short vin", CreateCarRequest{Make: "Toyota", Model: "Camry", Year: 2021, Price: 100, VIN: "ABC123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AddCar(context.Background(), tt.req, "admin-1")
			assert.Error(t, err)
		})
	}
}

// A price change plus a status change in one request must land as a
// single log entry carrying both field pairs, classified by the status
// transition.
func TestInventoryUseCase_UpdateCar_PriceAndStatus(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := newInventoryUseCase(carRepo, logRepo)

	carRepo.On("FindByID", mock.Anything, "car-1").Return(storedCar(), nil)

	var captured *domain.InventoryLog
	carRepo.On("UpdateWithLog", mock.Anything, mock.AnythingOfType("*domain.Car"), mock.AnythingOfType("*domain.InventoryLog")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(*domain.InventoryLog)
		}).Return(nil)

	price := 22000.0
	status := domain.CarStatusReserved
	car, err := uc.UpdateCar(context.Background(), "car-1", domain.CarUpdate{
		Price:  &price,
		Status: &status,
	}, "admin-99")

	assert.NoError(t, err)
	assert.Equal(t, 22000.0, car.Price)
	assert.Equal(t, domain.CarStatusReserved, car.Status)

	if assert.NotNil(t, captured) {
		assert.Equal(t, domain.ActionStatusChange, captured.Action)
		assert.Equal(t, "admin-99", captured.AdminID)
		assert.Len(t, captured.Details, 2)
		assert.Equal(t, 20000.0, captured.Details["price"].Old)
		assert.Equal(t, 22000.0, captured.Details["price"].New)
		assert.Equal(t, domain.CarStatusAvailable, captured.Details["status"].Old)
		assert.Equal(t, domain.CarStatusReserved, captured.Details["status"].New)
	}
}

// Proposing values identical to the stored ones updates the row but
// writes no history.
func TestInventoryUseCase_UpdateCar_EmptyDiffWritesNoLog(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := newInventoryUseCase(carRepo, logRepo)

	carRepo.On("FindByID", mock.Anything, "car-1").Return(storedCar(), nil)
	carRepo.On("UpdateWithLog", mock.Anything, mock.AnythingOfType("*domain.Car"), (*domain.InventoryLog)(nil)).Return(nil)

	price := 20000.0
	_, err := uc.UpdateCar(context.Background(), "car-1", domain.CarUpdate{Price: &price}, "admin-1")

	assert.NoError(t, err)
	carRepo.AssertExpectations(t)
}

func TestInventoryUseCase_UpdateCar_NotFound(t *testing.T) {
	carRepo := &MockCarRepository{}
	uc := newInventoryUseCase(carRepo, &MockLogRepository{})

	carRepo.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrCarNotFound)

	price := 100.0
	_, err := uc.UpdateCar(context.Background(), "missing", domain.CarUpdate{Price: &price}, "admin-1")

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCarNotFound)
}

// Marking the status sold must flip the sold flag the same way the flag
// alone marks a car sold.
func TestInventoryUseCase_UpdateCar_StatusSoldSyncsFlag(t *testing.T) {
	carRepo := &MockCarRepository{}
	uc := newInventoryUseCase(carRepo, &MockLogRepository{})

	carRepo.On("FindByID", mock.Anything, "car-1").Return(storedCar(), nil)
	carRepo.On("UpdateWithLog", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	status := domain.CarStatusSold
	car, err := uc.UpdateCar(context.Background(), "car-1", domain.CarUpdate{Status: &status}, "admin-1")

	assert.NoError(t, err)
	assert.True(t, car.Sold)
	assert.True(t, car.IsSold())
}

func TestInventoryUseCase_DeleteCar(t *testing.T) {
	carRepo := &MockCarRepository{}
	logRepo := &MockLogRepository{}
	uc := newInventoryUseCase(carRepo, logRepo)

	carRepo.On("FindByID", mock.Anything, "car-1").Return(storedCar(), nil)
	logRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.InventoryLog) bool {
		return entry.Action == domain.ActionDelete && entry.CarID == "car-1"
	})).Return(nil)
	carRepo.On("Delete", mock.Anything, "car-1").Return(nil)

	err := uc.DeleteCar(context.Background(), "car-1", "admin-1")

	assert.NoError(t, err)
	carRepo.AssertExpectations(t)
	logRepo.AssertExpectations(t)
}

func TestInventoryUseCase_ListCars_DefaultLimit(t *testing.T) {
	carRepo := &MockCarRepository{}
	uc := newInventoryUseCase(carRepo, &MockLogRepository{})

	carRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.CarFilter) bool {
		return f.Limit == 20
	})).Return([]*domain.Car{}, nil)
	carRepo.On("Count", mock.Anything, mock.Anything).Return(0, nil)

	_, total, err := uc.ListCars(context.Background(), domain.CarFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	carRepo.AssertExpectations(t)
}
