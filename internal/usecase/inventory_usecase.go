package usecase

import (
	"context"
	"fmt"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
	"github.com/driveline/driveline/internal/service/logger"
)

// CreateCarRequest represents the request to add a car to inventory
type CreateCarRequest struct {
	Make               string            `json:"make" validate:"required"`
	Model              string            `json:"model" validate:"required"`
	Year               int               `json:"year" validate:"required"`
	Price              float64           `json:"price" validate:"required,gte=0"`
	CostPrice          *float64          `json:"cost_price,omitempty"`
	ReconditioningCost *float64          `json:"reconditioning_cost,omitempty"`
	VIN                string            `json:"vin,omitempty"`
	StockNumber        string            `json:"stock_number,omitempty"`
	BodyType           domain.BodyType   `json:"body_type,omitempty"`
	FuelType           domain.FuelType   `json:"fuel_type,omitempty"`
	Transmission       string            `json:"transmission,omitempty"`
	Drivetrain         domain.Drivetrain `json:"drivetrain,omitempty"`
	Mileage            int               `json:"mileage,omitempty"`
	Location           string            `json:"location,omitempty"`
	Description        string            `json:"description,omitempty"`
	Status             domain.CarStatus  `json:"status,omitempty"`
}

// InventoryUseCase handles inventory management business logic
type InventoryUseCase struct {
	carRepo ports.CarRepository
	logRepo ports.InventoryLogRepository
	log     logger.Logger
}

// NewInventoryUseCase creates a new inventory use case
func NewInventoryUseCase(carRepo ports.CarRepository, logRepo ports.InventoryLogRepository, log logger.Logger) *InventoryUseCase {
	return &InventoryUseCase{
		carRepo: carRepo,
		logRepo: logRepo,
		log:     log,
	}
}

// AddCar creates a new car and records a CREATE log entry
func (uc *InventoryUseCase) AddCar(ctx context.Context, req CreateCarRequest, adminID string) (*domain.Car, error) {
	if err := uc.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	car := domain.NewCar(req.Make, req.Model, req.Year, req.Price)
	car.CostPrice = req.CostPrice
	car.ReconditioningCost = req.ReconditioningCost
	car.VIN = req.VIN
	car.StockNumber = req.StockNumber
	car.BodyType = req.BodyType
	car.FuelType = req.FuelType
	car.Transmission = req.Transmission
	car.Drivetrain = req.Drivetrain
	car.Mileage = req.Mileage
	car.Location = req.Location
	car.Description = req.Description
	if req.Status != "" {
		car.Status = req.Status
	}
	car.Sold = car.Status == domain.CarStatusSold

	if err := uc.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	entry := domain.NewInventoryLog(car.ID, adminID, domain.ActionCreate, nil,
		fmt.Sprintf("Added %d %s %s to inventory", car.Year, car.Make, car.Model))
	if err := uc.logRepo.Create(ctx, entry); err != nil {
		// The car exists; a missing CREATE entry degrades history but
		// should not fail the operation.
		uc.log.Warn(ctx, "failed to record create log", map[string]interface{}{
			"car_id": car.ID,
			"error":  err.Error(),
		})
	}

	return car, nil
}

// GetCar retrieves a car by ID
func (uc *InventoryUseCase) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	if carID == "" {
		return nil, fmt.Errorf("car ID is required")
	}

	car, err := uc.carRepo.FindByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return car, nil
}

// ListCars retrieves cars based on filter criteria
func (uc *InventoryUseCase) ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	cars, err := uc.carRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cars: %w", err)
	}

	count, err := uc.carRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	return cars, count, nil
}

// UpdateCar applies a partial update to a car. Only fields that actually
// changed are recorded: the diff against the stored snapshot becomes an
// immutable log entry persisted in the same transaction as the update.
// An empty diff applies no-op semantics and writes no history.
//
// Two concurrent updates against the same car both diff against their own
// stale snapshot; last write wins on the row while both diffs stay in the
// log. The trail is a record, not a concurrency control.
func (uc *InventoryUseCase) UpdateCar(ctx context.Context, carID string, proposed domain.CarUpdate, adminID string) (*domain.Car, error) {
	if carID == "" {
		return nil, fmt.Errorf("car ID is required")
	}

	car, err := uc.carRepo.FindByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	diff := domain.ComputeDiff(car, proposed)

	applyUpdate(car, proposed)

	var entry *domain.InventoryLog
	if !diff.IsEmpty() {
		entry = domain.NewInventoryLog(car.ID, adminID, diff.Action, diff.Details, "")
	}

	if err := uc.carRepo.UpdateWithLog(ctx, car, entry); err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}

	if entry != nil {
		uc.log.Info(ctx, "inventory change recorded", map[string]interface{}{
			"car_id":   car.ID,
			"admin_id": adminID,
			"action":   string(entry.Action),
			"fields":   len(entry.Details),
		})
	}

	return car, nil
}

// DeleteCar removes a car from inventory. A DELETE entry with the final
// snapshot is written first; the FK cascade then removes the car's trail
// along with the row, matching the ownership rule that a car's history is
// scoped to its own lifetime.
func (uc *InventoryUseCase) DeleteCar(ctx context.Context, carID, adminID string) error {
	if carID == "" {
		return fmt.Errorf("car ID is required")
	}

	car, err := uc.carRepo.FindByID(ctx, carID)
	if err != nil {
		return fmt.Errorf("failed to get car: %w", err)
	}

	entry := domain.NewInventoryLog(car.ID, adminID, domain.ActionDelete,
		domain.ChangeDetails{
			"price":  {Old: car.Price, New: nil},
			"status": {Old: car.Status, New: nil},
		},
		fmt.Sprintf("Removed %d %s %s from inventory", car.Year, car.Make, car.Model))
	if err := uc.logRepo.Create(ctx, entry); err != nil {
		uc.log.Warn(ctx, "failed to record delete log", map[string]interface{}{
			"car_id": car.ID,
			"error":  err.Error(),
		})
	}

	if err := uc.carRepo.Delete(ctx, carID); err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	return nil
}

// applyUpdate copies the proposed fields onto the car and keeps the two
// sold indicators in sync when status crosses the sold boundary. Readers
// still honor either flag on its own.
func applyUpdate(car *domain.Car, proposed domain.CarUpdate) {
	if proposed.Make != nil {
		car.Make = *proposed.Make
	}
	if proposed.Model != nil {
		car.Model = *proposed.Model
	}
	if proposed.Year != nil {
		car.Year = *proposed.Year
	}
	if proposed.VIN != nil {
		car.VIN = *proposed.VIN
	}
	if proposed.StockNumber != nil {
		car.StockNumber = *proposed.StockNumber
	}
	if proposed.BodyType != nil {
		car.BodyType = *proposed.BodyType
	}
	if proposed.FuelType != nil {
		car.FuelType = *proposed.FuelType
	}
	if proposed.Transmission != nil {
		car.Transmission = *proposed.Transmission
	}
	if proposed.Drivetrain != nil {
		car.Drivetrain = *proposed.Drivetrain
	}
	if proposed.Mileage != nil {
		car.Mileage = *proposed.Mileage
	}
	if proposed.Location != nil {
		car.Location = *proposed.Location
	}
	if proposed.Description != nil {
		car.Description = *proposed.Description
	}
	if proposed.Price != nil {
		car.Price = *proposed.Price
	}
	if proposed.CostPrice != nil {
		v := *proposed.CostPrice
		car.CostPrice = &v
	}
	if proposed.ReconditioningCost != nil {
		v := *proposed.ReconditioningCost
		car.ReconditioningCost = &v
	}
	if proposed.Status != nil {
		car.Status = *proposed.Status
		if car.Status == domain.CarStatusSold {
			car.Sold = true
		} else if proposed.Sold == nil {
			car.Sold = false
		}
	}
	if proposed.Sold != nil {
		car.Sold = *proposed.Sold
	}
}

func (uc *InventoryUseCase) validateCreateRequest(req CreateCarRequest) error {
	if req.Make == "" {
		return fmt.Errorf("make is required")
	}
	if req.Model == "" {
		return fmt.Errorf("model is required")
	}
	if req.Year < 1900 {
		return fmt.Errorf("invalid year: %d", req.Year)
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if req.CostPrice != nil && *req.CostPrice < 0 {
		return fmt.Errorf("cost price must not be negative")
	}
	if req.ReconditioningCost != nil && *req.ReconditioningCost < 0 {
		return fmt.Errorf("reconditioning cost must not be negative")
	}
	if req.VIN != "" && len(req.VIN) != 17 {
		return fmt.Errorf("VIN must be 17 characters")
	}
	return nil
}
