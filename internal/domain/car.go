package domain

import (
	"time"

	"github.com/google/uuid"
)

// CarStatus represents the lifecycle status of a car in inventory
type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusReserved    CarStatus = "reserved"
	CarStatusSold        CarStatus = "sold"
	CarStatusPreparing   CarStatus = "preparing"
	CarStatusAcquired    CarStatus = "acquired"
	CarStatusMaintenance CarStatus = "maintenance"
)

// BodyType represents the body style of a car
type BodyType string

const (
	BodyTypeSedan       BodyType = "sedan"
	BodyTypeCoupe       BodyType = "coupe"
	BodyTypeSUV         BodyType = "suv"
	BodyTypeHatchback   BodyType = "hatchback"
	BodyTypeTruck       BodyType = "truck"
	BodyTypeMinivan     BodyType = "minivan"
	BodyTypeConvertible BodyType = "convertible"
	BodyTypeWagon       BodyType = "wagon"
	BodyTypeCrossover   BodyType = "crossover"
)

// FuelType represents the primary fuel of a car
type FuelType string

const (
	FuelTypeGasoline FuelType = "gasoline"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
	FuelTypeHydrogen FuelType = "hydrogen"
)

// Drivetrain represents the drive configuration of a car
type Drivetrain string

const (
	DrivetrainFWD Drivetrain = "fwd"
	DrivetrainRWD Drivetrain = "rwd"
	DrivetrainAWD Drivetrain = "awd"
	Drivetrain4WD Drivetrain = "4wd"
)

// Car represents one vehicle in dealership inventory
type Car struct {
	ID                 string     `json:"id"`
	Make               string     `json:"make"`
	Model              string     `json:"model"`
	Year               int        `json:"year"`
	VIN                string     `json:"vin,omitempty"`
	StockNumber        string     `json:"stock_number,omitempty"`
	BodyType           BodyType   `json:"body_type,omitempty"`
	FuelType           FuelType   `json:"fuel_type,omitempty"`
	Transmission       string     `json:"transmission,omitempty"`
	Drivetrain         Drivetrain `json:"drivetrain,omitempty"`
	Mileage            int        `json:"mileage"`
	Location           string     `json:"location,omitempty"`
	Description        string     `json:"description,omitempty"`
	Price              float64    `json:"price"`
	CostPrice          *float64   `json:"cost_price,omitempty"`
	ReconditioningCost *float64   `json:"reconditioning_cost,omitempty"`
	Status             CarStatus  `json:"status"`
	Sold               bool       `json:"sold"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewCar creates a new car in the acquired state
func NewCar(make, model string, year int, price float64) *Car {
	now := time.Now()
	return &Car{
		ID:        uuid.NewString(),
		Make:      make,
		Model:     model,
		Year:      year,
		Price:     price,
		Status:    CarStatusAcquired,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSold reports whether the car counts as sold. The sold flag and the
// status enum are independent writers; either one marks the car sold.
func (c *Car) IsSold() bool {
	return c.Sold || c.Status == CarStatusSold
}

// EffectiveCost returns the acquisition cost, treating an absent value as 0.
func (c *Car) EffectiveCost() float64 {
	if c.CostPrice == nil {
		return 0
	}
	return *c.CostPrice
}

// EffectiveReconditioning returns the reconditioning cost, treating an
// absent value as 0.
func (c *Car) EffectiveReconditioning() float64 {
	if c.ReconditioningCost == nil {
		return 0
	}
	return *c.ReconditioningCost
}

// CarFilter represents filters for listing cars
type CarFilter struct {
	Status    *CarStatus `json:"status,omitempty"`
	Make      *string    `json:"make,omitempty"`
	Sold      *bool      `json:"sold,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// Custom errors
var (
	ErrCarNotFound   = NewDomainError("car not found")
	ErrBlogNotFound  = NewDomainError("blog not found")
	ErrAdminNotFound = NewDomainError("admin not found")
	ErrInvalidVIN    = NewDomainError("invalid VIN: must be 17 characters")
)

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}
