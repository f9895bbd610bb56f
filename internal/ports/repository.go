package ports

import (
	"context"

	"github.com/driveline/driveline/internal/domain"
)

// CarRepository defines the interface for car persistence
type CarRepository interface {
	// Create saves a new car
	Create(ctx context.Context, car *domain.Car) error

	// FindByID retrieves a car by its ID
	FindByID(ctx context.Context, id string) (*domain.Car, error)

	// Update updates an existing car
	Update(ctx context.Context, car *domain.Car) error

	// UpdateWithLog updates a car and appends an inventory log entry in
	// a single transaction. A nil entry updates the car alone (nothing
	// changed, so no history is written).
	UpdateWithLog(ctx context.Context, car *domain.Car, entry *domain.InventoryLog) error

	// List retrieves cars based on filter criteria
	List(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error)

	// Delete removes a car. Its inventory logs go with it (cascade).
	Delete(ctx context.Context, id string) error

	// Count returns the number of cars matching the filter
	Count(ctx context.Context, filter domain.CarFilter) (int, error)
}

// InventoryLogRepository defines the interface for audit trail persistence.
// Log entries are append-only: there is no update or single delete.
type InventoryLogRepository interface {
	// Create appends a new log entry
	Create(ctx context.Context, entry *domain.InventoryLog) error

	// List retrieves log entries matching the filter, newest first
	List(ctx context.Context, filter domain.LogFilter) ([]*domain.InventoryLog, error)

	// Count returns the number of log entries matching the filter
	Count(ctx context.Context, filter domain.LogFilter) (int, error)
}

// BlogRepository defines the interface for blog persistence
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) error
	List(ctx context.Context, limit, offset int) ([]*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// AdminRepository defines the interface for admin account persistence
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
