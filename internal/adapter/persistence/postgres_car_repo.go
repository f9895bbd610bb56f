package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
)

// PostgresCarRepository implements CarRepository using PostgreSQL
type PostgresCarRepository struct {
	db *sql.DB
}

// NewPostgresCarRepository creates a new PostgreSQL car repository
func NewPostgresCarRepository(db *sql.DB) ports.CarRepository {
	return &PostgresCarRepository{db: db}
}

const carColumns = `id, make, model, year, vin, stock_number, body_type, fuel_type,
	transmission, drivetrain, mileage, location, description, price, cost_price,
	reconditioning_cost, status, sold, created_at, updated_at`

// Create saves a new car
func (r *PostgresCarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.ExecContext(ctx, query,
		car.ID,
		car.Make,
		car.Model,
		car.Year,
		nullString(car.VIN),
		nullString(car.StockNumber),
		nullString(string(car.BodyType)),
		nullString(string(car.FuelType)),
		nullString(car.Transmission),
		nullString(string(car.Drivetrain)),
		car.Mileage,
		nullString(car.Location),
		nullString(car.Description),
		car.Price,
		car.CostPrice,
		car.ReconditioningCost,
		string(car.Status),
		car.Sold,
		car.CreatedAt,
		car.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	return nil
}

// FindByID retrieves a car by its ID
func (r *PostgresCarRepository) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}

	return car, nil
}

// Update updates an existing car
func (r *PostgresCarRepository) Update(ctx context.Context, car *domain.Car) error {
	result, err := r.db.ExecContext(ctx, carUpdateQuery, carUpdateArgs(car)...)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCarNotFound
	}

	return nil
}

// UpdateWithLog updates a car and appends its inventory log entry in one
// transaction: either both land or neither does. There is no optimistic
// lock; concurrent writers race and last write wins on the row while
// every diff stays in the log.
func (r *PostgresCarRepository) UpdateWithLog(ctx context.Context, car *domain.Car, entry *domain.InventoryLog) error {
	if entry == nil {
		return r.Update(ctx, car)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, carUpdateQuery, carUpdateArgs(car)...)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCarNotFound
	}

	if err := insertLog(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}

	return nil
}

// List retrieves cars based on filter criteria
func (r *PostgresCarRepository) List(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE 1=1`

	conditions, args := buildCarConditions(filter)
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	argIndex := len(args) + 1
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, nil
}

// Delete removes a car. Inventory logs referencing it go with it via the
// ON DELETE CASCADE on inventory_logs.car_id.
func (r *PostgresCarRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCarNotFound
	}

	return nil
}

// Count returns the number of cars matching the filter
func (r *PostgresCarRepository) Count(ctx context.Context, filter domain.CarFilter) (int, error) {
	query := `SELECT COUNT(*) FROM cars WHERE 1=1`

	conditions, args := buildCarConditions(filter)
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}

	return count, nil
}

const carUpdateQuery = `
	UPDATE cars
	SET make = $2, model = $3, year = $4, vin = $5, stock_number = $6,
		body_type = $7, fuel_type = $8, transmission = $9, drivetrain = $10,
		mileage = $11, location = $12, description = $13, price = $14,
		cost_price = $15, reconditioning_cost = $16, status = $17, sold = $18,
		updated_at = $19
	WHERE id = $1
`

func carUpdateArgs(car *domain.Car) []interface{} {
	return []interface{}{
		car.ID,
		car.Make,
		car.Model,
		car.Year,
		nullString(car.VIN),
		nullString(car.StockNumber),
		nullString(string(car.BodyType)),
		nullString(string(car.FuelType)),
		nullString(car.Transmission),
		nullString(string(car.Drivetrain)),
		car.Mileage,
		nullString(car.Location),
		nullString(car.Description),
		car.Price,
		car.CostPrice,
		car.ReconditioningCost,
		string(car.Status),
		car.Sold,
		car.UpdatedAt,
	}
}

func buildCarConditions(filter domain.CarFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(*filter.Status))
		argIndex++
	}
	if filter.Make != nil {
		conditions = append(conditions, fmt.Sprintf("make = $%d", argIndex))
		args = append(args, *filter.Make)
		argIndex++
	}
	if filter.Sold != nil {
		conditions = append(conditions, fmt.Sprintf("sold = $%d", argIndex))
		args = append(args, *filter.Sold)
		argIndex++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIndex))
		args = append(args, *filter.EndDate)
		argIndex++
	}

	return conditions, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*domain.Car, error) {
	var car domain.Car
	var vin, stockNumber, bodyType, fuelType, transmission, drivetrain, location, description sql.NullString
	var costPrice, reconditioningCost sql.NullFloat64

	err := row.Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&vin,
		&stockNumber,
		&bodyType,
		&fuelType,
		&transmission,
		&drivetrain,
		&car.Mileage,
		&location,
		&description,
		&car.Price,
		&costPrice,
		&reconditioningCost,
		&car.Status,
		&car.Sold,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	car.VIN = vin.String
	car.StockNumber = stockNumber.String
	car.BodyType = domain.BodyType(bodyType.String)
	car.FuelType = domain.FuelType(fuelType.String)
	car.Transmission = transmission.String
	car.Drivetrain = domain.Drivetrain(drivetrain.String)
	car.Location = location.String
	car.Description = description.String
	if costPrice.Valid {
		car.CostPrice = &costPrice.Float64
	}
	if reconditioningCost.Valid {
		car.ReconditioningCost = &reconditioningCost.Float64
	}

	return &car, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
