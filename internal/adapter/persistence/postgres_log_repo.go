package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
)

// PostgresLogRepository implements InventoryLogRepository using PostgreSQL.
// The table is append-only; nothing here updates or deletes rows.
type PostgresLogRepository struct {
	db *sql.DB
}

// NewPostgresLogRepository creates a new PostgreSQL inventory log repository
func NewPostgresLogRepository(db *sql.DB) ports.InventoryLogRepository {
	return &PostgresLogRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// insertLog writes one log row on the given executor, so the same insert
// serves both standalone creates and the car-update transaction.
func insertLog(ctx context.Context, e execer, entry *domain.InventoryLog) error {
	var detailsJSON interface{}
	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal log details: %w", err)
		}
		detailsJSON = data
	}

	query := `
		INSERT INTO inventory_logs (id, car_id, admin_id, action, details, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := e.ExecContext(ctx, query,
		entry.ID,
		entry.CarID,
		entry.AdminID,
		string(entry.Action),
		detailsJSON,
		nullString(entry.Description),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory log: %w", err)
	}

	return nil
}

// Create appends a new log entry
func (r *PostgresLogRepository) Create(ctx context.Context, entry *domain.InventoryLog) error {
	return insertLog(ctx, r.db, entry)
}

// List retrieves log entries matching the filter, newest first
func (r *PostgresLogRepository) List(ctx context.Context, filter domain.LogFilter) ([]*domain.InventoryLog, error) {
	query := `
		SELECT id, car_id, admin_id, action, details, description, created_at
		FROM inventory_logs WHERE 1=1
	`

	conditions, args := buildLogConditions(filter)
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
		return nil, fmt.Errorf("failed to query inventory logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.InventoryLog
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory log: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory logs: %w", err)
	}

	return entries, nil
}

// Count returns the number of log entries matching the filter
func (r *PostgresLogRepository) Count(ctx context.Context, filter domain.LogFilter) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_logs WHERE 1=1`

	conditions, args := buildLogConditions(filter)
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count inventory logs: %w", err)
	}

	return count, nil
}

func buildLogConditions(filter domain.LogFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.CarID != nil {
		conditions = append(conditions, fmt.Sprintf("car_id = $%d", argIndex))
		args = append(args, *filter.CarID)
		argIndex++
	}
	if filter.Action != nil {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIndex))
		args = append(args, string(*filter.Action))
		argIndex++
	}
	if filter.AdminID != nil {
		conditions = append(conditions, fmt.Sprintf("admin_id = $%d", argIndex))
		args = append(args, *filter.AdminID)
		argIndex++
	}

	return conditions, args
}

func scanLog(row rowScanner) (*domain.InventoryLog, error) {
	var entry domain.InventoryLog
	var detailsJSON []byte
	var description sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.CarID,
		&entry.AdminID,
		&entry.Action,
		&detailsJSON,
		&description,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log details: %w", err)
		}
	}
	entry.Description = description.String

	return &entry, nil
}
