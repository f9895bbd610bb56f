package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action classifies the nature of an inventory change
type Action string

const (
	ActionCreate         Action = "CREATE"
	ActionUpdate         Action = "UPDATE"
	ActionDelete         Action = "DELETE"
	ActionStatusChange   Action = "STATUS_CHANGE"
	ActionPriceChange    Action = "PRICE_CHANGE"
	ActionExpenseAdded   Action = "EXPENSE_ADDED"
	ActionLocationChange Action = "LOCATION_CHANGE"
)

// FieldChange holds the before and after value of one changed field
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ChangeDetails maps changed field names to their old/new values. The map
// is persisted as JSON and must round-trip through storage unchanged.
type ChangeDetails map[string]FieldChange

// InventoryLog is an immutable record of one inventory change event.
// Logs are append-only history; they carry no update timestamp.
type InventoryLog struct {
	ID          string        `json:"id"`
	CarID       string        `json:"car_id"`
	AdminID     string        `json:"admin_id"`
	Action      Action        `json:"action"`
	Details     ChangeDetails `json:"details,omitempty"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewInventoryLog creates a new log entry for a change to the given car
func NewInventoryLog(carID, adminID string, action Action, details ChangeDetails, description string) *InventoryLog {
	return &InventoryLog{
		ID:          uuid.NewString(),
		CarID:       carID,
		AdminID:     adminID,
		Action:      action,
		Details:     details,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

// LogFilter represents filters for reading the audit trail
type LogFilter struct {
	CarID   *string `json:"car_id,omitempty"`
	Action  *Action `json:"action,omitempty"`
	AdminID *string `json:"admin_id,omitempty"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}
