package ports

import (
	"context"
	"time"
)

// TokenClaims carries the authenticated admin identity extracted from a token
type TokenClaims struct {
	AdminID string
	Role    string
}

// TokenService defines the interface for issuing and validating session tokens
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService defines the interface for password hashing
type PasswordService interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) error
}

// RateLimiter defines the interface for request rate limiting
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	IsBlocked(ctx context.Context, key string) (bool, error)
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
}

// DecodedVehicle is the vehicle description extracted from a VIN lookup,
// mapped into the inventory schema's closed enums.
type DecodedVehicle struct {
	Make         string   `json:"make,omitempty"`
	Model        string   `json:"model,omitempty"`
	Year         int      `json:"year,omitempty"`
	BodyType     string   `json:"body_type,omitempty"`
	FuelType     string   `json:"fuel_type,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	EngineSize   float64  `json:"engine_size,omitempty"`
	Horsepower   int      `json:"horsepower,omitempty"`
	Drivetrain   string   `json:"drivetrain,omitempty"`
	Doors        int      `json:"doors,omitempty"`
	Cylinders    int      `json:"cylinders,omitempty"`
	PlantCountry string   `json:"plant_country,omitempty"`
	VehicleType  string   `json:"vehicle_type,omitempty"`
}

// VinDecoder defines the interface for VIN lookup. Implementations must
// reject malformed VINs before any external call.
type VinDecoder interface {
	Decode(ctx context.Context, vin string) (*DecodedVehicle, error)
}
