package vin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
	"github.com/driveline/driveline/internal/service/logger"
)

const defaultBaseURL = "https://vpic.nhtsa.dot.gov/api/vehicles"

// RetryPolicy controls retries against the decoder API. Zero attempts
// means a single try with no retry.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// Config configures the VIN decode service
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Retry    RetryPolicy
	CacheTTL time.Duration
}

// Service decodes VINs through the NHTSA vPIC API. Decoded results are
// immutable per VIN, so successful lookups are cached in Redis.
type Service struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	cache      *redis.Client
	cacheTTL   time.Duration
	log        logger.Logger
}

// New creates a VIN decode service. The cache client may be nil, in
// which case every lookup goes to the API.
func New(config Config, cache *redis.Client, log logger.Logger) *Service {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
		retry:      config.Retry,
		cache:      cache,
		cacheTTL:   config.CacheTTL,
		log:        log,
	}
}

// IsValidVIN reports whether a VIN has the mandated 17-character length
func IsValidVIN(vin string) bool {
	return len(vin) == 17
}

// vpicResponse is the wire shape of the vPIC DecodeVin endpoint
type vpicResponse struct {
	Results []struct {
		Variable string `json:"Variable"`
		Value    string `json:"Value"`
	} `json:"Results"`
}

// Decode looks up a VIN and maps the result into inventory fields.
// Malformed VINs are rejected before any network call.
func (s *Service) Decode(ctx context.Context, vin string) (*ports.DecodedVehicle, error) {
	if !IsValidVIN(vin) {
		return nil, domain.ErrInvalidVIN
	}

	if cached := s.fromCache(ctx, vin); cached != nil {
		return cached, nil
	}

	attrs, err := s.fetch(ctx, vin)
	if err != nil {
		return nil, err
	}

	decoded := &ports.DecodedVehicle{
		Make:         attrs["Make"],
		Model:        attrs["Model"],
		Year:         atoi(attrs["Model Year"]),
		BodyType:     mapBodyType(attrs["Body Class"]),
		FuelType:     mapFuelType(attrs["Fuel Type - Primary"]),
		EngineSize:   atof(attrs["Displacement (L)"]),
		Horsepower:   atoi(attrs["Engine Brake (hp) From"]),
		Drivetrain:   mapDrivetrain(attrs["Drive Type"]),
		Doors:        atoi(attrs["Doors"]),
		Cylinders:    atoi(attrs["Engine Number of Cylinders"]),
		PlantCountry: attrs["Plant Country"],
		VehicleType:  attrs["Vehicle Type"],
	}

	s.toCache(ctx, vin, decoded)
	return decoded, nil
}

// fetch calls the decoder API, retrying per the configured policy
func (s *Service) fetch(ctx context.Context, vin string) (map[string]string, error) {
	url := fmt.Sprintf("%s/DecodeVin/%s?format=json", s.baseURL, vin)

	var lastErr error
	attempts := s.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retry.Backoff * time.Duration(attempt-1)):
			}
		}

		attrs, err := s.fetchOnce(ctx, url)
		if err == nil {
			return attrs, nil
		}
		lastErr = err
		s.log.Warn(ctx, "VIN decode attempt failed", map[string]interface{}{
			"vin":     vin,
			"attempt": attempt,
			"error":   err.Error(),
		})
	}

	return nil, fmt.Errorf("failed to decode VIN: %w", lastErr)
}

func (s *Service) fetchOnce(ctx context.Context, url string) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("decoder unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("decoder returned status %d", resp.StatusCode)
	}

	var result vpicResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Results) == 0 {
		return nil, fmt.Errorf("could not decode VIN")
	}

	attrs := make(map[string]string, len(result.Results))
	for _, item := range result.Results {
		if item.Value != "" && item.Value != "null" {
			attrs[item.Variable] = item.Value
		}
	}
	return attrs, nil
}

func (s *Service) fromCache(ctx context.Context, vin string) *ports.DecodedVehicle {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey(vin)).Bytes()
	if err != nil {
		return nil
	}
	var decoded ports.DecodedVehicle
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	return &decoded
}

func (s *Service) toCache(ctx context.Context, vin string, decoded *ports.DecodedVehicle) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(decoded)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(vin), raw, s.cacheTTL).Err(); err != nil {
		s.log.Debug(ctx, "failed to cache decoded VIN", map[string]interface{}{
			"vin":   vin,
			"error": err.Error(),
		})
	}
}

func cacheKey(vin string) string {
	return "vin:" + strings.ToUpper(vin)
}

// mapBodyType folds the decoder's free-form body class into the closed
// inventory enum; unrecognized values map to empty
func mapBodyType(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "sedan"):
		return string(domain.BodyTypeSedan)
	case strings.Contains(t, "coupe"):
		return string(domain.BodyTypeCoupe)
	case strings.Contains(t, "sport utility") || strings.Contains(t, "suv"):
		return string(domain.BodyTypeSUV)
	case strings.Contains(t, "hatchback"):
		return string(domain.BodyTypeHatchback)
	case strings.Contains(t, "truck") || strings.Contains(t, "pickup"):
		return string(domain.BodyTypeTruck)
	case strings.Contains(t, "van"):
		return string(domain.BodyTypeMinivan)
	case strings.Contains(t, "convertible") || strings.Contains(t, "cabriolet"):
		return string(domain.BodyTypeConvertible)
	case strings.Contains(t, "wagon"):
		return string(domain.BodyTypeWagon)
	case strings.Contains(t, "crossover"):
		return string(domain.BodyTypeCrossover)
	}
	return ""
}

// mapFuelType folds the decoder's fuel description into the closed enum.
// Gasoline is the fallback for unrecognized values.
func mapFuelType(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "diesel"):
		return string(domain.FuelTypeDiesel)
	case strings.Contains(t, "electric"):
		return string(domain.FuelTypeElectric)
	case strings.Contains(t, "hybrid"):
		return string(domain.FuelTypeHybrid)
	case strings.Contains(t, "hydrogen"):
		return string(domain.FuelTypeHydrogen)
	}
	return string(domain.FuelTypeGasoline)
}

func mapDrivetrain(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "4wd") || strings.Contains(t, "four wheel"):
		return string(domain.Drivetrain4WD)
	case strings.Contains(t, "awd") || strings.Contains(t, "all wheel"):
		return string(domain.DrivetrainAWD)
	case strings.Contains(t, "fwd") || strings.Contains(t, "front"):
		return string(domain.DrivetrainFWD)
	case strings.Contains(t, "rwd") || strings.Contains(t, "rear"):
		return string(domain.DrivetrainRWD)
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
