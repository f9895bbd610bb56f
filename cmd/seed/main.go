package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveline/driveline/internal/adapter/persistence"
	"github.com/driveline/driveline/internal/config"
	"github.com/driveline/driveline/internal/domain"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	email := getenvDefault("SEED_ADMIN_EMAIL", "demo@driveline.local")
	password := getenvDefault("SEED_ADMIN_PASSWORD", "Demo1234!")

	db, err := sql.Open("postgres", cfg.GetDatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	adminID, err := seedAdmin(db, email, password)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("Seeded admin: email=%s id=%s\n", email, adminID)

	carRepo := persistence.NewPostgresCarRepository(db)
	logRepo := persistence.NewPostgresLogRepository(db)

	for _, car := range sampleCars() {
		if err := carRepo.Create(ctx, car); err != nil {
			log.Fatalf("failed to seed car %s %s: %v", car.Make, car.Model, err)
		}
		entry := domain.NewInventoryLog(car.ID, adminID, domain.ActionCreate, nil,
			fmt.Sprintf("Added %d %s %s to inventory", car.Year, car.Make, car.Model))
		if err := logRepo.Create(ctx, entry); err != nil {
			log.Fatalf("failed to seed log for %s: %v", car.ID, err)
		}
		fmt.Printf("Seeded car: %d %s %s (%s)\n", car.Year, car.Make, car.Model, car.Status)
	}
}

func seedAdmin(db *sql.DB, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}

	admin := domain.NewAdmin(email, "Demo Admin", string(hash), "admin")

	// Upsert by email so reruns refresh the demo credentials
	query := `
	INSERT INTO admins (id, email, name, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (email) DO UPDATE SET
	  password_hash = EXCLUDED.password_hash,
	  updated_at = EXCLUDED.updated_at
	RETURNING id
	`

	var id string
	err = db.QueryRow(query, admin.ID, admin.Email, admin.Name, admin.PasswordHash,
		admin.Role, admin.CreatedAt, admin.UpdatedAt).Scan(&id)
	return id, err
}

func sampleCars() []*domain.Car {
	available := func(make, model string, year int, price, cost float64) *domain.Car {
		car := domain.NewCar(make, model, year, price)
		car.CostPrice = &cost
		car.Status = domain.CarStatusAvailable
		car.Location = "Main Lot"
		return car
	}

	camry := available("Toyota", "Camry", 2021, 30000, 20000)
	recon := 1000.0
	camry.ReconditioningCost = &recon

	civic := available("Honda", "Civic", 2020, 25000, 15000)
	civic.Status = domain.CarStatusSold
	civic.Sold = true

	rav4 := available("Toyota", "RAV4", 2022, 40000, 35000)
	m3 := available("BMW", "M3", 2019, 62000, 51000)
	m3.Status = domain.CarStatusReserved

	elantra := domain.NewCar("Hyundai", "Elantra", 2023, 24000)
	elantra.Location = "Back Lot"

	return []*domain.Car{camry, civic, rav4, m3, elantra}
}

func getenvDefault(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
