package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/driveline/driveline/internal/adapter/persistence"
	"github.com/driveline/driveline/internal/config"
	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/service/password"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	adminRepo := persistence.NewPostgresAdminRepository(db)

	// Credentials from command line args or defaults
	email := "admin@driveline.local"
	adminPassword := "admin123"
	name := "Administrator"
	role := "admin"

	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		adminPassword = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	passwordService := password.NewBcryptService(cfg.Security.BcryptCost)
	hashed, err := passwordService.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := domain.NewAdmin(email, name, hashed, role)
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin created successfully\n")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Name:  %s\n", name)
	fmt.Printf("Role:  %s\n", role)
	fmt.Printf("ID:    %s\n", admin.ID)
}
