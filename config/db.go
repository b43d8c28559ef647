package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"attendance/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// GetDatabaseURL builds the database connection string.
func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// BootDB initializes the database connection and runs migrations.
func BootDB() (*gorm.DB, error) {
	url := GetDatabaseURL()
	var err error

	db, err = gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return db, err
	}

	fmt.Println("DB initialized")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	// Pastikan ENUM sudah dibuat sebelum digunakan
	if err := db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'role_enum') THEN
			CREATE TYPE role_enum AS ENUM ('USER', 'ADMIN');
		END IF;
	END $$`).Error; err != nil {
		return fmt.Errorf("failed to create role ENUM: %w", err)
	}

	if err := db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'attendance_status_enum') THEN
			CREATE TYPE attendance_status_enum AS ENUM ('ON_TIME', 'LATE', 'ON_LEAVE', 'ABSENT');
		END IF;
	END $$`).Error; err != nil {
		return fmt.Errorf("failed to create attendance status ENUM: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.AttendanceRecord{},
		&domain.AttendanceRequest{},
		&domain.Notification{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	// Store-enforced duplicate-day invariants; repositories surface
	// violations as conflicts.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_records_user_date
		ON attendance_records (user_id, date)`).Error; err != nil {
		return fmt.Errorf("failed to create attendance uniqueness index: %w", err)
	}

	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_requests_student_date_pending
		ON attendance_requests (student_id, requested_date) WHERE status = 'PENDING'`).Error; err != nil {
		return fmt.Errorf("failed to create pending request uniqueness index: %w", err)
	}

	return nil
}

// SeedAdmin creates the default admin account when no admin exists yet.
// The credential is provisioned with the identity provider first; the local
// row only stores the ref it returns.
func SeedAdmin(db *gorm.DB, provider domain.IdentityProvider) error {
	var existingAdmin domain.User
	err := db.Where("role = ?", domain.RoleAdmin).First(&existingAdmin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminName := os.Getenv("ADMIN_NAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		fmt.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping default admin seed")
		return nil
	}

	fmt.Println("Creating default admin account....")
	externalID, err := provider.CreateIdentity(context.Background(), adminEmail, adminName, adminPassword)
	if err != nil {
		return fmt.Errorf("could not provision admin identity: %w", err)
	}

	admin := domain.User{
		ExternalID: externalID,
		Email:      adminEmail,
		Name:       adminName,
		Role:       domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		if derr := provider.DeleteIdentity(context.Background(), externalID); derr != nil {
			fmt.Printf("failed to roll back admin identity: %v\n", derr)
		}
		return err
	}

	fmt.Println("Admin account created")
	return nil
}
