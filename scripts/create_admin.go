// scripts/create_admin.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"attendance/config"
	"attendance/domain"
	"attendance/identity"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Admin", "admin display name")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: create_admin -email <email> -password <password> [-name <name>]")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := config.EnsureDatabase(); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("failed to boot DB: %v", err)
	}

	provider, err := identity.NewLocalProvider(db)
	if err != nil {
		log.Fatalf("failed to init identity provider: %v", err)
	}

	var existing domain.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("User already exists with email:", *email)
		return
	}

	ctx := context.Background()
	externalID, err := provider.CreateIdentity(ctx, *email, *name, *password)
	if err != nil {
		log.Fatalf("failed to create identity: %v", err)
	}

	admin := domain.User{
		ExternalID: externalID,
		Email:      *email,
		Name:       *name,
		Role:       domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		if derr := provider.DeleteIdentity(ctx, externalID); derr != nil {
			log.Printf("failed to roll back identity: %v", derr)
		}
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Println("   Email:", *email)
}
