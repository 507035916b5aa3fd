// Command admin_seed creates the initial admin account. The topup and agent
// approval workflows need at least one admin to exist before anything can be
// decided.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"swiftsub/internal/config"
	"swiftsub/internal/models"
	"swiftsub/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")
	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	ctx := context.Background()
	users := repositories.NewUserRepository(repositories.DB)

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		log.Println("admin user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		Email:    adminEmail,
		Password: string(hash),
		Name:     "Administrator",
		Phone:    adminPhone,
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			log.Println("admin user already exists")
			return
		}
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Println("admin account created")
}
