package database

import (
	"event_manager/config"
	"event_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData creates the initial admin account when the users table is empty.
func SeedData(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	password := config.ConfigOr("ADMIN_PASSWORD", "changeme")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("failed to hash admin password")
	}

	admin := model.User{
		Name:     "Administrator",
		Email:    config.ConfigOr("ADMIN_EMAIL", "admin@example.com"),
		Password: string(hash),
		IsAdmin:  true,
		IsActive: true,
	}
	db.Create(&admin)
}
