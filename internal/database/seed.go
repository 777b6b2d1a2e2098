package database

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/escolavall/escola_backend_v1/internal/config"
	"github.com/escolavall/escola_backend_v1/internal/models"
	"github.com/escolavall/escola_backend_v1/internal/utils"
)

func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := cfg.AdminEmail
	if email == "" {
		email = "admin@escola.local"
	}
	name := cfg.AdminName
	if name == "" {
		name = "Administrador"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "admin123"
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded initial admin:", email)
	return nil
}

// SeedSubjects upserts the canonical subject list used by attendance session tags.
func SeedSubjects(db *gorm.DB) error {
	names := []string{"Matemática", "Português", "História", "Geografia", "Química"}
	for _, name := range names {
		subject := models.Subject{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&subject).Error; err != nil {
			return err
		}
	}
	return nil
}
