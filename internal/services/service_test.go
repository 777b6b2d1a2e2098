package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Turma{},
		&models.Enrollment{},
		&models.AttendanceSession{},
		&models.PresenceRecord{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTurma(t *testing.T, db *gorm.DB, name string) models.Turma {
	t.Helper()
	turma := models.Turma{Name: name}
	if err := db.Create(&turma).Error; err != nil {
		t.Fatalf("create turma: %v", err)
	}
	return turma
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func enroll(t *testing.T, db *gorm.DB, turmaID, userID uint) {
	t.Helper()
	svc := &RosterService{DB: db}
	if _, err := svc.Enroll(turmaID, userID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
}
