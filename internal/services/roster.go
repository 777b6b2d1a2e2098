package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

// RosterService owns turma membership. Enroll and Unenroll are idempotent so
// that client retries after a lost response never duplicate membership or fail
// on a redundant delete.
type RosterService struct {
	DB *gorm.DB
}

type Member struct {
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Enroll adds userID to turmaID. Returns true when the pair already existed.
func (s *RosterService) Enroll(turmaID, userID uint) (alreadyEnrolled bool, err error) {
	var turma models.Turma
	if err := s.DB.First(&turma, turmaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, notFound("turma not found")
		}
		return false, internal("failed to load turma", err)
	}
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, notFound("user not found")
		}
		return false, internal("failed to load user", err)
	}

	rec := models.Enrollment{TurmaID: turmaID, UserID: userID}
	res := s.DB.Where("turma_id = ? AND user_id = ?", turmaID, userID).FirstOrCreate(&rec)
	if res.Error != nil {
		// A concurrent enroll of the same pair can slip between the lookup and
		// the insert; the unique index makes that a harmless repeat.
		if isUniqueViolation(res.Error) {
			return true, nil
		}
		return false, internal("failed to enroll", res.Error)
	}
	return res.RowsAffected == 0, nil
}

// Unenroll removes the pair. Deleting a non-existent enrollment succeeds.
func (s *RosterService) Unenroll(turmaID, userID uint) error {
	if err := s.DB.Where("turma_id = ? AND user_id = ?", turmaID, userID).
		Delete(&models.Enrollment{}).Error; err != nil {
		return internal("failed to unenroll", err)
	}
	return nil
}

// ListMembers returns the users enrolled in turmaID in enrollment order,
// optionally filtered to a single role.
func (s *RosterService) ListMembers(turmaID uint, roleFilter string) ([]Member, error) {
	var turma models.Turma
	if err := s.DB.First(&turma, turmaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("turma not found")
		}
		return nil, internal("failed to load turma", err)
	}

	q := s.DB.Table("enrollments AS e").
		Select("u.id AS user_id, u.name, u.email, u.role, e.created_at AS enrolled_at").
		Joins("JOIN users u ON u.id = e.user_id").
		Where("e.turma_id = ?", turmaID).
		Order("e.id ASC")
	if roleFilter != "" {
		q = q.Where("u.role = ?", roleFilter)
	}

	members := []Member{}
	if err := q.Scan(&members).Error; err != nil {
		return nil, internal("failed to list members", err)
	}
	return members, nil
}
