package models

import "time"

// Turma is a school class. Historical attendance is never cascaded away when a
// turma or its roster changes.
type Turma struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Enrollment links a user to a turma. The (turma_id, user_id) pair is unique;
// enroll and unenroll are both idempotent at the service layer.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TurmaID   uint      `json:"turma_id" gorm:"not null;uniqueIndex:idx_enrollment_turma_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_turma_user"`
	CreatedAt time.Time `json:"created_at"`
}
