package models

import "time"

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
)

// AttendanceSession is one taking-of-attendance event for a turma on a calendar
// date. The (turma_id, session_date) unique index is the safety net for two
// concurrent submissions of the same day: the loser gets a conflict instead of
// creating a duplicate session.
type AttendanceSession struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TurmaID     uint      `json:"turma_id" gorm:"not null;uniqueIndex:idx_session_turma_date"`
	SessionDate string    `json:"session_date" gorm:"size:10;not null;uniqueIndex:idx_session_turma_date"` // YYYY-MM-DD
	Label       string    `json:"label" gorm:"not null"`
	Subject     string    `json:"subject,omitempty"`
	RecordedBy  uint      `json:"recorded_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PresenceRecord is one student's status within a session. Resubmitting a day's
// attendance deletes the session's records and recreates them in one
// transaction, which keeps (session_id, student_id) unique.
type PresenceRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID uint      `json:"session_id" gorm:"not null;index;uniqueIndex:idx_presence_session_student"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_presence_session_student"`
	TurmaID   uint      `json:"turma_id" gorm:"not null;index"` // denormalized for frequency queries
	Status    string    `json:"status" gorm:"size:10;not null"`
	CreatedAt time.Time `json:"created_at"`
}
