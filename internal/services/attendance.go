package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

const dateLayout = "2006-01-02"

// AttendanceService owns attendance sessions and their presence records.
// Submitting the same (turma, date) twice replaces the day's records instead of
// appending; the delete and the inserts run in one transaction so an aborted
// submission leaves no partial state.
type AttendanceService struct {
	DB *gorm.DB
}

type SubmitRecord struct {
	StudentID uint `json:"student_id" binding:"required"`
	Present   bool `json:"present"`
}

type SubmitInput struct {
	TurmaID    uint
	Date       string // YYYY-MM-DD
	Label      string
	Subject    string
	RecordedBy uint
	Records    []SubmitRecord
}

type SubmitResult struct {
	SessionID      uint `json:"session_id"`
	RecordsWritten int  `json:"records_written"`
}

type SessionSummary struct {
	ID           uint   `json:"id"`
	SessionDate  string `json:"session_date"`
	Label        string `json:"label"`
	Subject      string `json:"subject,omitempty"`
	RecordedBy   uint   `json:"recorded_by"`
	RecorderName string `json:"recorder_name"`
}

type SessionDetail struct {
	SessionSummary
	Records []PresenceEntry `json:"records"`
}

type PresenceEntry struct {
	StudentID uint   `json:"student_id"`
	Status    string `json:"status"`
}

// Submit records (or re-records) attendance for a turma on a calendar date.
func (s *AttendanceService) Submit(in SubmitInput) (*SubmitResult, error) {
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, invalidArgument("date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(in.Label) == "" {
		return nil, invalidArgument("label is required")
	}
	if len(in.Records) == 0 {
		return nil, invalidArgument("records must not be empty")
	}

	var turma models.Turma
	if err := s.DB.First(&turma, in.TurmaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("turma not found")
		}
		return nil, internal("failed to load turma", err)
	}

	var result SubmitResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.AttendanceSession
		err := tx.Where("turma_id = ? AND session_date = ?", in.TurmaID, in.Date).
			First(&session).Error
		switch {
		case err == nil:
			// Resubmission: replace the day's records, keep the session row.
			if err := tx.Where("session_id = ?", session.ID).
				Delete(&models.PresenceRecord{}).Error; err != nil {
				return internal("failed to clear previous records", err)
			}
			session.Label = strings.TrimSpace(in.Label)
			session.Subject = strings.TrimSpace(in.Subject)
			session.RecordedBy = in.RecordedBy
			if err := tx.Save(&session).Error; err != nil {
				return internal("failed to update session", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			session = models.AttendanceSession{
				TurmaID:     in.TurmaID,
				SessionDate: in.Date,
				Label:       strings.TrimSpace(in.Label),
				Subject:     strings.TrimSpace(in.Subject),
				RecordedBy:  in.RecordedBy,
			}
			if err := tx.Create(&session).Error; err != nil {
				if isUniqueViolation(err) {
					return conflict("attendance for this turma and date was submitted concurrently")
				}
				return internal("failed to create session", err)
			}
		default:
			return internal("failed to look up session", err)
		}

		records := make([]models.PresenceRecord, 0, len(in.Records))
		for _, r := range in.Records {
			status := models.StatusAbsent
			if r.Present {
				status = models.StatusPresent
			}
			records = append(records, models.PresenceRecord{
				SessionID: session.ID,
				StudentID: r.StudentID,
				TurmaID:   in.TurmaID,
				Status:    status,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return internal("failed to write presence records", err)
		}

		result = SubmitResult{SessionID: session.ID, RecordsWritten: len(records)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSession returns the session for (turmaID, date) with its records, or nil
// when attendance was not taken that day. "Not taken yet" is a valid state,
// not an error.
func (s *AttendanceService) GetSession(turmaID uint, date string) (*SessionDetail, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, invalidArgument("date must be YYYY-MM-DD")
	}
	if err := s.turmaExists(turmaID); err != nil {
		return nil, err
	}

	var session models.AttendanceSession
	err := s.DB.Where("turma_id = ? AND session_date = ?", turmaID, date).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internal("failed to look up session", err)
	}

	detail := SessionDetail{SessionSummary: s.summarize(session), Records: []PresenceEntry{}}
	var records []models.PresenceRecord
	if err := s.DB.Where("session_id = ?", session.ID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, internal("failed to load presence records", err)
	}
	for _, r := range records {
		detail.Records = append(detail.Records, PresenceEntry{StudentID: r.StudentID, Status: r.Status})
	}
	return &detail, nil
}

// ListSessions returns the turma's sessions, newest first by default.
func (s *AttendanceService) ListSessions(turmaID uint, newestFirst bool) ([]SessionSummary, error) {
	if err := s.turmaExists(turmaID); err != nil {
		return nil, err
	}

	order := "s.session_date DESC, s.id DESC"
	if !newestFirst {
		order = "s.session_date ASC, s.id ASC"
	}
	rows := []SessionSummary{}
	err := s.DB.Table("attendance_sessions AS s").
		Select("s.id, s.session_date, s.label, s.subject, s.recorded_by, u.name AS recorder_name").
		Joins("LEFT JOIN users u ON u.id = s.recorded_by").
		Where("s.turma_id = ?", turmaID).
		Order(order).
		Scan(&rows).Error
	if err != nil {
		return nil, internal("failed to list sessions", err)
	}
	return rows, nil
}

// PresenceByDate returns the raw presence rows for the turma's session on date,
// or an empty slice when no attendance was taken that day.
func (s *AttendanceService) PresenceByDate(turmaID uint, date string) ([]models.PresenceRecord, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, invalidArgument("date must be YYYY-MM-DD")
	}
	if err := s.turmaExists(turmaID); err != nil {
		return nil, err
	}

	var session models.AttendanceSession
	err := s.DB.Where("turma_id = ? AND session_date = ?", turmaID, date).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.PresenceRecord{}, nil
	}
	if err != nil {
		return nil, internal("failed to look up session", err)
	}

	records := []models.PresenceRecord{}
	if err := s.DB.Where("session_id = ?", session.ID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, internal("failed to load presence records", err)
	}
	return records, nil
}

func (s *AttendanceService) turmaExists(turmaID uint) error {
	var turma models.Turma
	if err := s.DB.First(&turma, turmaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("turma not found")
		}
		return internal("failed to load turma", err)
	}
	return nil
}

func (s *AttendanceService) summarize(session models.AttendanceSession) SessionSummary {
	summary := SessionSummary{
		ID:          session.ID,
		SessionDate: session.SessionDate,
		Label:       session.Label,
		Subject:     session.Subject,
		RecordedBy:  session.RecordedBy,
	}
	var recorder models.User
	if err := s.DB.First(&recorder, session.RecordedBy).Error; err == nil {
		summary.RecorderName = recorder.Name
	}
	return summary
}
