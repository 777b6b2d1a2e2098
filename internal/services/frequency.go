package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

// FrequencyService derives per-student absence counts from attendance records.
// It holds no state of its own; every call reads through the store.
type FrequencyService struct {
	DB     *gorm.DB
	Roster *RosterService
}

type StudentAbsences struct {
	StudentID   uint   `json:"student_id"`
	StudentName string `json:"name"`
	Absences    int64  `json:"absences"`
}

// ComputeAbsences counts ABSENT records per enrolled student of the turma.
// month, when given as "01".."12", restricts the count to sessions in that
// month of the current year. Cross-year queries are unsupported: the filter is
// month-only by contract with the frontend.
func (s *FrequencyService) ComputeAbsences(turmaID uint, month string) ([]StudentAbsences, error) {
	if month != "" && !validMonth(month) {
		return nil, invalidArgument("month must be 01..12")
	}

	// Iteration is driven by the roster, so students with no absence records
	// still appear with a zero count and stray records of unenrolled students
	// are excluded.
	members, err := s.Roster.ListMembers(turmaID, models.RoleAluno)
	if err != nil {
		return nil, err
	}

	counts := map[uint]int64{}
	q := s.DB.Table("presence_records AS p").
		Select("p.student_id, COUNT(*) AS total").
		Joins("JOIN attendance_sessions s ON s.id = p.session_id").
		Where("p.turma_id = ? AND p.status = ?", turmaID, models.StatusAbsent)
	if month != "" {
		q = q.Where("s.session_date LIKE ?", fmt.Sprintf("%d-%s-%%", time.Now().Year(), month))
	}
	var rows []struct {
		StudentID uint
		Total     int64
	}
	if err := q.Group("p.student_id").Scan(&rows).Error; err != nil {
		return nil, internal("failed to count absences", err)
	}
	for _, r := range rows {
		counts[r.StudentID] = r.Total
	}

	out := make([]StudentAbsences, 0, len(members))
	for _, m := range members {
		out = append(out, StudentAbsences{
			StudentID:   m.UserID,
			StudentName: m.Name,
			Absences:    counts[m.UserID],
		})
	}
	return out, nil
}

func validMonth(month string) bool {
	if len(month) != 2 {
		return false
	}
	for _, mm := range [12]string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"} {
		if month == mm {
			return true
		}
	}
	return false
}
