package services

import (
	"testing"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

func submitInput(turmaID, recordedBy uint, date string, records ...SubmitRecord) SubmitInput {
	return SubmitInput{
		TurmaID:    turmaID,
		Date:       date,
		Label:      "Aula",
		Subject:    "Matemática",
		RecordedBy: recordedBy,
		Records:    records,
	}
}

func TestSubmitValidation(t *testing.T) {
	db := openTestDB(t)
	svc := &AttendanceService{DB: db}
	turma := createTurma(t, db, "3B")
	prof := createUser(t, db, "Carlos", "carlos@test.test", models.RoleProfessor)
	aluno := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)

	tests := []struct {
		name string
		in   SubmitInput
		want Kind
	}{
		{
			name: "bad date",
			in:   submitInput(turma.ID, prof.ID, "17/07/2025", SubmitRecord{StudentID: aluno.ID, Present: true}),
			want: KindInvalidArgument,
		},
		{
			name: "empty records",
			in:   submitInput(turma.ID, prof.ID, "2025-07-17"),
			want: KindInvalidArgument,
		},
		{
			name: "blank label",
			in: SubmitInput{
				TurmaID: turma.ID, Date: "2025-07-17", Label: "  ",
				RecordedBy: prof.ID, Records: []SubmitRecord{{StudentID: aluno.ID}},
			},
			want: KindInvalidArgument,
		},
		{
			name: "unknown turma",
			in:   submitInput(999999, prof.ID, "2025-07-17", SubmitRecord{StudentID: aluno.ID, Present: true}),
			want: KindNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(tt.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != tt.want {
				t.Errorf("kind = %v, want %v", KindOf(err), tt.want)
			}
		})
	}

	// Failed submissions must leave nothing behind.
	var sessions, records int64
	db.Model(&models.AttendanceSession{}).Count(&sessions)
	db.Model(&models.PresenceRecord{}).Count(&records)
	if sessions != 0 || records != 0 {
		t.Errorf("sessions = %d, records = %d after failed submits, want 0/0", sessions, records)
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := &AttendanceService{DB: db}
	turma := createTurma(t, db, "3B")
	prof := createUser(t, db, "Carlos", "carlos@test.test", models.RoleProfessor)
	u1 := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)
	u2 := createUser(t, db, "Bia", "bia@test.test", models.RoleAluno)

	result, err := svc.Submit(submitInput(turma.ID, prof.ID, "2025-03-10",
		SubmitRecord{StudentID: u1.ID, Present: true},
		SubmitRecord{StudentID: u2.ID, Present: false},
	))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.RecordsWritten != 2 {
		t.Errorf("records written = %d, want 2", result.RecordsWritten)
	}

	detail, err := svc.GetSession(turma.ID, "2025-03-10")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if detail == nil {
		t.Fatal("session missing after submit")
	}
	if detail.ID != result.SessionID {
		t.Errorf("session id = %d, want %d", detail.ID, result.SessionID)
	}
	if detail.RecorderName != "Carlos" {
		t.Errorf("recorder name = %q, want Carlos", detail.RecorderName)
	}
	if len(detail.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(detail.Records))
	}
	statuses := map[uint]string{}
	for _, r := range detail.Records {
		statuses[r.StudentID] = r.Status
	}
	if statuses[u1.ID] != models.StatusPresent {
		t.Errorf("u1 status = %q, want PRESENT", statuses[u1.ID])
	}
	if statuses[u2.ID] != models.StatusAbsent {
		t.Errorf("u2 status = %q, want ABSENT", statuses[u2.ID])
	}
}

func TestResubmitReplacesRecords(t *testing.T) {
	db := openTestDB(t)
	svc := &AttendanceService{DB: db}
	turma := createTurma(t, db, "3B")
	prof := createUser(t, db, "Carlos", "carlos@test.test", models.RoleProfessor)
	u1 := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)
	u2 := createUser(t, db, "Bia", "bia@test.test", models.RoleAluno)

	first, err := svc.Submit(submitInput(turma.ID, prof.ID, "2025-07-17",
		SubmitRecord{StudentID: u1.ID, Present: true},
	))
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second, err := svc.Submit(submitInput(turma.ID, prof.ID, "2025-07-17",
		SubmitRecord{StudentID: u1.ID, Present: false},
		SubmitRecord{StudentID: u2.ID, Present: true},
	))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("resubmit created new session %d, want %d", second.SessionID, first.SessionID)
	}

	var records []models.PresenceRecord
	db.Where("session_id = ?", first.SessionID).Find(&records)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (replace, not append)", len(records))
	}
	for _, r := range records {
		if r.StudentID == u1.ID && r.Status != models.StatusAbsent {
			t.Errorf("u1 final status = %q, want ABSENT", r.Status)
		}
	}

	var sessions int64
	db.Model(&models.AttendanceSession{}).
		Where("turma_id = ? AND session_date = ?", turma.ID, "2025-07-17").Count(&sessions)
	if sessions != 1 {
		t.Errorf("sessions = %d, want 1", sessions)
	}
}

func TestSessionUniqueIndex(t *testing.T) {
	db := openTestDB(t)
	turma := createTurma(t, db, "3B")

	first := models.AttendanceSession{TurmaID: turma.ID, SessionDate: "2025-07-17", Label: "Aula", RecordedBy: 1}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	// The loser of a concurrent submit race hits this constraint; Submit maps
	// it to a Conflict.
	dup := models.AttendanceSession{TurmaID: turma.ID, SessionDate: "2025-07-17", Label: "Aula", RecordedBy: 1}
	err := db.Create(&dup).Error
	if err == nil {
		t.Fatal("duplicate (turma, date) insert succeeded")
	}
	if !isUniqueViolation(err) {
		t.Errorf("error not recognized as unique violation: %v", err)
	}
}

func TestGetSessionWhenNoneTaken(t *testing.T) {
	db := openTestDB(t)
	svc := &AttendanceService{DB: db}
	turma := createTurma(t, db, "3B")

	detail, err := svc.GetSession(turma.ID, "2025-07-17")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if detail != nil {
		t.Errorf("detail = %+v, want nil for untaken day", detail)
	}

	records, err := svc.PresenceByDate(turma.ID, "2025-07-17")
	if err != nil {
		t.Fatalf("presence by date: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}

	if _, err := svc.GetSession(999999, "2025-07-17"); KindOf(err) != KindNotFound {
		t.Errorf("unknown turma kind = %v, want KindNotFound", KindOf(err))
	}
}

func TestListSessionsOrder(t *testing.T) {
	db := openTestDB(t)
	svc := &AttendanceService{DB: db}
	turma := createTurma(t, db, "3B")
	prof := createUser(t, db, "Carlos", "carlos@test.test", models.RoleProfessor)
	aluno := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)

	for _, date := range []string{"2025-07-15", "2025-07-17", "2025-07-16"} {
		if _, err := svc.Submit(submitInput(turma.ID, prof.ID, date,
			SubmitRecord{StudentID: aluno.ID, Present: true})); err != nil {
			t.Fatalf("submit %s: %v", date, err)
		}
	}

	sessions, err := svc.ListSessions(turma.ID, true)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(sessions))
	}
	want := []string{"2025-07-17", "2025-07-16", "2025-07-15"}
	for i, s := range sessions {
		if s.SessionDate != want[i] {
			t.Errorf("sessions[%d].date = %s, want %s", i, s.SessionDate, want[i])
		}
	}

	oldest, err := svc.ListSessions(turma.ID, false)
	if err != nil {
		t.Fatalf("list sessions asc: %v", err)
	}
	if oldest[0].SessionDate != "2025-07-15" {
		t.Errorf("ascending first = %s, want 2025-07-15", oldest[0].SessionDate)
	}
}
