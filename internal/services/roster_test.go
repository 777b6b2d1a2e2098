package services

import (
	"testing"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

func TestEnrollIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := &RosterService{DB: db}
	turma := createTurma(t, db, "3B")
	user := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)

	already, err := svc.Enroll(turma.ID, user.ID)
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if already {
		t.Error("first enroll reported already enrolled")
	}

	already, err = svc.Enroll(turma.ID, user.ID)
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if !already {
		t.Error("second enroll did not report already enrolled")
	}

	var count int64
	db.Model(&models.Enrollment{}).Where("turma_id = ? AND user_id = ?", turma.ID, user.ID).Count(&count)
	if count != 1 {
		t.Errorf("enrollment rows = %d, want 1", count)
	}
}

func TestEnrollUnknownRefs(t *testing.T) {
	db := openTestDB(t)
	svc := &RosterService{DB: db}
	turma := createTurma(t, db, "3B")
	user := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)

	tests := []struct {
		name    string
		turmaID uint
		userID  uint
	}{
		{name: "unknown turma", turmaID: 999999, userID: user.ID},
		{name: "unknown user", turmaID: turma.ID, userID: 999999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Enroll(tt.turmaID, tt.userID)
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != KindNotFound {
				t.Errorf("kind = %v, want KindNotFound", KindOf(err))
			}
		})
	}
}

func TestUnenrollIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := &RosterService{DB: db}
	turma := createTurma(t, db, "3B")
	user := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)
	enroll(t, db, turma.ID, user.ID)

	if err := svc.Unenroll(turma.ID, user.ID); err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	// A second unenroll of the same pair (or of a pair that never existed)
	// must also succeed.
	if err := svc.Unenroll(turma.ID, user.ID); err != nil {
		t.Fatalf("redundant unenroll: %v", err)
	}

	var count int64
	db.Model(&models.Enrollment{}).Where("turma_id = ?", turma.ID).Count(&count)
	if count != 0 {
		t.Errorf("enrollment rows = %d, want 0", count)
	}
}

func TestListMembersOrderAndFilter(t *testing.T) {
	db := openTestDB(t)
	svc := &RosterService{DB: db}
	turma := createTurma(t, db, "3B")
	prof := createUser(t, db, "Carlos", "carlos@test.test", models.RoleProfessor)
	ana := createUser(t, db, "Ana", "ana@test.test", models.RoleAluno)
	bia := createUser(t, db, "Bia", "bia@test.test", models.RoleAluno)

	enroll(t, db, turma.ID, prof.ID)
	enroll(t, db, turma.ID, bia.ID)
	enroll(t, db, turma.ID, ana.ID)

	members, err := svc.ListMembers(turma.ID, "")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("members = %d, want 3", len(members))
	}
	// Insertion order, not name order.
	if members[0].UserID != prof.ID || members[1].UserID != bia.ID || members[2].UserID != ana.ID {
		t.Errorf("unexpected order: %v %v %v", members[0].UserID, members[1].UserID, members[2].UserID)
	}

	alunos, err := svc.ListMembers(turma.ID, models.RoleAluno)
	if err != nil {
		t.Fatalf("list alunos: %v", err)
	}
	if len(alunos) != 2 {
		t.Fatalf("alunos = %d, want 2", len(alunos))
	}
	for _, m := range alunos {
		if m.Role != models.RoleAluno {
			t.Errorf("role = %q, want aluno", m.Role)
		}
	}

	if _, err := svc.ListMembers(999999, ""); KindOf(err) != KindNotFound {
		t.Errorf("unknown turma kind = %v, want KindNotFound", KindOf(err))
	}
}
