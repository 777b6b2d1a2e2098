package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/escolavall/escola_backend_v1/internal/models"
	"github.com/escolavall/escola_backend_v1/internal/services"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	prof   models.User
}

// newTestEnv wires the core controllers the way routes.Register does, with a
// stub auth layer that injects the seeded professor.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
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
		t.Fatalf("migrate: %v", err)
	}

	prof := models.User{Name: "Carlos", Email: "carlos@test.test", Password: "x", Role: models.RoleProfessor}
	if err := db.Create(&prof).Error; err != nil {
		t.Fatalf("create professor: %v", err)
	}

	rosterSvc := &services.RosterService{DB: db}
	attendanceSvc := &services.AttendanceService{DB: db}
	frequencySvc := &services.FrequencyService{DB: db, Roster: rosterSvc}

	rosterCtrl := &RosterController{Roster: rosterSvc}
	attendanceCtrl := &AttendanceController{Attendance: attendanceSvc}
	frequencyCtrl := &FrequencyController{Frequency: frequencySvc}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user", prof) })
	r.POST("/roster", rosterCtrl.Enroll)
	r.DELETE("/roster/:turmaId/:userId", rosterCtrl.Unenroll)
	r.GET("/roster/:turmaId", rosterCtrl.ListMembers)
	r.POST("/attendance", attendanceCtrl.Submit)
	r.GET("/attendance", attendanceCtrl.Query)
	r.GET("/attendance/:turmaId", attendanceCtrl.GetByTurma)
	r.GET("/frequency/:turmaId", frequencyCtrl.ByTurma)

	return &testEnv{router: r, db: db, prof: prof}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedTurmaWithStudent(t *testing.T) (models.Turma, models.User) {
	t.Helper()
	turma := models.Turma{Name: "3B"}
	if err := e.db.Create(&turma).Error; err != nil {
		t.Fatalf("create turma: %v", err)
	}
	aluno := models.User{Name: "Ana", Email: "ana@test.test", Password: "x", Role: models.RoleAluno}
	if err := e.db.Create(&aluno).Error; err != nil {
		t.Fatalf("create aluno: %v", err)
	}
	return turma, aluno
}
