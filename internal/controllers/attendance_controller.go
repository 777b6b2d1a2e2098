package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escolavall/escola_backend_v1/internal/models"
	"github.com/escolavall/escola_backend_v1/internal/services"
)

type AttendanceController struct {
	Attendance *services.AttendanceService
}

type submitAttendanceRequest struct {
	TurmaID uint                    `json:"turma_id" binding:"required"`
	Date    string                  `json:"date" binding:"required"`
	Label   string                  `json:"label" binding:"required"`
	Subject string                  `json:"subject"`
	Records []services.SubmitRecord `json:"records"`
}

// Submit records a day's attendance. The recorder is the authenticated user,
// never a field of the request body.
func (ac *AttendanceController) Submit(c *gin.Context) {
	var req submitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uVal, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user := uVal.(models.User)

	result, err := ac.Attendance.Submit(services.SubmitInput{
		TurmaID:    req.TurmaID,
		Date:       req.Date,
		Label:      req.Label,
		Subject:    req.Subject,
		RecordedBy: user.ID,
		Records:    req.Records,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetByTurma serves GET /attendance/:turmaId. With ?date= it returns that
// day's session detail (an empty object when attendance was not taken);
// without a date it lists the turma's sessions newest first.
func (ac *AttendanceController) GetByTurma(c *gin.Context) {
	turmaID, ok := parseUintParam(c, "turmaId")
	if !ok {
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		newestFirst := true
		if v := strings.TrimSpace(c.Query("order")); strings.EqualFold(v, "asc") {
			newestFirst = false
		}
		sessions, err := ac.Attendance.ListSessions(turmaID, newestFirst)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessions)
		return
	}

	detail, err := ac.Attendance.GetSession(turmaID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if detail == nil {
		// No attendance taken that day; a normal, queryable state.
		c.JSON(http.StatusOK, gin.H{"session": nil, "records": []services.PresenceEntry{}})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Query serves GET /attendance?turma_id=&date= and returns the raw presence
// rows for that exact session, or an empty list when none exists.
func (ac *AttendanceController) Query(c *gin.Context) {
	turmaRaw := strings.TrimSpace(c.Query("turma_id"))
	date := strings.TrimSpace(c.Query("date"))
	if turmaRaw == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "turma_id and date are required"})
		return
	}
	turmaID, err := strconv.ParseUint(turmaRaw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid turma_id"})
		return
	}

	records, svcErr := ac.Attendance.PresenceByDate(uint(turmaID), date)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, records)
}
