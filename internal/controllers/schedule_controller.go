package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

type ScheduleController struct {
	DB *gorm.DB
}

type scheduleRequest struct {
	Day       string `json:"day" binding:"required"`
	Shift     string `json:"shift"`
	Activity  string `json:"activity" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	TurmaID   uint   `json:"turma_id"`
}

func (s *ScheduleController) Create(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TurmaID != 0 {
		var turma models.Turma
		if err := s.DB.First(&turma, req.TurmaID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "turma not found"})
			return
		}
	}

	schedule := models.Schedule{
		Day:       req.Day,
		Shift:     req.Shift,
		Activity:  req.Activity,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		TurmaID:   req.TurmaID,
	}
	if err := s.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// List returns every schedule entry, or only a turma's entries with ?turma_id=.
func (s *ScheduleController) List(c *gin.Context) {
	q := s.DB.Model(&models.Schedule{}).Order("id ASC")
	if raw := strings.TrimSpace(c.Query("turma_id")); raw != "" {
		turmaID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid turma_id"})
			return
		}
		q = q.Where("turma_id = ?", uint(turmaID))
	}

	schedules := []models.Schedule{}
	if err := q.Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (s *ScheduleController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var schedule models.Schedule
	if err := s.DB.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	schedule.Day = req.Day
	schedule.Shift = req.Shift
	schedule.Activity = req.Activity
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	if err := s.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (s *ScheduleController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var schedule models.Schedule
	if err := s.DB.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.DB.Delete(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
