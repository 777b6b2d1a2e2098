package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

type ActivityController struct {
	DB *gorm.DB
}

type createActivityRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	TurmaID     uint   `json:"turma_id" binding:"required"`
	UserID      uint   `json:"user_id" binding:"required"`
}

type updateActivityRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func (a *ActivityController) Create(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}
	if !refsExist(c, a.DB, req.TurmaID, req.UserID) {
		return
	}

	activity := models.Activity{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		TurmaID:     req.TurmaID,
		UserID:      req.UserID,
	}
	if err := a.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func (a *ActivityController) List(c *gin.Context) {
	activities := []models.Activity{}
	if err := a.DB.Order("id ASC").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, activities)
}

// Update applies a partial update; at least one field must be present and
// omitted fields keep their stored values.
func (a *ActivityController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == nil && req.Description == nil && req.StartDate == nil && req.EndDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one field must be provided"})
		return
	}

	var activity models.Activity
	if err := a.DB.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		activity.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		activity.EndDate = end
	}

	if err := a.DB.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity updated", "activity": activity})
}

func (a *ActivityController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var activity models.Activity
	if err := a.DB.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := a.DB.Delete(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity removed"})
}

// parseDateRange validates a YYYY-MM-DD pair, responding 400 on bad input.
func parseDateRange(c *gin.Context, startRaw, endRaw string) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// refsExist checks the turma and user FKs, responding 404 when either is
// missing.
func refsExist(c *gin.Context, db *gorm.DB, turmaID, userID uint) bool {
	var turma models.Turma
	if err := db.First(&turma, turmaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "turma or user not found"})
		return false
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "turma or user not found"})
		return false
	}
	return true
}
