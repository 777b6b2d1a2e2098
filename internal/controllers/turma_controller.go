package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

type TurmaController struct {
	DB *gorm.DB
}

type createTurmaRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (t *TurmaController) Create(c *gin.Context) {
	var req createTurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turma := models.Turma{Name: req.Name, Description: req.Description}
	if err := t.DB.Create(&turma).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, turma)
}

func (t *TurmaController) List(c *gin.Context) {
	turmas := []models.Turma{}
	if err := t.DB.Order("id ASC").Find(&turmas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, turmas)
}

func (t *TurmaController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var turma models.Turma
	if err := t.DB.First(&turma, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "turma not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, turma)
}

// parseUintParam parses a numeric path parameter, responding 400 on garbage.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(n), true
}
