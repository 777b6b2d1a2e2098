package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
)

type UserController struct {
	DB *gorm.DB
}

type userView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// List returns all users, optionally filtered by role. Password hashes never
// leave this layer.
func (u *UserController) List(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))
	if role != "" && !IsValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	q := u.DB.Model(&models.User{}).Select("id, name, email, role").Order("id ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}

	users := []userView{}
	if err := q.Scan(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}
