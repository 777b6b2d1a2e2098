package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escolavall/escola_backend_v1/internal/services"
)

type RosterController struct {
	Roster *services.RosterService
}

type enrollRequest struct {
	TurmaID uint `json:"turma_id" binding:"required"`
	UserID  uint `json:"user_id" binding:"required"`
}

// Enroll adds a user to a turma. Re-enrolling an existing member is a 200
// no-op so client retries stay safe.
func (rc *RosterController) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	already, err := rc.Roster.Enroll(req.TurmaID, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if already {
		c.JSON(http.StatusOK, gin.H{"message": "already enrolled"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "enrolled"})
}

func (rc *RosterController) Unenroll(c *gin.Context) {
	turmaID, ok := parseUintParam(c, "turmaId")
	if !ok {
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	if err := rc.Roster.Unenroll(turmaID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unenrolled"})
}

func (rc *RosterController) ListMembers(c *gin.Context) {
	turmaID, ok := parseUintParam(c, "turmaId")
	if !ok {
		return
	}
	role := strings.TrimSpace(c.Query("role"))
	if role != "" && !IsValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	members, err := rc.Roster.ListMembers(turmaID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
