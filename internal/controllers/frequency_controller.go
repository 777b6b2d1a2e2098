package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escolavall/escola_backend_v1/internal/services"
)

type FrequencyController struct {
	Frequency *services.FrequencyService
}

// ByTurma serves GET /frequency/:turmaId?month=MM with one entry per enrolled
// student, zero-absence students included.
func (fc *FrequencyController) ByTurma(c *gin.Context) {
	turmaID, ok := parseUintParam(c, "turmaId")
	if !ok {
		return
	}
	month := strings.TrimSpace(c.Query("month"))

	rows, err := fc.Frequency.ComputeAbsences(turmaID, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
