package controllers

import "github.com/escolavall/escola_backend_v1/internal/models"

func IsValidRole(role string) bool {
	switch role {
	case models.RoleAluno, models.RoleProfessor, models.RoleAdmin:
		return true
	}
	return false
}
