package models

import "time"

type Schedule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Day       string    `json:"day" gorm:"not null"` // weekday name
	Shift     string    `json:"shift"`               // morning/afternoon/evening
	Activity  string    `json:"activity" gorm:"not null"`
	StartTime string    `json:"start_time" gorm:"size:5"` // HH:MM
	EndTime   string    `json:"end_time" gorm:"size:5"`
	TurmaID   uint      `json:"turma_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
