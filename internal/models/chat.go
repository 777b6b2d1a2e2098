package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatParticipant struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	ChatID uint `json:"chat_id" gorm:"not null;uniqueIndex:idx_chat_participant"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_chat_participant"`
}

type ChatMessage struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	PublicID  string    `json:"id" gorm:"type:uuid;uniqueIndex"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	SenderID  uint      `json:"sender_id" gorm:"not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.PublicID == "" {
		m.PublicID = uuid.NewString()
	}
	return nil
}
