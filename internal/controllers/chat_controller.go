package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escolavall/escola_backend_v1/internal/models"
	"github.com/escolavall/escola_backend_v1/internal/ws"
)

type ChatController struct {
	DB  *gorm.DB
	Hub *ws.ChatHub
}

type createChatRequest struct {
	Title        string `json:"title"`
	Participants []uint `json:"participants" binding:"required"`
}

type directChatRequest struct {
	User1 uint `json:"user1" binding:"required"`
	User2 uint `json:"user2" binding:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type chatView struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Participants []userView       `json:"participants"`
	LastMessage  *chatMessageView `json:"last_message,omitempty"`
}

type chatMessageView struct {
	ID         string    `json:"id"`
	ChatID     uint      `json:"chat_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SenderRole string    `json:"sender_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Create opens a chat with an explicit participant list.
func (cc *ChatController) Create(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Participants) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least 2 participants are required"})
		return
	}

	var users []models.User
	if err := cc.DB.Where("id IN ?", req.Participants).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(users) != len(req.Participants) {
		c.JSON(http.StatusNotFound, gin.H{"error": "one or more participants not found"})
		return
	}

	chat := models.Chat{Title: req.Title}
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		for _, id := range req.Participants {
			if err := tx.Create(&models.ChatParticipant{ChatID: chat.ID, UserID: id}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chat_id": chat.ID, "title": chat.Title})
}

// Direct finds the two-party chat between user1 and user2, creating it when
// missing, and returns its id.
func (cc *ChatController) Direct(c *gin.Context) {
	var req directChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var chatID uint
	err := cc.DB.Table("chat_participants AS p1").
		Select("p1.chat_id").
		Joins("JOIN chat_participants p2 ON p2.chat_id = p1.chat_id AND p2.user_id = ?", req.User2).
		Joins("JOIN (SELECT chat_id, COUNT(*) AS n FROM chat_participants GROUP BY chat_id) sizes ON sizes.chat_id = p1.chat_id AND sizes.n = 2").
		Where("p1.user_id = ?", req.User1).
		Limit(1).
		Scan(&chatID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if chatID == 0 {
		chat := models.Chat{}
		err := cc.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&chat).Error; err != nil {
				return err
			}
			for _, id := range []uint{req.User1, req.User2} {
				if err := tx.Create(&models.ChatParticipant{ChatID: chat.ID, UserID: id}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		chatID = chat.ID
	}
	c.JSON(http.StatusOK, gin.H{"chat_id": chatID})
}

// ListForUser returns the chats a user participates in, each with its
// participants and most recent message.
func (cc *ChatController) ListForUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}

	var chats []models.Chat
	err := cc.DB.
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id AND cp.user_id = ?", userID).
		Order("chats.id ASC").
		Find(&chats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]chatView, 0, len(chats))
	for _, chat := range chats {
		view := chatView{ID: chat.ID, Title: chat.Title, Participants: []userView{}}

		if err := cc.DB.Table("chat_participants AS cp").
			Select("u.id, u.name, u.email, u.role").
			Joins("JOIN users u ON u.id = cp.user_id").
			Where("cp.chat_id = ?", chat.ID).
			Order("cp.id ASC").
			Scan(&view.Participants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var last models.ChatMessage
		if err := cc.DB.Where("chat_id = ?", chat.ID).Order("id DESC").First(&last).Error; err == nil {
			view.LastMessage = cc.messageView(last)
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, out)
}

// Messages returns a chat's messages oldest first.
func (cc *ChatController) Messages(c *gin.Context) {
	chatID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var chat models.Chat
	if err := cc.DB.First(&chat, chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var messages []models.ChatMessage
	if err := cc.DB.Where("chat_id = ?", chatID).Order("id ASC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]chatMessageView, 0, len(messages))
	for _, m := range messages {
		if v := cc.messageView(m); v != nil {
			out = append(out, *v)
		}
	}
	c.JSON(http.StatusOK, out)
}

// SendMessage persists a message from the authenticated user and pushes it to
// the other participants' live connections.
func (cc *ChatController) SendMessage(c *gin.Context) {
	chatID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uVal, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	sender := uVal.(models.User)

	var membership models.ChatParticipant
	if err := cc.DB.Where("chat_id = ? AND user_id = ?", chatID, sender.ID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not a participant of this chat"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := models.ChatMessage{ChatID: chatID, SenderID: sender.ID, Text: req.Text}
	if err := cc.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	view := chatMessageView{
		ID:         message.PublicID,
		ChatID:     message.ChatID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		SenderRole: sender.Role,
		Text:       message.Text,
		CreatedAt:  message.CreatedAt,
	}

	var participantIDs []uint
	if err := cc.DB.Model(&models.ChatParticipant{}).
		Where("chat_id = ? AND user_id <> ?", chatID, sender.ID).
		Pluck("user_id", &participantIDs).Error; err == nil {
		cc.Hub.Notify(participantIDs, ws.ChatEvent{
			Type:       "message",
			ChatID:     chatID,
			SenderID:   sender.ID,
			SenderName: sender.Name,
			Text:       message.Text,
			SentAt:     message.CreatedAt,
		})
	}

	c.JSON(http.StatusCreated, view)
}

func (cc *ChatController) messageView(m models.ChatMessage) *chatMessageView {
	var sender models.User
	if err := cc.DB.First(&sender, m.SenderID).Error; err != nil {
		return nil
	}
	return &chatMessageView{
		ID:         m.PublicID,
		ChatID:     m.ChatID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		SenderRole: sender.Role,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}
