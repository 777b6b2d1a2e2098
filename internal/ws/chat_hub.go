package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// ChatEvent is pushed to a chat participant's live connection when a new
// message lands in one of their chats.
type ChatEvent struct {
	Type       string    `json:"type"`
	ChatID     uint      `json:"chat_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

type chatNotification struct {
	userIDs []uint
	payload []byte
}

type ChatHub struct {
	register   chan *chatClient
	unregister chan *chatClient
	notify     chan chatNotification
	clients    map[uint]*chatClient
}

func NewChatHub() *ChatHub {
	return &ChatHub{
		register:   make(chan *chatClient),
		unregister: make(chan *chatClient),
		notify:     make(chan chatNotification, 256),
		clients:    make(map[uint]*chatClient),
	}
}

func (h *ChatHub) Run() {
	for {
		select {
		case client := <-h.register:
			if existing, ok := h.clients[client.userID]; ok {
				existing.conn.Close()
			}
			h.clients[client.userID] = client
		case client := <-h.unregister:
			if stored, ok := h.clients[client.userID]; ok && stored == client {
				delete(h.clients, client.userID)
			}
		case msg := <-h.notify:
			for _, id := range msg.userIDs {
				client, ok := h.clients[id]
				if !ok {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					client.conn.Close()
					delete(h.clients, id)
				}
			}
		}
	}
}

// Notify fans the event out to every listed user that currently holds a live
// connection. Offline users simply miss the push; they catch up over REST.
func (h *ChatHub) Notify(userIDs []uint, event ChatEvent) {
	if h == nil || len(userIDs) == 0 {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.notify <- chatNotification{userIDs: userIDs, payload: data}
}

type chatClient struct {
	hub    *ChatHub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

func newChatClient(hub *ChatHub, conn *websocket.Conn, userID uint) *chatClient {
	return &chatClient{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
	}
}

func (c *chatClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *chatClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
