package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"carelink-backend/internal/chat/usecase"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

// OpenRoomRequest represents the request body for opening a room
type OpenRoomRequest struct {
	ConsultantID string `json:"consultant_id" binding:"required"`
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Content       string `json:"content"`
	AttachmentURL string `json:"attachment_url"`
}

// OpenRoom handles POST /api/chat/rooms
func (h *ChatHandler) OpenRoom(c *gin.Context) {
	userID := c.GetString("userID")

	var req OpenRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.chatUsecase.OpenRoomWith(userID, req.ConsultantID)
	if err != nil {
		if errors.Is(err, usecase.ErrSelfRoom) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, room)
}

// ListRooms handles GET /api/chat/rooms
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID := c.GetString("userID")

	rooms, err := h.chatUsecase.ListRooms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// ListMessages handles GET /api/chat/rooms/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := c.GetString("userID")
	roomID := c.Param("id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, total, err := h.chatUsecase.ListMessages(userID, roomID, limit, offset)
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
	})
}

// SendMessage handles POST /api/chat/rooms/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.GetString("userID")
	roomID := c.Param("id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.chatUsecase.SendMessage(c.Request.Context(), userID, roomID, req.Content, req.AttachmentURL)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// EnterRoom handles POST /api/chat/rooms/:id/open
func (h *ChatHandler) EnterRoom(c *gin.Context) {
	userID := c.GetString("userID")
	roomID := c.Param("id")

	if err := h.chatUsecase.EnterRoom(userID, roomID); err != nil {
		h.writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room opened"})
}

// LeaveRoom handles POST /api/chat/rooms/close
func (h *ChatHandler) LeaveRoom(c *gin.Context) {
	userID := c.GetString("userID")
	h.chatUsecase.LeaveRoom(userID)
	c.JSON(http.StatusOK, gin.H{"message": "room closed"})
}

func (h *ChatHandler) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	case errors.Is(err, usecase.ErrNotInRoom):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this room"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
