package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/ai-service/service"
	"github.com/coursehub/ai-service/types"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// HandleEvaluate answers a question using only the indexed documents.
func (h *ChatHandler) HandleEvaluate(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "question is required",
		})
		return
	}

	resp, err := h.chatService.EvaluateQuestion(c.Request.Context(), c.Query("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// HandleLearningPath recommends indexed courses for the requested topics.
func (h *ChatHandler) HandleLearningPath(c *gin.Context) {
	var req types.LearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Topics == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "topics is required",
		})
		return
	}

	resp, err := h.chatService.GetLearningPath(c.Request.Context(), c.Query("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// HandleChat answers without retrieval.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.FreeChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "message is required",
		})
		return
	}

	resp, err := h.chatService.ChatFree(c.Request.Context(), req.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *ChatHandler) HandleListConversations(c *gin.Context) {
	userID := c.Query("user_id")
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)

	resp, err := h.chatService.ListConversations(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
