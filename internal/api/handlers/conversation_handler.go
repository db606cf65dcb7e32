package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/coachify/internal/services"
)

type ConversationHandler struct {
	svc services.ConversationService
}

func NewConversationHandler(svc services.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// List returns the caller's conversation logs, newest first.
func (h *ConversationHandler) List(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, "ConversationHandler.List")
	if !ok {
		return
	}

	rows, err := h.svc.ListByUser(c.Request.Context(), u.Email, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
