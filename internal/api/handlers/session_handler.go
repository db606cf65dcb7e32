package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/coachify/internal/services"
)

const maxTurnsPerSession = 500

type SessionHandler struct {
	sessions      services.SessionService
	buffers       services.BufferService
	conversations services.ConversationService
}

func NewSessionHandler(sessions services.SessionService, buffers services.BufferService, conversations services.ConversationService) *SessionHandler {
	return &SessionHandler{sessions: sessions, buffers: buffers, conversations: conversations}
}

func (h *SessionHandler) Get(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}

	sess, err := h.sessions.GetOwned(c.Request.Context(), u.Email, c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Turns returns the per-turn processing state of a session alongside the
// stored conversation logs, oldest first.
func (h *SessionHandler) Turns(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sessionID := c.Param("session_id")

	if _, err := h.sessions.GetOwned(ctx, u.Email, sessionID); err != nil {
		writeError(c, err)
		return
	}

	buffers, err := h.buffers.ListBySession(ctx, sessionID, maxTurnsPerSession)
	if err != nil {
		writeError(c, err)
		return
	}
	logs, err := h.conversations.ListBySession(ctx, u.Email, sessionID, maxTurnsPerSession)
	if err != nil {
		writeError(c, err)
		return
	}
	// logs come back newest first
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":    sessionID,
		"turns":         buffers,
		"conversations": logs,
	})
}
