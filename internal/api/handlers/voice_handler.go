package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/api/middleware"
	"github.com/yoockh/coachify/internal/coach"
	"github.com/yoockh/coachify/internal/metrics"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/realtime"
	"github.com/yoockh/coachify/internal/voice"
)

type VoiceHandler struct {
	srv      *voice.Server
	registry *realtime.Registry
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewVoiceHandler(srv *voice.Server, registry *realtime.Registry, log *logrus.Logger) *VoiceHandler {
	return &VoiceHandler{
		srv:      srv,
		registry: registry,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// sockets authenticate with ?token=; origin is not checked
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Voice serves /ws/voice. ?mode= picks the coaching persona and ?scenario=
// an optional sales scenario.
func (h *VoiceHandler) Voice(c *gin.Context) {
	opts := voice.VoiceOptions{
		Mode:     coach.ParseMode(c.Query("mode")),
		Scenario: c.Query("scenario"),
	}
	h.serve(c, models.EndpointWSVoice, func(ctx context.Context, conn *realtime.Conn) error {
		return h.srv.ServeVoice(ctx, conn, conn.UserID, opts)
	})
}

// Chat serves /voice/chat.
func (h *VoiceHandler) Chat(c *gin.Context) {
	h.serve(c, models.EndpointVoiceChat, func(ctx context.Context, conn *realtime.Conn) error {
		return h.srv.ServeChat(ctx, conn, conn.UserID)
	})
}

func (h *VoiceHandler) serve(c *gin.Context, endpoint string, run func(context.Context, *realtime.Conn) error) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		userID = voice.AnonymousUser
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote the error response
		h.log.WithError(err).WithField("endpoint", endpoint).Debug("websocket upgrade failed")
		return
	}

	conn := realtime.NewConn(ws, uuid.NewString(), userID, endpoint)
	h.registry.Add(conn)
	metrics.SocketOpened(endpoint)
	defer func() {
		h.registry.Remove(conn.ID)
		metrics.SocketClosed(endpoint)
		_ = conn.Close(websocket.CloseNormalClosure, "")
	}()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go conn.KeepAlive(ctx)

	log := h.log.WithFields(logrus.Fields{"conn_id": conn.ID, "user_id": userID, "endpoint": endpoint})
	log.Info("voice socket opened")
	if err := run(ctx, conn); err != nil {
		log.WithError(err).Warn("voice socket ended with error")
		return
	}
	log.Info("voice socket closed")
}
