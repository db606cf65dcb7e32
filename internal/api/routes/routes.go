package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yoockh/coachify/internal/api/handlers"
	"github.com/yoockh/coachify/internal/api/middleware"
)

type Deps struct {
	Auth         middleware.Authenticator
	Login        *handlers.AuthHandler
	Users        *handlers.UserHandler
	Facebook     *handlers.FacebookHandler
	Social       *handlers.SocialHandler
	Conversation *handlers.ConversationHandler
	Session      *handlers.SessionHandler
	Voice        *handlers.VoiceHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/login", d.Login.Login)
	r.POST("/users", d.Users.Create)
	r.GET("/auth/facebook/callback", d.Facebook.Callback)
	r.GET("/social_post/search_images", d.Social.SearchImages)

	// Sockets: the token is optional and may come as ?token=
	ws := r.Group("/")
	ws.Use(middleware.OptionalAuth(d.Auth, true))
	ws.GET("/ws/voice", d.Voice.Voice)
	ws.GET("/voice/chat", d.Voice.Chat)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.Auth(d.Auth, false))

	auth.GET("/users/me", d.Users.Me)
	auth.GET("/users/:id", d.Users.Get)

	auth.GET("/auth/facebook", d.Facebook.Login)
	auth.GET("/auth/facebook/status", d.Facebook.Status)
	auth.DELETE("/auth/facebook", d.Facebook.Disconnect)

	auth.POST("/social_post", d.Social.Publish)
	auth.GET("/social_post/history", d.Social.History)

	auth.GET("/conversations", d.Conversation.List)
	auth.GET("/voice/sessions/:session_id", d.Session.Get)
	auth.GET("/voice/sessions/:session_id/turns", d.Session.Turns)
}
