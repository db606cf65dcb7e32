package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/coachify/internal/api/handlers"
	"github.com/yoockh/coachify/internal/api/middleware"
	"github.com/yoockh/coachify/internal/api/routes"
	"github.com/yoockh/coachify/internal/cache"
	"github.com/yoockh/coachify/internal/providers/images"
	"github.com/yoockh/coachify/internal/providers/social"
	mongorepo "github.com/yoockh/coachify/internal/repositories/mongo"
	pgrepo "github.com/yoockh/coachify/internal/repositories/postgres"
	"github.com/yoockh/coachify/internal/services"
	"github.com/yoockh/coachify/internal/utils"
	"github.com/yoockh/coachify/internal/voice"
)

const cachePrefix = "coachify:"

// cacheStore prefers redis and falls back to process memory.
func (a *App) cacheStore() cache.Store {
	if a.Redis == nil {
		return cache.NewMemory()
	}
	return cache.NewRedisCache(a.Redis, cachePrefix)
}

// Handler wires repositories, services and handlers into the HTTP stack.
func (a *App) Handler(p *Providers) http.Handler {
	cfg := a.Config

	users := pgrepo.NewUserRepo(a.DB)
	convRepo := pgrepo.NewConversationRepo(a.DB)
	posts := pgrepo.NewSocialPostRepo(a.DB)
	sessRepo := mongorepo.NewSessionRepo(a.MongoDB)
	bufRepo := mongorepo.NewBufferRepo(a.MongoDB)
	store := a.cacheStore()

	fb := social.NewFacebook(cfg.Facebook.AppID, cfg.Facebook.AppSecret, cfg.Facebook.RedirectURI, cfg.Facebook.APIVersion)
	unsplash := images.NewUnsplash(cfg.Unsplash.AccessKey, cfg.Unsplash.ApplicationID)

	tokens := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	authSvc := services.NewAuthService(users, tokens)
	userSvc := services.NewUserService(users)
	fbSvc := services.NewFacebookService(fb, users, store)
	socialSvc := services.NewSocialService(services.NewSEOService(p.SEO), fb, unsplash, posts, store, cfg.Unsplash.CacheTTL)
	convSvc := services.NewConversationService(convRepo)
	sessSvc := services.NewSessionService(sessRepo)
	bufSvc := services.NewBufferService(bufRepo, cfg.Mongo.BufferTTL)

	voiceSrv := voice.NewServer(voice.Deps{
		STT:           p.STT,
		TTS:           p.TTS,
		Coach:         p.Coach,
		Trainer:       p.Trainer,
		Archive:       a.Archive,
		Language:      cfg.Speech.Language,
		Conversations: convSvc,
		Sessions:      sessSvc,
		Buffers:       bufSvc,
		Log:           a.Log,
	})

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(a.Log), middleware.Metrics())

	routes.RegisterRoutes(r, routes.Deps{
		Auth:         authSvc,
		Login:        handlers.NewAuthHandler(authSvc),
		Users:        handlers.NewUserHandler(userSvc),
		Facebook:     handlers.NewFacebookHandler(fbSvc, cfg.Server.FrontendURL, a.Log),
		Social:       handlers.NewSocialHandler(socialSvc, a.Log),
		Conversation: handlers.NewConversationHandler(convSvc),
		Session:      handlers.NewSessionHandler(sessSvc, bufSvc, convSvc),
		Voice:        handlers.NewVoiceHandler(voiceSrv, a.Registry, a.Log),
	})

	return middleware.CORS(cfg.Server.FrontendURL)(r)
}
