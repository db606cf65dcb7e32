package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/services"
	"github.com/yoockh/coachify/internal/utils"
)

type FacebookHandler struct {
	svc         services.FacebookService
	frontendURL string
	log         *logrus.Logger
}

func NewFacebookHandler(svc services.FacebookService, frontendURL string, log *logrus.Logger) *FacebookHandler {
	return &FacebookHandler{svc: svc, frontendURL: strings.TrimRight(frontendURL, "/"), log: log}
}

func (h *FacebookHandler) Login(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}

	authURL, err := h.svc.AuthURL(c.Request.Context(), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_url": authURL})
}

func (h *FacebookHandler) Callback(c *gin.Context) {
	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FacebookHandler.Callback", "code and state are required", nil))
		return
	}

	st, err := h.svc.Callback(c.Request.Context(), code, state)
	if err != nil {
		h.log.WithError(err).Warn("facebook callback failed")
		writeError(c, err)
		return
	}

	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"?"+url.Values{"facebook": {"connected"}}.Encode())
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *FacebookHandler) Status(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Status(u))
}

func (h *FacebookHandler) Disconnect(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Disconnect(c.Request.Context(), u); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": false})
}
