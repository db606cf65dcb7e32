package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/services"
	"github.com/yoockh/coachify/internal/utils"
)

type SocialHandler struct {
	svc services.SocialService
	log *logrus.Logger
}

func NewSocialHandler(svc services.SocialService, log *logrus.Logger) *SocialHandler {
	return &SocialHandler{svc: svc, log: log}
}

type SocialPostRequest struct {
	Content         string `json:"content"`
	UnsplashImageID string `json:"unsplash_image_id"`
}

func (h *SocialHandler) Publish(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}

	var req SocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SocialHandler.Publish", "invalid request body", err))
		return
	}

	res, err := h.svc.Publish(c.Request.Context(), u, req.Content, req.UnsplashImageID)
	if err != nil {
		writeError(c, err)
		return
	}
	for _, w := range res.Warnings {
		h.log.WithError(w).WithField("user_id", u.Email).Warn("social post degraded")
	}
	c.JSON(http.StatusOK, res)
}

func (h *SocialHandler) SearchImages(c *gin.Context) {
	perPage := 0
	if s := c.Query("per_page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "SocialHandler.SearchImages", "per_page must be an integer", err))
			return
		}
		perPage = n
	}

	imgs, err := h.svc.SearchImages(c.Request.Context(), c.Query("query"), perPage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, imgs)
}

func (h *SocialHandler) History(c *gin.Context) {
	u, ok := requireUser(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, "SocialHandler.History")
	if !ok {
		return
	}

	posts, err := h.svc.History(c.Request.Context(), u.Email, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
