package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/coachify/internal/api/middleware"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

// requireUser returns the caller loaded by the auth middleware.
func requireUser(c *gin.Context) (*models.User, bool) {
	if v, ok := c.Get(middleware.CtxUser); ok {
		if u, ok := v.(*models.User); ok && u != nil {
			return u, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "Could not validate credentials", nil))
	return nil, false
}

// queryLimit parses ?limit=; absent means 0 so services apply their default.
func queryLimit(c *gin.Context, op string) (int, bool) {
	s := c.Query("limit")
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "limit must be an integer", err))
		return 0, false
	}
	return n, true
}
