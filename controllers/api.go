package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken       = errors.New("Invalid token")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")
	ErrNoResults          = errors.New("No matching rows")
	ErrInternalError      = errors.New("Internal error")
	ErrDuplicateUser      = errors.New("Username or email already registered")
	ErrInvalidLimit       = errors.New("Invalid limit")
	ErrInvalidOffset      = errors.New("Invalid offset")
)

type apiError struct {
	Errors []string `json:"errors"`
}

func RespondOK(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, obj)
}

func RespondError(c *gin.Context, status int, errs ...error) {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	c.AbortWithStatusJSON(status, apiError{Errors: messages})
}

func RespondBadRequestErr(c *gin.Context, errs ...error) {
	RespondError(c, http.StatusBadRequest, errs...)
}

func RespondUnauthorizedErr(c *gin.Context, errs ...error) {
	RespondError(c, http.StatusUnauthorized, errs...)
}

func RespondNotFoundErr(c *gin.Context, errs ...error) {
	RespondError(c, http.StatusNotFound, errs...)
}

// RespondInternalErr hides the underlying cause from the client; the
// caller logs it.
func RespondInternalErr(c *gin.Context) {
	RespondError(c, http.StatusInternalServerError, ErrInternalError)
}

// respondCatalog maps a catalog query outcome to a response: execution
// failure is a logged 500, an empty result is a 404, rows come back as
// the body.
func respondCatalog[T any](c *gin.Context, logger *zap.SugaredLogger, what string, rows []T, err error) {
	if err != nil {
		logger.Errorf("Error running %s query: %v", what, err)
		RespondInternalErr(c)
		return
	}

	if len(rows) == 0 {
		RespondNotFoundErr(c, ErrNoResults)
		return
	}

	RespondOK(c, rows)
}
