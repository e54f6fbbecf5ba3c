package controllers

import (
	"strings"
	"time"

	"finquery/internal/auth"
	"finquery/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token and stores the email claim on
// the request context. User resolution stays with the handlers: a token
// for a since-deleted user still passes here and fails there.
func RequireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			RespondUnauthorizedErr(c, ErrInvalidToken)
			return
		}

		email, err := tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			RespondUnauthorizedErr(c, ErrInvalidToken)
			return
		}

		c.Set("userEmail", email)
		c.Next()
	}
}

func CurrentUserEmail(c *gin.Context) string {
	return c.GetString("userEmail")
}

// CurrentUser resolves the authenticated user from the email claim.
// (nil, nil) means the token was valid but the user no longer exists.
func CurrentUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	return models.GetUserByEmail(db, CurrentUserEmail(c))
}

// RequestLogger tags every request with an ID and writes an access log
// line once the handler chain finishes.
func RequestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
