package httpapi

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys set by the middleware.
const (
	ctxRequestID = "request_id"
	ctxOwner     = "owner_email"
)

// requestID echoes the caller's X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(common.RequestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request; the level follows the status.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status_code", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(ctxRequestID)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// recovery turns a handler panic into a 500 and logs the stack.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("panic recovered",
					zap.Any("error", p),
					zap.String("stacktrace", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// authenticate reads the bearer token. With required set, a missing or bad
// token ends the request with 401; otherwise a bad token is ignored and the
// call proceeds anonymously.
func authenticate(secret []byte, required bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		if header == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
				return
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok {
			token = ""
		}
		claims, err := auth.ParseToken(strings.TrimSpace(token), secret)
		if err != nil {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
				return
			}
			logger.Debug("ignoring bad token", zap.Error(err))
			c.Next()
			return
		}

		c.Set(ctxOwner, claims.Email)
		c.Next()
	}
}

// owner is the authenticated caller's email, or "" for anonymous calls.
func owner(c *gin.Context) string {
	return c.GetString(ctxOwner)
}
