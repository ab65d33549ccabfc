package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"faceduker/pkg/log"
)

const headerRequestID = "X-Request-ID"

// RequestID берёт ID из заголовка или выдаёт новый и кладёт его в контекст запроса
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(log.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(log.ContextWithRequestID(c.Request.Context(), requestID))
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}

// Logger пишет по строке лога на каждый запрос
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := log.Fields{
			log.RequestIDKey: c.GetString(log.RequestIDKey),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         status,
			"latency_ms":     time.Since(start).Milliseconds(),
			"ip":             c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
			"response_size":  c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}

		if status >= 500 {
			log.Error(fields, "Server error")
		} else if status >= 400 {
			log.Warn(fields, "Client error")
		} else {
			log.Info(fields, "Success")
		}
	}
}
