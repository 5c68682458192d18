package httpx

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	ridKey          = "rid"
)

type ctxKey struct{}

// RequestID assigns every request an id (honoring an incoming X-Request-ID),
// echoes it in the response header and carries it in the request context so
// downstream log lines can reference it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKey{}, rid))
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}

// RID returns the id assigned by RequestID, or "" outside of it.
func RID(c *gin.Context) string { return c.GetString(ridKey) }

// FromContext returns the request id carried in ctx, or "".
func FromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http] rid=%s %s %s status=%d dur=%s",
			RID(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
