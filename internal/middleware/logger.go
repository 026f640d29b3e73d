package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request and recovers from handler panics.
// Panic detail goes to the log only; the client sees a generic 500 body.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("request_panic method=%s path=%s client_ip=%s error=%v",
					c.Request.Method, c.Request.URL.Path, c.ClientIP(), recovered)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				return
			}

			log.Printf("request method=%s path=%s status=%d subject_id=%s latency=%s",
				c.Request.Method,
				c.Request.URL.Path,
				c.Writer.Status(),
				c.GetString("subject_id"),
				time.Since(start),
			)
		}()

		c.Next()
	}
}
