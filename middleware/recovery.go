package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"main/utils"
)

// RecoveryMiddleware converts panics into 500 responses so a single bad
// request cannot take the server down.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				utils.TrackError("http", "panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
