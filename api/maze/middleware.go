package mazeapi

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSharedRecord is the key used to store the shared maze record in the Gin context.
	ContextSharedRecord = "sharedRecord"
)

// ShareToken resolves the bearer token of a request to the maze it shares.
func ShareToken(ms i.MazeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "share token required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		record, err := ms.Resolve(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid share token"})
			return
		}

		c.Set(ContextSharedRecord, record)
		c.Next()
	}
}

func sharedRecord(c *gin.Context) (*catalog.Record, bool) {
	v, ok := c.Get(ContextSharedRecord)
	if !ok {
		return nil, false
	}
	record, ok := v.(*catalog.Record)
	return record, ok
}
