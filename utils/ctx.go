package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the authenticated user set by the auth middlewares.
// Both middlewares store the typed claim value, so a plain assertion is
// enough; zero means the request never passed authentication.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	id, _ := v.(uint)
	return id
}
