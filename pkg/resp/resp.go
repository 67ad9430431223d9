package resp

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every error body carries a stable machine-readable code next to the
// human-readable message, so clients can branch without string matching.

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"ok": false, "code": code, "error": msg})
}

func BadRequest(c *gin.Context, code, msg string) {
	Fail(c, http.StatusBadRequest, code, msg)
}

func PaymentRequired(c *gin.Context, code, msg string) {
	Fail(c, http.StatusPaymentRequired, code, msg)
}

func NotFound(c *gin.Context, msg string) {
	Fail(c, http.StatusNotFound, "NotFound", msg)
}

func Conflict(c *gin.Context, code, msg string) {
	Fail(c, http.StatusConflict, code, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	Fail(c, http.StatusUnauthorized, "Unauthorized", msg)
}

func Forbidden(c *gin.Context, msg string) {
	Fail(c, http.StatusForbidden, "Forbidden", msg)
}

// ServerError logs the cause and answers with a generic body. Internal detail
// stays out of the response.
func ServerError(c *gin.Context, err error) {
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Fail(c, http.StatusInternalServerError, "Internal", "internal server error")
}
