package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-gin-bookmarks/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；超限的读取错误由绑定层映射为 413
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, resp.CodeTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
