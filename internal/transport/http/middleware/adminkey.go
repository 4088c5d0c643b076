package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	resp "go-gin-bookmarks/internal/transport/http/response"
)

const HeaderAdminKey = "X-Admin-Key"

// AdminKey 静态运维密钥校验（常量时间比较）
func AdminKey(key string) gin.HandlerFunc {
	want := []byte(key)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(HeaderAdminKey))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			resp.Abort(c, resp.CodeUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}
