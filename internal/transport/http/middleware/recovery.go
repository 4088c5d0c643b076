package middleware

import (
	"github.com/gin-gonic/gin"

	resp "go-gin-bookmarks/internal/transport/http/response"
)

// RecoveryResponder 给 ginzap.CustomRecoveryWithZap 使用：panic 统一回 500 结构体
func RecoveryResponder(c *gin.Context, _ any) {
	resp.Abort(c, resp.CodeServerError, "internal error")
}
