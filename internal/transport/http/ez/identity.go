package ez

import (
	"github.com/gin-gonic/gin"

	"go-gin-bookmarks/internal/domain"
)

// KeyUser 鉴权中间件写入的已解析用户
const KeyUser = "auth.user"

func SetUser(c *gin.Context, u *domain.User) { c.Set(KeyUser, u) }

// CurrentUser 由 Auth 动作调用；未经鉴权分组时 ok=false
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
