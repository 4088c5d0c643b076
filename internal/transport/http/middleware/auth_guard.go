package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-bookmarks/internal/domain"
	"go-gin-bookmarks/internal/transport/http/ez"
	resp "go-gin-bookmarks/internal/transport/http/response"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthGuard 校验 Bearer token，回查用户并写入上下文
func AuthGuard(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			resp.Abort(c, resp.CodeUnauthorized, "Unauthorized")
			return
		}
		u, err := a.Authenticate(c.Request.Context(), tok)
		if err != nil {
			_ = c.Error(err)
			if errors.Is(err, domain.ErrUnauthenticated) {
				resp.Abort(c, resp.CodeUnauthorized, "Unauthorized")
			} else {
				resp.Abort(c, resp.CodeServerError, "")
			}
			return
		}
		ez.SetUser(c, u)
		c.Next()
	}
}

func bearer(h string) (string, bool) {
	scheme, tok, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
