package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-bookmarks/internal/domain"
	"go-gin-bookmarks/internal/transport/http/ez"
)

// AdminHandler 运维端用户列表，挂在 /admin/v1（分组已校验 X-Admin-Key）
type AdminHandler struct {
	users UserUsecase
	log   *zap.Logger
}

func NewAdminHandler(users UserUsecase, l *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: l}
}

type listUsersQ struct {
	Offset int    `form:"offset,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=20" binding:"min=0"`
	Q      string `form:"q"` // 按 email 模糊搜
}

type listUsersOut struct {
	Total int64                  `json:"total"`
	Items []domain.UserWithCount `json:"items"`
}

func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin, h.log)

	ez.RegisterAction(e, ez.Action[listUsersQ, listUsersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listUsersQ) (listUsersOut, error) {
			rows, total, err := h.users.List(c.Request.Context(), strings.TrimSpace(in.Q), in.Offset, in.Limit)
			if err != nil {
				return listUsersOut{}, ez.Internal("list users failed", err)
			}
			return listUsersOut{Total: total, Items: rows}, nil
		},
	})
}
