package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-bookmarks/internal/domain"
	"go-gin-bookmarks/internal/transport/http/ez"
)

type UserUsecase interface {
	EditUser(ctx context.Context, userID uint, p domain.UserPatch) (*domain.User, error)
	List(ctx context.Context, q string, offset, limit int) ([]domain.UserWithCount, int64, error)
}

type UserHandler struct {
	svc UserUsecase
	log *zap.Logger
}

func NewUserHandler(svc UserUsecase, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

type editUserIn struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName"  binding:"omitempty,max=100"`
}

func (h *UserHandler) Priority() int { return 20 }

func (h *UserHandler) MountAPI(_, authed *gin.RouterGroup) {
	e := ez.New(authed.Group("/users"), h.log)

	ez.RegisterAction(e, ez.Action[ez.Empty, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *ez.Empty) (*domain.User, error) {
			u, _ := ez.CurrentUser(c)
			return u, nil
		},
	})

	ez.RegisterAction(e, ez.Action[editUserIn, *domain.User]{
		Method: http.MethodPatch,
		Path:   "",
		Binder: ez.BindJSONOptional,
		Auth:   true,
		Handler: func(c *gin.Context, in *editUserIn) (*domain.User, error) {
			u, _ := ez.CurrentUser(c)
			return h.svc.EditUser(c.Request.Context(), u.ID, domain.UserPatch{
				FirstName: in.FirstName,
				LastName:  in.LastName,
			})
		},
	})
}
