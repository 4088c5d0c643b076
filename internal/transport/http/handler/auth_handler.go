package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-bookmarks/internal/transport/http/ez"
)

type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
}

// AuthHandler /auth/*；guards 为分组级中间件（限速）
type AuthHandler struct {
	svc    AuthUsecase
	log    *zap.Logger
	guards []gin.HandlerFunc
}

func NewAuthHandler(svc AuthUsecase, l *zap.Logger, guards ...gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{svc: svc, log: l, guards: guards}
}

type signupIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"` // 字节上限由 service 再校验
}

type signinIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenOut struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(public, _ *gin.RouterGroup) {
	e := ez.New(public.Group("/auth", h.guards...), h.log)

	ez.RegisterAction(e, ez.Action[signupIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/signup",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *signupIn) (tokenOut, error) {
			tok, err := h.svc.Signup(c.Request.Context(), in.Email, in.Password)
			return tokenOut{AccessToken: tok}, err
		},
	})

	// 未知邮箱与密码错误同为 403
	ez.RegisterAction(e, ez.Action[signinIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/signin",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *signinIn) (tokenOut, error) {
			tok, err := h.svc.Signin(c.Request.Context(), in.Email, in.Password)
			return tokenOut{AccessToken: tok}, err
		},
	})
}
