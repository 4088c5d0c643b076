package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-bookmarks/internal/core/config"
	"go-gin-bookmarks/internal/core/server"
	"go-gin-bookmarks/internal/service"
	"go-gin-bookmarks/internal/transport/http/handler"
	mdw "go-gin-bookmarks/internal/transport/http/middleware"
)

type APIDeps struct {
	Log          *zap.Logger
	Mode         string
	AllowOrigins []string
	Limits       config.Limits

	Auth      *service.AuthService
	Users     *service.UserService
	Bookmarks *service.BookmarkService

	// RateStore 非 nil 时 /auth/* 走 Redis 固定窗口，否则进程内按 IP 令牌桶
	RateStore mdw.Hitter
}

func NewAPIEngine(d APIDeps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{Mode: d.Mode, AllowOrigins: d.AllowOrigins}, mdw.RecoveryResponder)

	// 中间件
	r.Use(mdw.RequestID(), mdw.Metrics(), mdw.AccessLog(d.Log))
	r.Use(protections(d.Limits)...)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	public := r.Group("")
	authed := r.Group("", mdw.AuthGuard(d.Auth))

	reg := &Registry{}
	reg.Register(
		handler.NewAuthHandler(d.Auth, d.Log, authLimiter(d)...),
		handler.NewUserHandler(d.Users, d.Log),
		handler.NewBookmarkHandler(d.Bookmarks, d.Log),
	)
	reg.MountAPI(public, authed)

	return r
}

// protections 未配置（<=0）的项不启用
func protections(l config.Limits) []gin.HandlerFunc {
	var hs []gin.HandlerFunc
	if l.RPS > 0 && l.Burst > 0 {
		hs = append(hs, mdw.RateLimit(rate.Limit(l.RPS), l.Burst))
	}
	if l.MaxConcurrent > 0 {
		hs = append(hs, mdw.ConcurrencyLimit(l.MaxConcurrent))
	}
	if l.MaxBodyBytes > 0 {
		hs = append(hs, mdw.MaxBodyBytes(l.MaxBodyBytes))
	}
	if l.RequestTimeoutSec > 0 {
		hs = append(hs, mdw.Timeout(time.Duration(l.RequestTimeoutSec)*time.Second))
	}
	return hs
}

func authLimiter(d APIDeps) []gin.HandlerFunc {
	n, win := d.Limits.AuthPerWindow, time.Duration(d.Limits.AuthWindowSec)*time.Second
	if n <= 0 || win <= 0 {
		return nil
	}
	if d.RateStore != nil {
		return []gin.HandlerFunc{mdw.RateLimitRedis(d.RateStore, "rl:auth:", n, win, d.Log)}
	}
	return []gin.HandlerFunc{mdw.RateLimitPerIP(rate.Every(win/time.Duration(n)), n, 10*time.Minute)}
}
