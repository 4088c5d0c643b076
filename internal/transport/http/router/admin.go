package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-bookmarks/internal/core/server"
	"go-gin-bookmarks/internal/service"
	"go-gin-bookmarks/internal/transport/http/handler"
	mdw "go-gin-bookmarks/internal/transport/http/middleware"
)

type AdminDeps struct {
	Log   *zap.Logger
	Mode  string
	Key   string // 为空时不挂载 /admin/v1
	Users *service.UserService
}

func NewAdminEngine(d AdminDeps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{Mode: d.Mode}, mdw.RecoveryResponder)
	r.Use(mdw.RequestID(), mdw.AccessLog(d.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.Key == "" {
		d.Log.Warn("admin key empty, /admin/v1 not mounted")
		return r
	}
	admin := r.Group("/admin/v1", mdw.AdminKey(d.Key))
	reg := &Registry{}
	reg.Register(handler.NewAdminHandler(d.Users, d.Log))
	reg.MountAdmin(admin)

	return r
}
