package ez

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-bookmarks/internal/domain"
	resp "go-gin-bookmarks/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON         Binder = "json"          // JSON body，必填
	BindJSONOptional Binder = "json-optional" // JSON body，空 body 视为零值（PATCH）
	BindQuery        Binder = "query"         // URL ?a=b
	BindNone         Binder = "none"          // 不绑定，自己从 c.Param 取
)

// Empty 无响应体（204）
type Empty struct{}

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, log: l} }

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET | POST | PATCH | PUT | DELETE
	Path    string // 例："/auth/signup"、"/bookmarks/:id"
	Binder  Binder
	Auth    bool // 要求上下文中已有鉴权用户
	Status  int  // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前分组下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权
		if a.Auth {
			if _, ok := c.Get(KeyUser); !ok {
				e.writeError(c, domain.ErrUnauthenticated)
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindJSONOptional:
			if bindErr = c.ShouldBindJSON(&in); errors.Is(bindErr, io.EOF) {
				bindErr = nil
			}
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			e.writeError(c, Invalid(bindErr))
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			e.writeError(c, err)
			return
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, out)
	}
	e.g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

// 统一错误对象
type AErr struct {
	Code int
	Msg  string
	Data any
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// ParamID 解析路径中的正整数 id
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &AErr{
			Code: resp.CodeBadRequest,
			Msg:  "Validation failed (numeric string is expected)",
			Data: gin.H{"fields": []FieldError{{Field: name, Rule: "numeric", Value: raw}}},
		}
	}
	return uint(id), nil
}

// Classify 错误 → (HTTP 状态, msg, data)
func Classify(err error) (int, string, any) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		return ae.Code, ae.Error(), ae.Data
	case errors.Is(err, domain.ErrCredentials):
		return resp.CodeForbidden, "Credentials incorrect", nil
	case errors.Is(err, domain.ErrConflict):
		return resp.CodeConflict, "Credentials taken", nil
	case errors.Is(err, domain.ErrUnauthenticated):
		return resp.CodeUnauthorized, "Unauthorized", nil
	case errors.Is(err, domain.ErrAccessDenied):
		return resp.CodeForbidden, "Access denied", nil
	case errors.Is(err, domain.ErrPasswordTooLong):
		return resp.CodeBadRequest, "Validation failed", gin.H{"fields": []FieldError{
			{Field: "password", Rule: "max", Param: strconv.Itoa(domain.MaxPasswordBytes)},
		}}
	case errors.Is(err, domain.ErrNotFound):
		return resp.CodeNotFound, "Not found", nil
	case errors.Is(err, context.DeadlineExceeded):
		return resp.CodeTimeout, "timeout", nil
	default:
		return resp.CodeServerError, "", nil
	}
}

func (e EZ) writeError(c *gin.Context, err error) {
	code, msg, data := Classify(err)
	if code >= http.StatusInternalServerError && e.log != nil {
		e.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, resp.ErrorWithData(code, msg, data))
}
