package response

import "github.com/gin-gonic/gin"

// Resp 错误响应体；成功时直接返回业务数据
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// Error 失败响应（customMsg 非空时覆盖默认 msg）
func Error(code int, customMsg string) Resp {
	return ErrorWithData(code, customMsg, nil)
}

func ErrorWithData(code int, customMsg string, data interface{}) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, data)
}

// Abort 以 code 作为 HTTP 状态写出错误并中断链路
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Error(code, msg))
}
