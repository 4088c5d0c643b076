package ez

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	resp "go-gin-bookmarks/internal/transport/http/response"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
	Value string `json:"value,omitempty"`
}

// Invalid 把绑定/校验错误转换为带字段明细的 400
func Invalid(err error) error {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
		tooBig  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verrs):
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: jsonName(fe), Rule: fe.Tag(), Param: fe.Param()})
		}
		return &AErr{Code: resp.CodeBadRequest, Msg: "Validation failed", Data: gin.H{"fields": fields}, Err: err}
	case errors.Is(err, io.EOF):
		return &AErr{Code: resp.CodeBadRequest, Msg: "request body is required", Err: err}
	case errors.As(err, &tooBig):
		return &AErr{Code: resp.CodeTooLarge, Msg: "request body too large", Err: err}
	case errors.As(err, &typeErr):
		return &AErr{
			Code: resp.CodeBadRequest,
			Msg:  "Validation failed",
			Data: gin.H{"fields": []FieldError{{Field: typeErr.Field, Rule: "type", Param: typeErr.Type.String()}}},
			Err:  err,
		}
	case errors.As(err, &synErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &AErr{Code: resp.CodeBadRequest, Msg: "invalid JSON body", Err: err}
	default:
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error(), Err: err}
	}
}

// jsonName gin 默认校验器报 Go 字段名，DTO 的 json tag 均为小驼峰
func jsonName(fe validator.FieldError) string { return lowerFirst(fe.Field()) }

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
