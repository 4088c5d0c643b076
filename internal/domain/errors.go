package domain

import "errors"

// MaxPasswordBytes bcrypt 的输入上限
const MaxPasswordBytes = 72

var (
	// ErrCredentials 未知邮箱与密码错误共用，避免枚举用户
	ErrCredentials = errors.New("credentials incorrect")
	ErrConflict    = errors.New("credentials taken")
	// ErrUnauthenticated 缺失、格式错误、过期、签名无效的 token，或 token 指向的用户已不存在
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrAccessDenied 不存在与不属于调用者不做区分
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	// ErrPasswordTooLong bcrypt 只处理前 72 字节，超出的输入直接拒绝
	ErrPasswordTooLong = errors.New("password too long")
)
