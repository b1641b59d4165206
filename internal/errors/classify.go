package errors

import (
	stderrors "errors"
	"net"
)

// AsAppError 提取 AppError，方便调用方按错误码分支
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsSessionInvalid 判断是否为会话失效错误（对应远端 401/403）。
// 会话管理器收到该类错误后会回到未登录状态。
func IsSessionInvalid(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Code {
		case ErrUnauthorized, ErrForbidden, ErrInvalidToken, ErrTokenExpired:
			return true
		}
	}
	return false
}

// IsValidation 判断是否为用户可修正的校验错误
func IsValidation(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == ErrValidation || appErr.Code == ErrBadRequest
	}
	return false
}

// IsTemporary 判断是否为临时性错误
func IsTemporary(err error) bool {
	if temp, ok := err.(interface{ Temporary() bool }); ok {
		return temp.Temporary()
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
