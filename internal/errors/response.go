package errors

import (
	"encoding/json"
	"net/http"
)

// RemoteError 远端 API 错误体中的 error 字段
type RemoteError struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// ErrorEnvelope 远端 API 的错误响应结构 {"error": {...}}
type ErrorEnvelope struct {
	Error *RemoteError `json:"error"`
}

// HTTP状态码与错误码映射
var statusCodeMap = map[int]ErrorCode{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnprocessableEntity: ErrValidation,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrResourceNotFound,
	http.StatusConflict:            ErrResourceExists,
	http.StatusRequestTimeout:      ErrTimeout,
}

// FromResponse 将远端的非 2xx 响应转换为 AppError。
// 401/403 一律映射为会话失效类错误码，不管响应体内容是什么。
func FromResponse(status int, body []byte) *AppError {
	code, ok := statusCodeMap[status]
	if !ok {
		code = ErrInternal
	}

	message := http.StatusText(status)
	var envelope ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	return New(code, message)
}
