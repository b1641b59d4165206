package service

import (
	"tuiter-client/internal/errors"
	"tuiter-client/internal/store"
	"tuiter-client/internal/util"

	"go.uber.org/zap"
)

// reportError 按错误分类路由到全局提示区：
// 校验错误原样返回给调用方就地展示；会话失效由会话管理器静默处理；
// 其余暂时性、未知错误进提示区，不自动重试。
func reportError(alerts *store.AlertCenter, err error, fallback string) {
	if err == nil {
		return
	}
	if errors.IsSessionInvalid(err) || errors.IsValidation(err) {
		return
	}

	message := fallback
	if errors.IsTemporary(err) {
		// 暂时性传输故障统一文案，不展示底层网络细节
		message = "网络异常，请稍后重试"
	} else if appErr, ok := errors.AsAppError(err); ok && appErr.Message != "" {
		message = appErr.Message
	}
	if alerts != nil {
		alerts.SetError(message)
	}
	util.Logger.Error(fallback, zap.Error(err))
}
