package service

import (
	"tuiter-client/internal/api"
	"tuiter-client/internal/session"
)

// 确保 api.Client 实现了各服务依赖的接口
var (
	_ TuitAPI         = (*api.Client)(nil)
	_ ChatAPI         = (*api.Client)(nil)
	_ NotificationAPI = (*api.Client)(nil)
	_ UserAPI         = (*api.Client)(nil)
	_ SessionUsers    = (*session.Manager)(nil)
)
