package session

import (
	"os"
	"strings"

	"tuiter-client/internal/util"

	"go.uber.org/zap"
)

// TokenStore 把会话令牌持久化到本地文件。
// 客户端持久状态只有这一个不透明字符串，登出或会话失效时清除。
type TokenStore struct {
	path string
}

// NewTokenStore 创建令牌存储
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load 读取持久化的令牌，没有则返回空字符串
func (t *TokenStore) Load() string {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save 持久化令牌
func (t *TokenStore) Save(token string) error {
	if err := os.WriteFile(t.path, []byte(token), 0600); err != nil {
		util.Logger.Error("持久化令牌失败", zap.Error(err), zap.String("path", t.path))
		return err
	}
	return nil
}

// Clear 删除持久化的令牌，文件不存在不算错误
func (t *TokenStore) Clear() {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		util.Logger.Warn("删除令牌文件失败", zap.Error(err), zap.String("path", t.path))
	}
}
