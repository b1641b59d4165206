package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/util"

	"go.uber.org/zap"
)

// Client 远端 API 客户端。所有可预期的失败（校验、未找到、会话失效）
// 都以 *errors.AppError 返回，调用方按错误码分支；只有传输层异常
// （网络不可达等）原样向上传递。
type Client struct {
	baseURL   string
	http      *http.Client
	analytics *errors.ErrorAnalytics

	mu               sync.RWMutex
	token            string
	onSessionInvalid func()
}

// NewClient 创建一个新的 Client 实例
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{},
		analytics: errors.NewErrorAnalytics(),
	}
}

// SetToken 设置请求携带的会话令牌
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken 清除会话令牌
func (c *Client) ClearToken() {
	c.SetToken("")
}

// SetSessionInvalidHandler 注册会话失效回调。
// 任意调用返回 401/403 时触发，由会话管理器负责回到未登录状态。
func (c *Client) SetSessionInvalidHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionInvalid = fn
}

// Analytics 返回错误分析器
func (c *Client) Analytics() *errors.ErrorAnalytics {
	return c.analytics
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do 执行一次 JSON 请求。out 为 nil 时丢弃响应体。
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrInternal, "序列化请求失败", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "构造请求失败", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// 传输层异常原样上抛，不做包装也不做重试
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		appErr := errors.FromResponse(resp.StatusCode, data)
		c.recordError(appErr, op, method, path)
		util.Logger.Warn("会话已失效",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		c.fireSessionInvalid()
		return appErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := errors.FromResponse(resp.StatusCode, data)
		c.recordError(appErr, op, method, path)
		util.Logger.Warn("远端调用失败",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", appErr.Message))
		return appErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrInternal, "解析响应失败", err)
	}
	return nil
}

func (c *Client) recordError(appErr *errors.AppError, op, method, path string) {
	c.analytics.Record(errors.NewTracedError(appErr, errors.ErrorContext{
		Op:     op,
		Method: method,
		URL:    c.baseURL + path,
	}))
}

func (c *Client) fireSessionInvalid() {
	c.mu.RLock()
	fn := c.onSessionInvalid
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

// notFound 把通用的资源未找到错误映射为具体的业务错误码，
// 其他错误原样返回。
func notFound(err error, code errors.ErrorCode, message string) error {
	if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrResourceNotFound {
		return errors.Wrap(code, message, appErr)
	}
	return err
}
