package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"tuiter-client/internal/errors"
)

// Credentials 邮箱密码凭据
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Provider 身份提供方：换取不透明的访问令牌。
// 凭据校验与密码存储都是提供方的职责，客户端不做任何哈希处理。
type Provider interface {
	SignIn(ctx context.Context, credentials Credentials) (string, error)
	SignUp(ctx context.Context, credentials Credentials) (string, error)
}

// HTTPProvider 基于 HTTP 的身份提供方实现
type HTTPProvider struct {
	baseURL string
	http    *http.Client
}

// NewHTTPProvider 创建 HTTPProvider 实例
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

var _ Provider = (*HTTPProvider)(nil)

// SignIn 邮箱密码登录，返回访问令牌
func (p *HTTPProvider) SignIn(ctx context.Context, credentials Credentials) (string, error) {
	return p.exchange(ctx, "/signin", credentials)
}

// SignUp 注册新账号，返回访问令牌
func (p *HTTPProvider) SignUp(ctx context.Context, credentials Credentials) (string, error) {
	return p.exchange(ctx, "/signup", credentials)
}

func (p *HTTPProvider) exchange(ctx context.Context, path string, credentials Credentials) (string, error) {
	data, err := json.Marshal(credentials)
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "序列化凭据失败", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "构造请求失败", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		// 传输层异常原样上抛
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", errors.New(errors.ErrInvalidCredentials, "邮箱或密码不正确")
		}
		return "", errors.FromResponse(resp.StatusCode, body)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", errors.Wrap(errors.ErrInternal, "解析令牌响应失败", err)
	}
	if result.Token == "" {
		return "", errors.New(errors.ErrInvalidToken, "提供方未返回令牌")
	}
	return result.Token, nil
}
