package session

import (
	"context"
	"sync"

	"tuiter-client/internal/api"
	"tuiter-client/internal/errors"
	"tuiter-client/internal/identity"
	"tuiter-client/internal/model"
	"tuiter-client/internal/realtime"
	"tuiter-client/internal/store"
	"tuiter-client/internal/util"

	"go.uber.org/zap"
)

// Phase 会话阶段
type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Manager 会话生命周期管理器。登录成功后拉取会话用户并打开推送通道；
// 登出或任意远端调用返回 401/403 时清空实体仓库、断开通道、丢弃令牌。
type Manager struct {
	api      *api.Client
	identity identity.Provider
	channel  *realtime.Channel
	store    *store.EntityStore
	tokens   *TokenStore

	mu              sync.RWMutex
	phase           Phase
	user            model.User
	profileComplete bool
}

// NewManager 创建会话管理器，并向 API 客户端注册会话失效回调
func NewManager(apiClient *api.Client, provider identity.Provider, channel *realtime.Channel, entityStore *store.EntityStore, tokens *TokenStore) *Manager {
	m := &Manager{
		api:      apiClient,
		identity: provider,
		channel:  channel,
		store:    entityStore,
		tokens:   tokens,
	}
	apiClient.SetSessionInvalidHandler(m.Invalidate)
	return m
}

// Login 邮箱密码登录
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, func() (string, error) {
		return m.identity.SignIn(ctx, identity.Credentials{Email: email, Password: password})
	})
}

// Register 注册新账号并直接进入已登录状态
func (m *Manager) Register(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, func() (string, error) {
		return m.identity.SignUp(ctx, identity.Credentials{Email: email, Password: password})
	})
}

// Restore 使用本地持久化的令牌恢复会话
func (m *Manager) Restore(ctx context.Context) error {
	token := m.tokens.Load()
	if token == "" {
		return errors.New(errors.ErrInvalidToken, "没有可恢复的会话")
	}
	if util.TokenExpired(token) {
		m.tokens.Clear()
		return errors.New(errors.ErrTokenExpired, "本地令牌已过期")
	}
	return m.authenticate(ctx, func() (string, error) {
		return token, nil
	})
}

// authenticate 统一的登录流程：取令牌、持久化、拉取会话用户、打开通道
func (m *Manager) authenticate(ctx context.Context, issueToken func() (string, error)) error {
	m.mu.Lock()
	if m.phase != Anonymous {
		m.mu.Unlock()
		return errors.New(errors.ErrResourceConflict, "当前已有会话")
	}
	m.phase = Authenticating
	m.mu.Unlock()

	token, err := issueToken()
	if err != nil {
		m.setPhase(Anonymous)
		util.Logger.Warn("获取令牌失败", zap.Error(err))
		return err
	}

	if err := m.tokens.Save(token); err != nil {
		// 持久化失败不阻塞登录，下次启动需要重新认证
		util.Logger.Warn("令牌未持久化，重启后需要重新登录")
	}
	m.api.SetToken(token)

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.api.ClearToken()
		m.tokens.Clear()
		m.setPhase(Anonymous)
		return err
	}
	m.SetUser(user)

	if err := m.channel.Connect(ctx, token); err != nil {
		// 通道连接失败不回滚登录，推送缺席只影响实时性
		util.Logger.Error("打开推送通道失败，实时更新不可用", zap.Error(err))
	}

	m.setPhase(Authenticated)
	util.Logger.Info("登录成功", zap.String("user_id", user.ID))
	return nil
}

// Logout 显式登出
func (m *Manager) Logout() {
	m.teardown()
	util.Logger.Info("已登出")
}

// Invalidate 会话失效处理：远端返回 401/403 时由 API 客户端触发，
// 无需用户确认，直接回到未登录状态。
func (m *Manager) Invalidate() {
	m.teardown()
	util.Logger.Warn("会话已失效，已回到未登录状态")
}

func (m *Manager) teardown() {
	m.channel.Disconnect()
	m.store.Clear()
	m.tokens.Clear()
	m.api.ClearToken()

	m.mu.Lock()
	m.phase = Anonymous
	m.user = model.User{}
	m.profileComplete = false
	m.mu.Unlock()
}

// SetUser 更新会话用户，资料完整性随之重新推导
func (m *Manager) SetUser(user model.User) {
	m.mu.Lock()
	m.user = user
	m.profileComplete = user.ProfileComplete()
	m.mu.Unlock()
}

// CurrentUser 返回会话用户副本
func (m *Manager) CurrentUser() model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// CurrentUserID 返回会话用户ID，未登录时为空字符串
func (m *Manager) CurrentUserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.ID
}

// ProfileComplete 资料是否完整（用户名和生日都已填写）
func (m *Manager) ProfileComplete() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profileComplete
}

// Phase 返回当前会话阶段
func (m *Manager) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

func (m *Manager) setPhase(phase Phase) {
	m.mu.Lock()
	m.phase = phase
	m.mu.Unlock()
}
