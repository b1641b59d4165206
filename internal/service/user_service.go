package service

import (
	"context"
	"time"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
	"tuiter-client/internal/store"
	"tuiter-client/internal/util"

	"github.com/go-playground/validator/v10"
)

// UserAPI 用户相关的远端调用
type UserAPI interface {
	Profile(ctx context.Context) (model.User, error)
	UpdateProfile(ctx context.Context, user model.User) (model.User, error)
	FindUser(ctx context.Context, id string) (model.User, error)
	SearchUsers(ctx context.Context, query string) ([]model.User, error)
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error
}

// SessionUsers 会话用户的写回口，由会话管理器实现
type SessionUsers interface {
	SetUser(user model.User)
	CurrentUser() model.User
}

// ProfileUpdate 更新资料的输入
type ProfileUpdate struct {
	Username string     `validate:"required,min=2,max=30"`
	Name     string     `validate:"max=50"`
	Bio      string     `validate:"max=160"`
	Birthday *time.Time `validate:"omitempty,past_date"`
}

// UserService 处理与用户资料、关注相关的业务逻辑
type UserService struct {
	api      UserAPI
	session  SessionUsers
	alerts   *store.AlertCenter
	validate *validator.Validate
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(api UserAPI, session SessionUsers, alerts *store.AlertCenter) *UserService {
	return &UserService{
		api:      api,
		session:  session,
		alerts:   alerts,
		validate: util.NewValidator(),
	}
}

// RefreshProfile 重新拉取会话用户，资料完整性随之重新推导
func (s *UserService) RefreshProfile(ctx context.Context) (model.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		reportError(s.alerts, err, "获取用户资料失败")
		return model.User{}, err
	}
	s.session.SetUser(user)
	return user, nil
}

// UpdateProfile 更新当前用户资料
func (s *UserService) UpdateProfile(ctx context.Context, input ProfileUpdate) (model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return model.User{}, errors.Wrap(errors.ErrValidation, "资料不合法", err)
	}

	user := s.session.CurrentUser()
	user.Username = input.Username
	user.Name = input.Name
	user.Bio = input.Bio
	user.Birthday = input.Birthday

	updated, err := s.api.UpdateProfile(ctx, user)
	if err != nil {
		reportError(s.alerts, err, "更新资料失败")
		return model.User{}, err
	}
	s.session.SetUser(updated)
	if s.alerts != nil {
		s.alerts.SetSuccess("资料更新成功")
	}
	return updated, nil
}

// FindUser 按ID查找用户，用于打开他人资料页
func (s *UserService) FindUser(ctx context.Context, id string) (model.User, error) {
	user, err := s.api.FindUser(ctx, id)
	if err != nil {
		reportError(s.alerts, err, "查找用户失败")
		return model.User{}, err
	}
	return user, nil
}

// Search 按用户名搜索用户
func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	if query == "" {
		return nil, errors.New(errors.ErrValidation, "搜索关键字不能为空")
	}
	users, err := s.api.SearchUsers(ctx, query)
	if err != nil {
		reportError(s.alerts, err, "搜索用户失败")
		return nil, err
	}
	return users, nil
}

// Follow 关注用户
func (s *UserService) Follow(ctx context.Context, userID string) error {
	if err := s.api.Follow(ctx, userID); err != nil {
		reportError(s.alerts, err, "关注失败")
		return err
	}
	return nil
}

// Unfollow 取消关注
func (s *UserService) Unfollow(ctx context.Context, userID string) error {
	if err := s.api.Unfollow(ctx, userID); err != nil {
		reportError(s.alerts, err, "取消关注失败")
		return err
	}
	return nil
}
