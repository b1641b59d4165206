package api

import (
	"context"
	"net/http"
	"net/url"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
)

// Profile 获取当前会话用户
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.do(ctx, "api.profile", http.MethodGet, "/profile", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateProfile 更新当前用户资料
func (c *Client) UpdateProfile(ctx context.Context, user model.User) (model.User, error) {
	var updated model.User
	if err := c.do(ctx, "api.update_profile", http.MethodPut, "/profile", user, &updated); err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// FindUser 按ID查找用户
func (c *Client) FindUser(ctx context.Context, id string) (model.User, error) {
	var user model.User
	if err := c.do(ctx, "api.find_user", http.MethodGet, pathf("/users/%s", id), nil, &user); err != nil {
		return model.User{}, notFound(err, errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// SearchUsers 按用户名搜索用户
func (c *Client) SearchUsers(ctx context.Context, query string) ([]model.User, error) {
	var users []model.User
	path := "/users/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, "api.search_users", http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Follow 关注用户
func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.do(ctx, "api.follow", http.MethodPost, pathf("/users/%s/follows", userID), nil, nil)
}

// Unfollow 取消关注
func (c *Client) Unfollow(ctx context.Context, userID string) error {
	return c.do(ctx, "api.unfollow", http.MethodDelete, pathf("/users/%s/follows", userID), nil, nil)
}
