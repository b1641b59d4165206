package api

import (
	"context"
	"net/http"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
)

// ListTuits 获取全量帖子流
func (c *Client) ListTuits(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, "api.list_tuits", http.MethodGet, "/tuits", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListTuitsByUser 获取某用户发布的帖子
func (c *Client) ListTuitsByUser(ctx context.Context, userID string) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, "api.list_user_tuits", http.MethodGet, pathf("/users/%s/tuits", userID), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListLikedTuits 获取某用户点赞过的帖子
func (c *Client) ListLikedTuits(ctx context.Context, userID string) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, "api.list_liked_tuits", http.MethodGet, pathf("/users/%s/likes", userID), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListDislikedTuits 获取某用户点踩过的帖子
func (c *Client) ListDislikedTuits(ctx context.Context, userID string) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, "api.list_disliked_tuits", http.MethodGet, pathf("/users/%s/dislikes", userID), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateTuit 创建帖子，服务端分配ID并返回规范实体
func (c *Client) CreateTuit(ctx context.Context, post model.Post) (model.Post, error) {
	var created model.Post
	if err := c.do(ctx, "api.create_tuit", http.MethodPost, "/tuits", post, &created); err != nil {
		return model.Post{}, err
	}
	return created, nil
}

// UpdateTuit 整体更新帖子，用于附加图片等后续补丁
func (c *Client) UpdateTuit(ctx context.Context, post model.Post) (model.Post, error) {
	var updated model.Post
	if err := c.do(ctx, "api.update_tuit", http.MethodPut, pathf("/tuits/%s", post.ID), post, &updated); err != nil {
		return model.Post{}, notFound(err, errors.ErrTuitNotFound, "帖子不存在")
	}
	return updated, nil
}

// DeleteTuit 删除帖子
func (c *Client) DeleteTuit(ctx context.Context, id string) error {
	if err := c.do(ctx, "api.delete_tuit", http.MethodDelete, pathf("/tuits/%s", id), nil, nil); err != nil {
		return notFound(err, errors.ErrTuitNotFound, "帖子不存在")
	}
	return nil
}

// LikeTuit 点赞，返回更新后的帖子（整体覆盖语义）
func (c *Client) LikeTuit(ctx context.Context, id string) (model.Post, error) {
	var updated model.Post
	if err := c.do(ctx, "api.like_tuit", http.MethodPost, pathf("/tuits/%s/likes", id), nil, &updated); err != nil {
		return model.Post{}, notFound(err, errors.ErrTuitNotFound, "帖子不存在")
	}
	return updated, nil
}

// DislikeTuit 点踩，返回更新后的帖子
func (c *Client) DislikeTuit(ctx context.Context, id string) (model.Post, error) {
	var updated model.Post
	if err := c.do(ctx, "api.dislike_tuit", http.MethodPost, pathf("/tuits/%s/dislikes", id), nil, &updated); err != nil {
		return model.Post{}, notFound(err, errors.ErrTuitNotFound, "帖子不存在")
	}
	return updated, nil
}
