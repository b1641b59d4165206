package api

import (
	"context"
	"net/http"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
)

// ListConversations 获取当前用户的会话列表
func (c *Client) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	var conversations []model.Conversation
	if err := c.do(ctx, "api.list_conversations", http.MethodGet, "/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// CreateConversation 创建会话
func (c *Client) CreateConversation(ctx context.Context, conversation model.Conversation) (model.Conversation, error) {
	var created model.Conversation
	if err := c.do(ctx, "api.create_conversation", http.MethodPost, "/conversations", conversation, &created); err != nil {
		return model.Conversation{}, err
	}
	return created, nil
}

// DeleteConversation 删除会话
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.do(ctx, "api.delete_conversation", http.MethodDelete, pathf("/conversations/%s", id), nil, nil)
}

// ListMessages 获取某会话的全部消息
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, "api.list_messages", http.MethodGet, pathf("/conversations/%s/messages", conversationID), nil, &messages); err != nil {
		return nil, notFound(err, errors.ErrConversationNotFound, "会话不存在")
	}
	return messages, nil
}

// LatestMessages 获取收件箱视图：每个会话最新一条消息
func (c *Client) LatestMessages(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, "api.latest_messages", http.MethodGet, "/messages/latest", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage 发送消息，服务端分配ID并返回规范实体
func (c *Client) SendMessage(ctx context.Context, conversationID, body string) (model.Message, error) {
	payload := map[string]string{"message": body}
	var created model.Message
	if err := c.do(ctx, "api.send_message", http.MethodPost, pathf("/conversations/%s/messages", conversationID), payload, &created); err != nil {
		return model.Message{}, notFound(err, errors.ErrConversationNotFound, "会话不存在")
	}
	return created, nil
}
