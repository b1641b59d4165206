package api

import (
	"context"
	"net/http"

	"tuiter-client/internal/model"
)

// ListNotifications 获取当前用户的通知
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.do(ctx, "api.list_notifications", http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead 标记通知为已读，返回更新后的通知
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (model.Notification, error) {
	var updated model.Notification
	if err := c.do(ctx, "api.mark_notification_read", http.MethodPut, pathf("/notifications/%s/read", id), nil, &updated); err != nil {
		return model.Notification{}, err
	}
	return updated, nil
}
