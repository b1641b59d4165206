package service

import (
	"context"

	"tuiter-client/internal/model"
	"tuiter-client/internal/reconcile"
	"tuiter-client/internal/store"
)

// NotificationAPI 通知相关的远端调用
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (model.Notification, error)
}

// NotificationService 处理与通知相关的业务逻辑
type NotificationService struct {
	api    NotificationAPI
	rec    *reconcile.Reconciler
	store  *store.EntityStore
	alerts *store.AlertCenter
}

// NewNotificationService 创建一个新的 NotificationService 实例
func NewNotificationService(api NotificationAPI, rec *reconcile.Reconciler, entityStore *store.EntityStore, alerts *store.AlertCenter) *NotificationService {
	return &NotificationService{
		api:    api,
		rec:    rec,
		store:  entityStore,
		alerts: alerts,
	}
}

// Load 拉取全部通知，整体替换并重建未读投影
func (s *NotificationService) Load(ctx context.Context) error {
	notifications, err := s.api.ListNotifications(ctx)
	if err != nil {
		reportError(s.alerts, err, "获取通知失败")
		return err
	}

	s.store.Notifications.SetAll(notifications)

	unread := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	s.store.Unread.SetAll(unread)
	return nil
}

// MarkRead 标记通知已读。重复标记是空操作。
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if n, ok := s.store.Notifications.SelectByID(id); ok && n.Read {
		return nil
	}

	updated, err := s.api.MarkNotificationRead(ctx, id)
	if err != nil {
		reportError(s.alerts, err, "标记已读失败")
		return err
	}
	s.rec.MarkNotificationRead(updated)
	return nil
}

// UnreadCount 返回未读通知数量
func (s *NotificationService) UnreadCount() int {
	return s.store.Unread.Len()
}
