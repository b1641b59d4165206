package model

import (
	"fmt"
	"time"
)

// NotificationType 通知类型，封闭集合
type NotificationType string

const (
	NotificationMessage NotificationType = "MESSAGE"
	NotificationLike    NotificationType = "LIKE"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Valid 判断通知类型是否在封闭集合内
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationMessage, NotificationLike, NotificationFollow:
		return true
	}
	return false
}

// Notification 结构体表示通知模型。客户端只会翻转已读标记，从不删除。
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	FromUser  UserSummary      `json:"fromUser"`
	Resource  string           `json:"resourceId"` // 目标资源：会话、帖子或用户ID
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Describe 返回通知的跳转链接与展示文案。
// 用显式映射代替按类型字符串索引的动态查表，集合封闭、可穷举检查。
func (n Notification) Describe() (link, content string) {
	switch n.Type {
	case NotificationMessage:
		return "/messages/" + n.Resource, fmt.Sprintf("%s 给你发来了私信", n.FromUser.Username)
	case NotificationLike:
		return "/tuit/" + n.Resource, fmt.Sprintf("%s 点赞了你的帖子", n.FromUser.Username)
	case NotificationFollow:
		return "/profile/" + n.Resource, fmt.Sprintf("%s 关注了你", n.FromUser.Username)
	default:
		return "", ""
	}
}
