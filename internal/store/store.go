package store

import (
	"time"

	"tuiter-client/internal/model"
)

// byCreatedDesc 默认排序：创建时间倒序，时间相同按ID升序保证确定性
func byCreatedDesc(aTime, bTime time.Time, aID, bID string) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID < bID
}

func postLess(a, b model.Post) bool {
	return byCreatedDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

func messageLess(a, b model.Message) bool {
	return byCreatedDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

func conversationLess(a, b model.Conversation) bool {
	return byCreatedDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

func notificationLess(a, b model.Notification) bool {
	return byCreatedDesc(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

// EntityStore 持有全部实体集合，是唯一的共享可变状态。
// 所有修改都必须经过集合操作，其他组件不得直接改字段。
type EntityStore struct {
	Posts         *Collection[model.Post]
	LikedPosts    *Collection[model.Post] // 当前用户点赞的帖子
	DislikedPosts *Collection[model.Post] // 当前用户点踩的帖子
	Conversations *Collection[model.Conversation]
	Messages      *Collection[model.Message] // 全量消息日志，按消息ID
	Inbox         *Collection[model.Message] // 收件箱投影：每个会话只保留最新一条，按会话ID
	Notifications *Collection[model.Notification]
	Unread        *Collection[model.Notification] // 未读通知投影
}

// NewEntityStore 创建空的实体仓库
func NewEntityStore() *EntityStore {
	postID := func(p model.Post) string { return p.ID }
	messageID := func(m model.Message) string { return m.ID }
	conversationKey := func(m model.Message) string { return m.ConversationID }
	notificationID := func(n model.Notification) string { return n.ID }

	return &EntityStore{
		Posts:         NewCollection(postID, postLess),
		LikedPosts:    NewCollection(postID, postLess),
		DislikedPosts: NewCollection(postID, postLess),
		Conversations: NewCollection(func(c model.Conversation) string { return c.ID }, conversationLess),
		Messages:      NewCollection(messageID, messageLess),
		Inbox:         NewCollection(conversationKey, messageLess),
		Notifications: NewCollection(notificationID, notificationLess),
		Unread:        NewCollection(notificationID, notificationLess),
	}
}

// Clear 清空所有集合，用于登出或会话失效
func (s *EntityStore) Clear() {
	s.Posts.RemoveAll()
	s.LikedPosts.RemoveAll()
	s.DislikedPosts.RemoveAll()
	s.Conversations.RemoveAll()
	s.Messages.RemoveAll()
	s.Inbox.RemoveAll()
	s.Notifications.RemoveAll()
	s.Unread.RemoveAll()
}

// RemovePostEverywhere 删除帖子并从点赞、点踩派生集合中一并清除
func (s *EntityStore) RemovePostEverywhere(id string) {
	s.Posts.RemoveOne(id)
	s.LikedPosts.RemoveOne(id)
	s.DislikedPosts.RemoveOne(id)
}
