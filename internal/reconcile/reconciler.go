package reconcile

import (
	"encoding/json"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
	"tuiter-client/internal/realtime"
	"tuiter-client/internal/store"
	"tuiter-client/internal/util"

	"go.uber.org/zap"
)

// Reconciler 合并策略：拉取结果与推送事件都经由这里写入实体仓库。
// 按ID整体覆盖使得事件重放无害（通道是至少一次交付），同一实体上
// 拉取与推送交错时采用最后应用者胜，不引入序号或版本向量。
type Reconciler struct {
	store *store.EntityStore
	self  func() string // 当前会话用户ID，用于维护点赞、点踩派生集合
}

// New 创建合并器
func New(entityStore *store.EntityStore, self func() string) *Reconciler {
	return &Reconciler{
		store: entityStore,
		self:  self,
	}
}

// ApplyEvent 按事件类型应用一条推送事件
func (r *Reconciler) ApplyEvent(event realtime.Event) error {
	switch event.Kind {
	case realtime.EventNewPost, realtime.EventUpdatedPost:
		var post model.Post
		if err := json.Unmarshal(event.Payload, &post); err != nil {
			return errors.Wrap(errors.ErrInternal, "解析帖子事件失败", err)
		}
		r.MergePost(post)

	case realtime.EventNewMessage:
		var message model.Message
		if err := json.Unmarshal(event.Payload, &message); err != nil {
			return errors.Wrap(errors.ErrInternal, "解析消息事件失败", err)
		}
		r.MergeMessage(message)

	case realtime.EventNewNotification:
		var notification model.Notification
		if err := json.Unmarshal(event.Payload, &notification); err != nil {
			return errors.Wrap(errors.ErrInternal, "解析通知事件失败", err)
		}
		r.InsertNotification(notification)

	default:
		util.Logger.Warn("忽略未知的推送事件", zap.String("kind", string(event.Kind)))
	}
	return nil
}

// MergePost 按ID整体覆盖帖子，并根据规范载荷中的点赞、点踩成员集
// 维护当前用户的派生集合。
func (r *Reconciler) MergePost(post model.Post) {
	r.store.Posts.UpsertOne(post)

	userID := r.currentUser()
	if userID == "" {
		return
	}

	if post.LikedByUser(userID) {
		r.store.LikedPosts.UpsertOne(post)
	} else {
		r.store.LikedPosts.RemoveOne(post.ID)
	}

	if post.DislikedByUser(userID) {
		r.store.DislikedPosts.UpsertOne(post)
	} else {
		r.store.DislikedPosts.RemoveOne(post.ID)
	}
}

// RemovePost 删除帖子并从所有派生集合中清除
func (r *Reconciler) RemovePost(id string) {
	r.store.RemovePostEverywhere(id)
}

// MergeMessage 写入全量消息日志，并刷新收件箱投影：
// 收件箱按会话ID键控，只保留最后应用的一条。
func (r *Reconciler) MergeMessage(message model.Message) {
	r.store.Messages.UpsertOne(message)
	r.store.Inbox.UpsertOne(message)
}

// InsertNotification 通知是只增日志，这里是唯一需要显式存在性检查的
// 路径：同一ID可能在拉取与推送之间竞争，盲目追加会造成重复展示。
func (r *Reconciler) InsertNotification(notification model.Notification) {
	if r.store.Notifications.Has(notification.ID) {
		return
	}
	r.store.Notifications.UpsertOne(notification)
	if !notification.Read {
		r.store.Unread.UpsertOne(notification)
	}
}

// MarkNotificationRead 应用已读补丁：只翻转已读标记，从未读投影移除。
// 重复标记是空操作，移除不存在的ID也是安全的。
func (r *Reconciler) MarkNotificationRead(notification model.Notification) {
	r.store.Notifications.UpsertOne(notification)
	r.store.Unread.RemoveOne(notification.ID)
}

func (r *Reconciler) currentUser() string {
	if r.self == nil {
		return ""
	}
	return r.self()
}
