package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"tuiter-client/internal/model"
	"tuiter-client/internal/realtime"
	"tuiter-client/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReconciler(t *testing.T, userID string) (*Reconciler, *store.EntityStore) {
	t.Helper()
	entityStore := store.NewEntityStore()
	rec := New(entityStore, func() string { return userID })
	return rec, entityStore
}

func postEvent(t *testing.T, kind realtime.EventKind, post model.Post) realtime.Event {
	t.Helper()
	payload, err := json.Marshal(post)
	require.NoError(t, err)
	return realtime.Event{Kind: kind, Payload: payload}
}

// TestNewPostEventTwice 测试同一 NEW_POST 事件重放后集合中仍只有一条
func TestNewPostEventTwice(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")
	post := model.Post{ID: "p1", Post: "hello #go", CreatedAt: time.Unix(100, 0)}

	event := postEvent(t, realtime.EventNewPost, post)
	require.NoError(t, rec.ApplyEvent(event))
	require.NoError(t, rec.ApplyEvent(event))

	assert.Equal(t, 1, entityStore.Posts.Len())
	got, ok := entityStore.Posts.SelectByID("p1")
	assert.True(t, ok)
	assert.Equal(t, "hello #go", got.Post)
}

// TestUpdatedPostReplacesWholeEntity 测试 UPDATED_POST 整体覆盖
func TestUpdatedPostReplacesWholeEntity(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")
	created := model.Post{ID: "p1", Post: "v1", Stats: model.PostStats{Likes: 0}, CreatedAt: time.Unix(100, 0)}
	require.NoError(t, rec.ApplyEvent(postEvent(t, realtime.EventNewPost, created)))

	updated := created
	updated.Stats.Likes = 3
	updated.LikedBy = []string{"u1"}
	require.NoError(t, rec.ApplyEvent(postEvent(t, realtime.EventUpdatedPost, updated)))

	got, _ := entityStore.Posts.SelectByID("p1")
	assert.Equal(t, 3, got.Stats.Likes)
	// 当前用户在点赞成员集中，派生集合应同步出现该帖
	assert.True(t, entityStore.LikedPosts.Has("p1"))
}

// TestMergePostMaintainsProjections 测试点赞、点踩派生集合随成员集维护
func TestMergePostMaintainsProjections(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")

	liked := model.Post{ID: "p1", LikedBy: []string{"u1"}, CreatedAt: time.Unix(1, 0)}
	rec.MergePost(liked)
	assert.True(t, entityStore.LikedPosts.Has("p1"))
	assert.False(t, entityStore.DislikedPosts.Has("p1"))

	// 用户改为点踩，整体覆盖后派生集合切换
	disliked := model.Post{ID: "p1", DislikedBy: []string{"u1"}, CreatedAt: time.Unix(1, 0)}
	rec.MergePost(disliked)
	assert.False(t, entityStore.LikedPosts.Has("p1"))
	assert.True(t, entityStore.DislikedPosts.Has("p1"))
}

// TestRemovePostPurgesProjections 测试删除帖子清除所有派生集合
func TestRemovePostPurgesProjections(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")
	post := model.Post{ID: "p1", LikedBy: []string{"u1"}, CreatedAt: time.Unix(1, 0)}
	rec.MergePost(post)
	require.True(t, entityStore.LikedPosts.Has("p1"))

	rec.RemovePost("p1")
	assert.False(t, entityStore.Posts.Has("p1"))
	assert.False(t, entityStore.LikedPosts.Has("p1"))
	assert.False(t, entityStore.DislikedPosts.Has("p1"))
}

// TestInboxKeepsLatestMessagePerConversation 测试收件箱投影只保留每会话最新一条
func TestInboxKeepsLatestMessagePerConversation(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")

	m1 := model.Message{ID: "m1", ConversationID: "c1", Message: "先到", CreatedAt: time.Unix(1, 0)}
	m2 := model.Message{ID: "m2", ConversationID: "c1", Message: "后到", CreatedAt: time.Unix(2, 0)}

	for _, m := range []model.Message{m1, m2} {
		payload, err := json.Marshal(m)
		require.NoError(t, err)
		require.NoError(t, rec.ApplyEvent(realtime.Event{Kind: realtime.EventNewMessage, Payload: payload}))
	}

	// 全量日志两条都在
	assert.Equal(t, 2, entityStore.Messages.Len())

	// 收件箱按会话键控，只剩最新的 m2
	assert.Equal(t, 1, entityStore.Inbox.Len())
	latest, ok := entityStore.Inbox.SelectByID("c1")
	assert.True(t, ok)
	assert.Equal(t, "m2", latest.ID)
}

// TestNotificationInsertIfAbsent 测试通知按ID去重，重放不产生重复
func TestNotificationInsertIfAbsent(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")

	n := model.Notification{ID: "n1", Type: model.NotificationLike, Read: false, CreatedAt: time.Unix(5, 0)}
	payload, err := json.Marshal(n)
	require.NoError(t, err)
	event := realtime.Event{Kind: realtime.EventNewNotification, Payload: payload}

	require.NoError(t, rec.ApplyEvent(event))
	require.NoError(t, rec.ApplyEvent(event))

	assert.Equal(t, 1, entityStore.Notifications.Len())
	assert.Equal(t, 1, entityStore.Unread.Len())
}

// TestReadNotificationSkipsUnread 测试已读通知不进未读投影
func TestReadNotificationSkipsUnread(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")

	n := model.Notification{ID: "n1", Type: model.NotificationFollow, Read: true, CreatedAt: time.Unix(5, 0)}
	rec.InsertNotification(n)

	assert.Equal(t, 1, entityStore.Notifications.Len())
	assert.Equal(t, 0, entityStore.Unread.Len())
}

// TestMarkNotificationReadTwice 测试重复标记已读是空操作
func TestMarkNotificationReadTwice(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")

	n := model.Notification{ID: "n1", Type: model.NotificationMessage, Read: false, CreatedAt: time.Unix(5, 0)}
	rec.InsertNotification(n)
	require.True(t, entityStore.Unread.Has("n1"))

	n.Read = true
	rec.MarkNotificationRead(n)
	assert.False(t, entityStore.Unread.Has("n1"))
	got, _ := entityStore.Notifications.SelectByID("n1")
	assert.True(t, got.Read)

	// 第二次标记：未读投影已不含该ID，移除不存在的ID是安全的
	rec.MarkNotificationRead(n)
	assert.False(t, entityStore.Unread.Has("n1"))
	assert.Equal(t, 1, entityStore.Notifications.Len())
}

// TestUnknownEventIgnored 测试未知事件被忽略且不报错
func TestUnknownEventIgnored(t *testing.T) {
	rec, entityStore := newReconciler(t, "u1")
	err := rec.ApplyEvent(realtime.Event{Kind: "SOMETHING_ELSE", Payload: []byte(`{}`)})
	assert.NoError(t, err)
	assert.Equal(t, 0, entityStore.Posts.Len())
}
