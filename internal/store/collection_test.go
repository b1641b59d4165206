package store

import (
	"testing"
	"time"

	"tuiter-client/internal/model"

	"github.com/stretchr/testify/assert"
)

func newPost(id, body string, createdAt time.Time) model.Post {
	return model.Post{
		ID:        id,
		Post:      body,
		CreatedAt: createdAt,
	}
}

// TestUpsertOneLastWriteWins 测试按ID整体覆盖与幂等性
func TestUpsertOneLastWriteWins(t *testing.T) {
	s := NewEntityStore()
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Posts.UpsertOne(newPost("p1", "第一版", base))
	s.Posts.UpsertOne(newPost("p1", "第二版", base))
	s.Posts.UpsertOne(newPost("p1", "第三版", base))

	assert.Equal(t, 1, s.Posts.Len())
	got, ok := s.Posts.SelectByID("p1")
	assert.True(t, ok)
	assert.Equal(t, "第三版", got.Post)

	// 重复写入同一实体，最终状态不变
	s.Posts.UpsertOne(newPost("p1", "第三版", base))
	got, _ = s.Posts.SelectByID("p1")
	assert.Equal(t, "第三版", got.Post)
	assert.Equal(t, 1, s.Posts.Len())
}

// TestSetAllReplacesEverything 测试整体替换丢弃旧内容
func TestSetAllReplacesEverything(t *testing.T) {
	s := NewEntityStore()
	base := time.Now()

	s.Posts.SetAll([]model.Post{
		newPost("p1", "a", base),
		newPost("p2", "b", base),
	})
	assert.Equal(t, 2, s.Posts.Len())

	// 空集合替换后无论之前有什么都应为空
	s.Posts.SetAll(nil)
	assert.Empty(t, s.Posts.SelectAll())
	assert.Equal(t, 0, s.Posts.Len())
}

// TestSelectAllOrdering 测试有序视图：创建时间倒序，更新正文不影响顺序
func TestSelectAllOrdering(t *testing.T) {
	s := NewEntityStore()

	tA := time.Unix(10, 0)
	tB := time.Unix(20, 0)
	s.Posts.UpsertOne(newPost("a", "旧正文", tA))
	s.Posts.UpsertOne(newPost("b", "b正文", tB))

	all := s.Posts.SelectAll()
	assert.Equal(t, []string{"b", "a"}, []string{all[0].ID, all[1].ID})

	// 时间戳不变只改正文，顺序保持，正文更新
	s.Posts.UpsertOne(newPost("a", "新正文", tA))
	all = s.Posts.SelectAll()
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "新正文", all[1].Post)
}

// TestOrderingTieBreak 测试相同时间戳按ID升序保证确定性
func TestOrderingTieBreak(t *testing.T) {
	s := NewEntityStore()
	same := time.Unix(100, 0)

	s.Posts.UpsertOne(newPost("z", "z", same))
	s.Posts.UpsertOne(newPost("a", "a", same))
	s.Posts.UpsertOne(newPost("m", "m", same))

	all := s.Posts.SelectAll()
	assert.Equal(t, []string{"a", "m", "z"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

// TestRemoveOneAbsentIsSafe 测试删除不存在的ID是安全的
func TestRemoveOneAbsentIsSafe(t *testing.T) {
	s := NewEntityStore()
	assert.False(t, s.Posts.RemoveOne("missing"))

	s.Posts.UpsertOne(newPost("p1", "a", time.Now()))
	assert.True(t, s.Posts.RemoveOne("p1"))
	assert.False(t, s.Posts.RemoveOne("p1"))
}

// TestRemovePostEverywhere 测试删除帖子同时清除派生集合
func TestRemovePostEverywhere(t *testing.T) {
	s := NewEntityStore()
	post := newPost("p1", "a", time.Now())

	s.Posts.UpsertOne(post)
	s.LikedPosts.UpsertOne(post)
	s.DislikedPosts.UpsertOne(post)

	s.RemovePostEverywhere("p1")
	assert.False(t, s.Posts.Has("p1"))
	assert.False(t, s.LikedPosts.Has("p1"))
	assert.False(t, s.DislikedPosts.Has("p1"))
}

// TestClear 测试登出时清空所有集合
func TestClear(t *testing.T) {
	s := NewEntityStore()
	now := time.Now()

	s.Posts.UpsertOne(newPost("p1", "a", now))
	s.Notifications.UpsertOne(model.Notification{ID: "n1", CreatedAt: now})
	s.Inbox.UpsertOne(model.Message{ID: "m1", ConversationID: "c1", CreatedAt: now})

	s.Clear()
	assert.Equal(t, 0, s.Posts.Len())
	assert.Equal(t, 0, s.Notifications.Len())
	assert.Equal(t, 0, s.Inbox.Len())
}
