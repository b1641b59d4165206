package service

import (
	"context"
	"testing"
	"time"

	apperrors "tuiter-client/internal/errors"
	"tuiter-client/internal/model"
	"tuiter-client/internal/reconcile"
	"tuiter-client/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChatAPI 是 ChatAPI 接口的模拟实现
type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Conversation), args.Error(1)
}

func (m *MockChatAPI) CreateConversation(ctx context.Context, conversation model.Conversation) (model.Conversation, error) {
	args := m.Called(ctx, conversation)
	return args.Get(0).(model.Conversation), args.Error(1)
}

func (m *MockChatAPI) DeleteConversation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatAPI) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockChatAPI) LatestMessages(ctx context.Context) ([]model.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockChatAPI) SendMessage(ctx context.Context, conversationID, body string) (model.Message, error) {
	args := m.Called(ctx, conversationID, body)
	return args.Get(0).(model.Message), args.Error(1)
}

func newChatService(api ChatAPI) (*ChatService, *store.EntityStore) {
	entityStore := store.NewEntityStore()
	rec := reconcile.New(entityStore, func() string { return "u1" })
	return NewChatService(api, rec, entityStore, store.NewAlertCenter(0)), entityStore
}

// TestSendMessageUpdatesInbox 测试发送消息同时进入全量日志和收件箱投影
func TestSendMessageUpdatesInbox(t *testing.T) {
	mockAPI := new(MockChatAPI)
	service, entityStore := newChatService(mockAPI)

	created := model.Message{ID: "m1", ConversationID: "c1", Message: "你好", CreatedAt: time.Unix(1, 0)}
	mockAPI.On("SendMessage", mock.Anything, "c1", "你好").Return(created, nil)

	got, err := service.SendMessage(context.Background(), "c1", "你好")
	require.NoError(t, err)
	assert.Equal(t, "m1", got.ID)
	assert.True(t, entityStore.Messages.Has("m1"))

	// 收件箱按会话键控
	latest, ok := entityStore.Inbox.SelectByID("c1")
	require.True(t, ok)
	assert.Equal(t, "m1", latest.ID)
}

// TestSendEmptyMessageRejected 测试空消息被本地校验拒绝
func TestSendEmptyMessageRejected(t *testing.T) {
	mockAPI := new(MockChatAPI)
	service, _ := newChatService(mockAPI)

	_, err := service.SendMessage(context.Background(), "c1", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockAPI.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

// TestStartConversationRequiresParticipants 测试没有参与者时拒绝创建会话
func TestStartConversationRequiresParticipants(t *testing.T) {
	mockAPI := new(MockChatAPI)
	service, _ := newChatService(mockAPI)

	_, err := service.StartConversation(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

// TestStartConversationEmbedsSummaries 测试完整用户实体只以摘要嵌入会话
func TestStartConversationEmbedsSummaries(t *testing.T) {
	mockAPI := new(MockChatAPI)
	service, entityStore := newChatService(mockAPI)

	created := model.Conversation{
		ID:           "c1",
		Participants: []model.UserSummary{{ID: "u2", Username: "bob"}},
		CreatedAt:    time.Unix(1, 0),
	}
	mockAPI.On("CreateConversation", mock.Anything, mock.MatchedBy(func(c model.Conversation) bool {
		return len(c.Participants) == 1 &&
			c.Participants[0].ID == "u2" &&
			c.Participants[0].Username == "bob"
	})).Return(created, nil)

	got, err := service.StartConversation(context.Background(), []model.User{
		{ID: "u2", Username: "bob", Email: "bob@example.com", Bio: "一段很长的简介"},
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.True(t, entityStore.Conversations.Has("c1"))
	mockAPI.AssertExpectations(t)
}

// TestLoadConversationMergesMessages 测试加载会话消息合并而非整体替换
func TestLoadConversationMergesMessages(t *testing.T) {
	mockAPI := new(MockChatAPI)
	service, entityStore := newChatService(mockAPI)

	// 另一个会话的消息应保留
	entityStore.Messages.UpsertOne(model.Message{ID: "m0", ConversationID: "c0", CreatedAt: time.Unix(1, 0)})

	mockAPI.On("ListMessages", mock.Anything, "c1").Return([]model.Message{
		{ID: "m1", ConversationID: "c1", CreatedAt: time.Unix(2, 0)},
		{ID: "m2", ConversationID: "c1", CreatedAt: time.Unix(3, 0)},
	}, nil)

	messages, err := service.LoadConversation(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, 3, entityStore.Messages.Len())
	assert.True(t, entityStore.Messages.Has("m0"))
}

// TestRemoveConversationClearsInbox 测试删除会话同时清除收件箱条目
func TestRemoveConversationClearsInbox(t *testing.T) {
	mockAPI := new(MockChatAPI)
	service, entityStore := newChatService(mockAPI)

	entityStore.Conversations.UpsertOne(model.Conversation{ID: "c1", CreatedAt: time.Unix(1, 0)})
	entityStore.Inbox.UpsertOne(model.Message{ID: "m1", ConversationID: "c1", CreatedAt: time.Unix(2, 0)})

	mockAPI.On("DeleteConversation", mock.Anything, "c1").Return(nil)

	require.NoError(t, service.RemoveConversation(context.Background(), "c1"))
	assert.False(t, entityStore.Conversations.Has("c1"))
	assert.False(t, entityStore.Inbox.Has("c1"))
}
