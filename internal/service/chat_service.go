package service

import (
	"context"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
	"tuiter-client/internal/reconcile"
	"tuiter-client/internal/store"
)

// ChatAPI 私信相关的远端调用
type ChatAPI interface {
	ListConversations(ctx context.Context) ([]model.Conversation, error)
	CreateConversation(ctx context.Context, conversation model.Conversation) (model.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	LatestMessages(ctx context.Context) ([]model.Message, error)
	SendMessage(ctx context.Context, conversationID, body string) (model.Message, error)
}

// ChatService 处理与私信相关的业务逻辑
type ChatService struct {
	api    ChatAPI
	rec    *reconcile.Reconciler
	store  *store.EntityStore
	alerts *store.AlertCenter
}

// NewChatService 创建一个新的 ChatService 实例
func NewChatService(api ChatAPI, rec *reconcile.Reconciler, entityStore *store.EntityStore, alerts *store.AlertCenter) *ChatService {
	return &ChatService{
		api:    api,
		rec:    rec,
		store:  entityStore,
		alerts: alerts,
	}
}

// LoadConversations 拉取会话列表并整体替换
func (s *ChatService) LoadConversations(ctx context.Context) error {
	conversations, err := s.api.ListConversations(ctx)
	if err != nil {
		reportError(s.alerts, err, "获取会话列表失败")
		return err
	}
	s.store.Conversations.SetAll(conversations)
	return nil
}

// LoadInbox 拉取收件箱：每个会话最新一条消息，整体替换投影
func (s *ChatService) LoadInbox(ctx context.Context) error {
	messages, err := s.api.LatestMessages(ctx)
	if err != nil {
		reportError(s.alerts, err, "获取收件箱失败")
		return err
	}
	s.store.Inbox.SetAll(messages)
	return nil
}

// LoadConversation 拉取某会话的全部消息，合并进全量日志。
// 不用 SetAll，避免清掉其他会话已有的消息。
func (s *ChatService) LoadConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	messages, err := s.api.ListMessages(ctx, conversationID)
	if err != nil {
		reportError(s.alerts, err, "获取会话消息失败")
		return nil, err
	}
	s.store.Messages.UpsertMany(messages)
	return messages, nil
}

// StartConversation 创建会话。参与者传入完整用户实体（来自搜索结果或资料页），
// 嵌入会话时只保留摘要。参与者列表创建后不可变。
func (s *ChatService) StartConversation(ctx context.Context, participants []model.User) (model.Conversation, error) {
	if len(participants) == 0 {
		return model.Conversation{}, errors.New(errors.ErrValidation, "会话至少需要一个参与者")
	}

	summaries := make([]model.UserSummary, 0, len(participants))
	for _, u := range participants {
		summaries = append(summaries, u.Summary())
	}

	created, err := s.api.CreateConversation(ctx, model.Conversation{Participants: summaries})
	if err != nil {
		reportError(s.alerts, err, "创建会话失败")
		return model.Conversation{}, err
	}
	s.store.Conversations.UpsertOne(created)
	return created, nil
}

// RemoveConversation 删除会话及其收件箱条目
func (s *ChatService) RemoveConversation(ctx context.Context, id string) error {
	if err := s.api.DeleteConversation(ctx, id); err != nil {
		reportError(s.alerts, err, "删除会话失败")
		return err
	}
	s.store.Conversations.RemoveOne(id)
	s.store.Inbox.RemoveOne(id)
	return nil
}

// SendMessage 发送消息，结果经合并策略同时进入全量日志和收件箱投影
func (s *ChatService) SendMessage(ctx context.Context, conversationID, body string) (model.Message, error) {
	if body == "" {
		return model.Message{}, errors.New(errors.ErrValidation, "消息内容不能为空")
	}

	created, err := s.api.SendMessage(ctx, conversationID, body)
	if err != nil {
		reportError(s.alerts, err, "发送消息失败")
		return model.Message{}, err
	}
	s.rec.MergeMessage(created)
	return created, nil
}
