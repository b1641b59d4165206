package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tuiter-client/config"
	"tuiter-client/internal/api"
	"tuiter-client/internal/identity"
	"tuiter-client/internal/realtime"
	"tuiter-client/internal/reconcile"
	"tuiter-client/internal/service"
	"tuiter-client/internal/session"
	"tuiter-client/internal/storage"
	"tuiter-client/internal/store"
	"tuiter-client/internal/util"

	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("客户端启动")

	// 初始化存储后端
	uploader, err := storage.New(config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化存储后端失败", zap.Error(err))
	}

	// 初始化实体仓库、合并器与推送通道
	entityStore := store.NewEntityStore()
	alerts := store.NewAlertCenter(time.Duration(config.AppConfig.AlertTTLSeconds) * time.Second)

	apiClient := api.NewClient(config.AppConfig.APIBaseURL)
	provider := identity.NewHTTPProvider(config.AppConfig.IdentityURL)
	tokens := session.NewTokenStore(config.AppConfig.TokenPath)

	var sessionManager *session.Manager
	rec := reconcile.New(entityStore, func() string {
		if sessionManager == nil {
			return ""
		}
		return sessionManager.CurrentUserID()
	})

	channel := realtime.NewChannel(config.AppConfig.SocketURL, func(event realtime.Event) {
		if err := rec.ApplyEvent(event); err != nil {
			util.Logger.Error("应用推送事件失败", zap.Error(err))
			return
		}
		util.Logger.Info("收到推送事件", zap.String("kind", string(event.Kind)))
	})

	sessionManager = session.NewManager(apiClient, provider, channel, entityStore, tokens)

	// 初始化服务层
	tuitService := service.NewTuitService(apiClient, uploader, rec, entityStore, alerts)
	chatService := service.NewChatService(apiClient, rec, entityStore, alerts)
	notificationService := service.NewNotificationService(apiClient, rec, entityStore, alerts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 优先恢复本地会话，失败则用环境变量中的演示凭据登录
	if err := sessionManager.Restore(ctx); err != nil {
		util.Logger.Info("恢复会话失败，尝试登录", zap.Error(err))
		email := config.AppConfig.DemoEmail
		password := config.AppConfig.DemoPassword
		if email == "" || password == "" {
			util.Logger.Fatal("未设置 TUITER_EMAIL / TUITER_PASSWORD，无法登录")
		}
		if err := sessionManager.Login(ctx, email, password); err != nil {
			util.Logger.Fatal("登录失败", zap.Error(err))
		}
	}

	user := sessionManager.CurrentUser()
	util.Logger.Info("会话已建立",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("profile_complete", sessionManager.ProfileComplete()))

	// 初始数据加载
	if err := tuitService.LoadFeed(ctx); err != nil {
		util.Logger.Error("加载帖子流失败", zap.Error(err))
	}
	if err := tuitService.LoadLikedDisliked(ctx, user.ID); err != nil {
		util.Logger.Error("加载点赞点踩列表失败", zap.Error(err))
	}
	if err := chatService.LoadInbox(ctx); err != nil {
		util.Logger.Error("加载收件箱失败", zap.Error(err))
	}
	if err := notificationService.Load(ctx); err != nil {
		util.Logger.Error("加载通知失败", zap.Error(err))
	}

	// 打印帖子流
	for _, post := range entityStore.Posts.SelectAll() {
		fmt.Printf("[%s] @%s: %s\n",
			post.CreatedAt.Format("2006-01-02 15:04"),
			post.PostedBy.Username,
			post.Post)
	}
	fmt.Printf("未读通知：%d 条\n", notificationService.UnreadCount())
	for _, n := range entityStore.Unread.SelectAll() {
		link, content := n.Describe()
		fmt.Printf("  - %s (%s)\n", content, link)
	}

	// 等待中断信号，推送事件在后台持续合并
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在退出...")

	sessionManager.Logout()

	if config.AppConfig.Debug {
		util.Logger.Info("错误统计", zap.Any("stats", apiClient.Analytics().GetStats()))
	}

	util.Logger.Info("客户端已退出")
}
