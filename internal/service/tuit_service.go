package service

import (
	"context"
	"fmt"
	"io"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"
	"tuiter-client/internal/reconcile"
	"tuiter-client/internal/storage"
	"tuiter-client/internal/store"
	"tuiter-client/internal/util"

	"github.com/go-playground/validator/v10"
)

// TuitAPI 帖子相关的远端调用
type TuitAPI interface {
	ListTuits(ctx context.Context) ([]model.Post, error)
	ListTuitsByUser(ctx context.Context, userID string) ([]model.Post, error)
	ListLikedTuits(ctx context.Context, userID string) ([]model.Post, error)
	ListDislikedTuits(ctx context.Context, userID string) ([]model.Post, error)
	CreateTuit(ctx context.Context, post model.Post) (model.Post, error)
	UpdateTuit(ctx context.Context, post model.Post) (model.Post, error)
	DeleteTuit(ctx context.Context, id string) error
	LikeTuit(ctx context.Context, id string) (model.Post, error)
	DislikeTuit(ctx context.Context, id string) (model.Post, error)
}

// NewTuit 创建帖子的输入
type NewTuit struct {
	Body        string `validate:"required,max=280"`
	Image       io.Reader
	ImageName   string
	ImageSize   int64
	ContentType string
}

// TuitService 处理与帖子相关的业务逻辑
type TuitService struct {
	api      TuitAPI
	uploader storage.Uploader
	rec      *reconcile.Reconciler
	store    *store.EntityStore
	alerts   *store.AlertCenter
	validate *validator.Validate
}

// NewTuitService 创建一个新的 TuitService 实例
func NewTuitService(api TuitAPI, uploader storage.Uploader, rec *reconcile.Reconciler, entityStore *store.EntityStore, alerts *store.AlertCenter) *TuitService {
	return &TuitService{
		api:      api,
		uploader: uploader,
		rec:      rec,
		store:    entityStore,
		alerts:   alerts,
		validate: util.NewValidator(),
	}
}

// LoadFeed 拉取全量帖子流并整体替换本地集合
func (s *TuitService) LoadFeed(ctx context.Context) error {
	posts, err := s.api.ListTuits(ctx)
	if err != nil {
		reportError(s.alerts, err, "获取帖子流失败")
		return err
	}
	s.store.Posts.SetAll(posts)
	return nil
}

// LoadUserTuits 拉取某用户发布的帖子，合并进本地集合
func (s *TuitService) LoadUserTuits(ctx context.Context, userID string) ([]model.Post, error) {
	posts, err := s.api.ListTuitsByUser(ctx, userID)
	if err != nil {
		reportError(s.alerts, err, "获取用户帖子失败")
		return nil, err
	}
	s.store.Posts.UpsertMany(posts)
	return posts, nil
}

// LoadLikedDisliked 拉取当前用户点赞、点踩的帖子，刷新两个派生集合
func (s *TuitService) LoadLikedDisliked(ctx context.Context, userID string) error {
	liked, err := s.api.ListLikedTuits(ctx, userID)
	if err != nil {
		reportError(s.alerts, err, "获取点赞列表失败")
		return err
	}
	disliked, err := s.api.ListDislikedTuits(ctx, userID)
	if err != nil {
		reportError(s.alerts, err, "获取点踩列表失败")
		return err
	}
	s.store.LikedPosts.SetAll(liked)
	s.store.DislikedPosts.SetAll(disliked)
	return nil
}

// CreateTuit 两段式创建：先不带图片创建帖子，再上传图片并补丁更新。
// 第二步失败不回滚第一步，帖子按无图保留，上传失败进全局提示区。
func (s *TuitService) CreateTuit(ctx context.Context, input NewTuit) (model.Post, error) {
	if err := s.validate.Struct(input); err != nil {
		return model.Post{}, errors.Wrap(errors.ErrValidation, "帖子内容不合法", err)
	}

	post := model.Post{
		Post:     input.Body,
		Hashtags: model.ExtractHashtags(input.Body),
	}

	created, err := s.api.CreateTuit(ctx, post)
	if err != nil {
		reportError(s.alerts, err, "创建帖子失败")
		return model.Post{}, err
	}
	s.rec.MergePost(created)

	if input.Image == nil {
		return created, nil
	}

	// 上传期间在本地副本上标记待传图片引用，供界面展示占位预览
	created.ImagePending = input.ImageName
	s.rec.MergePost(created)

	filename := util.GenerateUniqueFilename(input.ImageName)
	path := fmt.Sprintf("tuits/%s/%s", created.ID, filename)
	imageURL, err := s.uploader.Upload(ctx, input.Image, input.ImageSize, input.ContentType, path)
	if err != nil {
		// 帖子本身已创建成功，属于可接受的部分成功
		created.ImagePending = ""
		s.rec.MergePost(created)
		reportError(s.alerts, errors.Wrap(errors.ErrUploadFailed, "图片上传失败，帖子已按无图发布", err), "图片上传失败")
		return created, nil
	}

	created.Image = imageURL
	created.ImagePending = ""
	updated, err := s.api.UpdateTuit(ctx, created)
	if err != nil {
		s.rec.MergePost(created)
		reportError(s.alerts, errors.Wrap(errors.ErrUploadFailed, "图片已上传但未能附加到帖子", err), "附加图片失败")
		return created, nil
	}
	s.rec.MergePost(updated)
	return updated, nil
}

// Like 点赞：用远端返回的规范实体整体覆盖本地副本
func (s *TuitService) Like(ctx context.Context, id string) error {
	updated, err := s.api.LikeTuit(ctx, id)
	if err != nil {
		reportError(s.alerts, err, "点赞失败")
		return err
	}
	s.rec.MergePost(updated)
	return nil
}

// Dislike 点踩
func (s *TuitService) Dislike(ctx context.Context, id string) error {
	updated, err := s.api.DislikeTuit(ctx, id)
	if err != nil {
		reportError(s.alerts, err, "点踩失败")
		return err
	}
	s.rec.MergePost(updated)
	return nil
}

// Delete 删除帖子，并从点赞、点踩派生集合中一并清除
func (s *TuitService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTuit(ctx, id); err != nil {
		reportError(s.alerts, err, "删除帖子失败")
		return err
	}
	s.rec.RemovePost(id)
	return nil
}
