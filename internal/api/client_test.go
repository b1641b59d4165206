package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tuiter-client/internal/errors"
	"tuiter-client/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T, register func(r *gin.Engine)) (*httptest.Server, *Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL)
}

// TestListTuitsSuccess 测试成功响应的解析
func TestListTuitsSuccess(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/tuits", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Post{
				{ID: "p1", Post: "hello", CreatedAt: created},
			})
		})
	})

	posts, err := client.ListTuits(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	assert.True(t, posts[0].CreatedAt.Equal(created))
}

// TestBearerTokenSent 测试请求携带 Bearer 令牌
func TestBearerTokenSent(t *testing.T) {
	var gotAuth string
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/tuits", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, []model.Post{})
		})
	})

	client.SetToken("token-123")
	_, err := client.ListTuits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

// TestErrorEnvelopeDecoded 测试远端错误体被解析为 AppError
func TestErrorEnvelopeDecoded(t *testing.T) {
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.POST("/tuits", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"message": "帖子内容过长", "code": 42},
			})
		})
	})

	_, err := client.CreateTuit(context.Background(), model.Post{Post: "太长了"})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
	assert.Equal(t, "帖子内容过长", appErr.Message)
}

// TestNotFoundMappedToDomainCode 测试 404 按端点映射为具体的业务错误码
func TestNotFoundMappedToDomainCode(t *testing.T) {
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/users/:id", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "no such user"}})
		})
		r.POST("/tuits/:id/likes", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "no such tuit"}})
		})
	})

	_, err := client.FindUser(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUserNotFound, appErr.Code)

	_, err = client.LikeTuit(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrTuitNotFound, appErr.Code)
}

// TestSessionInvalidFiresHook 测试 401/403 映射为会话失效并触发回调
func TestSessionInvalidFiresHook(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		_, client := newFakeAPI(t, func(r *gin.Engine) {
			r.GET("/profile", func(c *gin.Context) {
				// 不管响应体是什么，都应按会话失效处理
				c.JSON(status, gin.H{"whatever": true})
			})
		})

		fired := 0
		client.SetSessionInvalidHandler(func() { fired++ })

		_, err := client.Profile(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsSessionInvalid(err), "状态码 %d 应映射为会话失效", status)
		assert.Equal(t, 1, fired)
	}
}

// TestAnalyticsRecordsFailures 测试错误分析器记录失败调用
func TestAnalyticsRecordsFailures(t *testing.T) {
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/notifications", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "boom"},
			})
		})
	})

	_, err := client.ListNotifications(context.Background())
	require.Error(t, err)
	_, err = client.ListNotifications(context.Background())
	require.Error(t, err)

	stats := client.Analytics().GetStats()
	assert.Equal(t, 2, stats["total_errors"])
}

// TestContextCancellation 测试取消上下文后调用返回传输层错误
func TestContextCancellation(t *testing.T) {
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/tuits", func(c *gin.Context) {
			time.Sleep(200 * time.Millisecond)
			c.JSON(http.StatusOK, []model.Post{})
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListTuits(ctx)
	require.Error(t, err)
	// 传输层异常不包装为 AppError
	_, ok := errors.AsAppError(err)
	assert.False(t, ok)
}

// TestDeleteTuitNoBody 测试无响应体的删除调用
func TestDeleteTuitNoBody(t *testing.T) {
	_, client := newFakeAPI(t, func(r *gin.Engine) {
		r.DELETE("/tuits/:id", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
	})

	assert.NoError(t, client.DeleteTuit(context.Background(), "p1"))
}
