package model

import (
	"regexp"
	"strings"
	"time"
)

// PostStats 帖子统计数据
type PostStats struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	Retuits  int `json:"retuits"`
	Replies  int `json:"replies"`
}

// Post 结构体表示帖子（tuit）模型
type Post struct {
	ID           string      `json:"id"`
	Post         string      `json:"post"` // 正文
	PostedBy     UserSummary `json:"postedBy"`
	Image        string      `json:"image,omitempty"`
	ImagePending string      `json:"-"` // 本地待上传图片引用，不参与序列化
	Hashtags     []string    `json:"hashtags,omitempty"`
	Stats        PostStats   `json:"stats"`
	LikedBy      []string    `json:"likedBy,omitempty"`
	DislikedBy   []string    `json:"dislikedBy,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// LikedByUser 判断指定用户是否点赞了该帖子
func (p Post) LikedByUser(userID string) bool {
	return containsID(p.LikedBy, userID)
}

// DislikedByUser 判断指定用户是否点踩了该帖子
func (p Post) DislikedByUser(userID string) bool {
	return containsID(p.DislikedBy, userID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractHashtags 从正文中提取话题标签，小写去重
func ExtractHashtags(body string) []string {
	matches := hashtagPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
