package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	ProfilePhoto  string     `json:"profilePhoto"`
	HeaderImage   string     `json:"headerImage"`
	Bio           string     `json:"bio"`
	Birthday      *time.Time `json:"birthday"`
	Joined        time.Time  `json:"joined"`
	FollowerCount int        `json:"followerCount"`
	FolloweeCount int        `json:"followeeCount"`
}

// ProfileComplete 判断资料是否完整：用户名和生日都已填写
func (u User) ProfileComplete() bool {
	return u.Username != "" && u.Birthday != nil
}

// Summary 返回用于嵌入其他实体的用户摘要
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		ProfilePhoto: u.ProfilePhoto,
	}
}

// UserSummary 嵌入帖子、消息、通知中的用户摘要
type UserSummary struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}
