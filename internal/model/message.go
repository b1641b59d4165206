package model

import "time"

// Conversation 结构体表示会话模型，创建后除删除外不可变
type Conversation struct {
	ID           string        `json:"id"`
	CreatedBy    string        `json:"createdBy"`
	Participants []UserSummary `json:"participants"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Message 结构体表示私信模型，归属于唯一会话
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation"`
	Sender         UserSummary `json:"sender"`
	Message        string      `json:"message"` // 正文
	CreatedAt      time.Time   `json:"createdAt"`
}
