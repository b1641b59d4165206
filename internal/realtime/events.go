package realtime

import "encoding/json"

// EventKind 推送事件类型
type EventKind string

const (
	EventNewMessage      EventKind = "NEW_MESSAGE"
	EventNewNotification EventKind = "NEW_NOTIFICATION"
	EventNewPost         EventKind = "NEW_POST"
	EventUpdatedPost     EventKind = "UPDATED_POST"
)

// Valid 判断事件类型是否受支持
func (k EventKind) Valid() bool {
	switch k {
	case EventNewMessage, EventNewNotification, EventNewPost, EventUpdatedPost:
		return true
	}
	return false
}

// Event 一条推送事件，载荷为完整的实体JSON
type Event struct {
	Kind    EventKind       `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Handler 事件处理函数
type Handler func(Event)
