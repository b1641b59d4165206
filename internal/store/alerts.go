package store

import (
	"sync"
	"time"
)

// AlertKind 提示类型
type AlertKind string

const (
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
)

// Alert 全局提示消息
type Alert struct {
	Kind    AlertKind
	Message string
	Time    time.Time
}

// AlertCenter 全局提示区：只保留最新一条，设置新消息直接替换旧消息，
// 到期自动清除。没有队列。
type AlertCenter struct {
	mu      sync.Mutex
	current *Alert
	timer   *time.Timer
	ttl     time.Duration
	gen     uint64 // 每次写入递增，过期定时器只允许清除自己那一代
}

// NewAlertCenter 创建提示区，ttl 为自动清除时间
func NewAlertCenter(ttl time.Duration) *AlertCenter {
	return &AlertCenter{ttl: ttl}
}

// SetError 设置错误提示
func (a *AlertCenter) SetError(message string) {
	a.set(AlertError, message)
}

// SetSuccess 设置成功提示
func (a *AlertCenter) SetSuccess(message string) {
	a.set(AlertSuccess, message)
}

func (a *AlertCenter) set(kind AlertKind, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gen++
	a.current = &Alert{Kind: kind, Message: message, Time: time.Now()}

	if a.timer != nil {
		a.timer.Stop()
	}
	if a.ttl > 0 {
		gen := a.gen
		a.timer = time.AfterFunc(a.ttl, func() { a.expire(gen) })
	}
}

// expire 过期清除。旧定时器可能已经触发并阻塞在锁上，Stop 拦不住它，
// 所以按代数校验：不是自己那一代就什么都不做。
func (a *AlertCenter) expire(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		return
	}
	a.current = nil
	a.timer = nil
}

// Current 返回当前提示，没有则返回 nil
func (a *AlertCenter) Current() *Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Clear 清除当前提示
func (a *AlertCenter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.current = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
