package realtime

import (
	"context"
	"net/url"
	"sync"

	"tuiter-client/internal/util"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// State 通道连接状态
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Channel 实时推送通道。显式句柄由会话管理器持有并传递，
// 不使用模块级套接字全局变量，多会话和测试可以互相隔离。
// 连接断开后不会自动重连，需要会话管理器重新调用 Connect。
type Channel struct {
	socketURL string
	handler   Handler

	mu            sync.Mutex
	state         State
	conn          *websocket.Conn
	registrations int // 每次连接只注册一次事件分发，计数供测试观察
}

// NewChannel 创建推送通道，handler 在读循环中被逐条调用
func NewChannel(socketURL string, handler Handler) *Channel {
	return &Channel{
		socketURL: socketURL,
		handler:   handler,
	}
}

// Connect 建立连接。已处于 Connecting/Connected 状态时为空操作，
// 防止重复注册事件分发。
func (c *Channel) Connect(ctx context.Context, token string) error {
	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		util.Logger.Debug("通道已连接，忽略重复的连接请求")
		return nil
	}
	c.state = Connecting
	c.mu.Unlock()

	// 会话令牌作为连接查询参数传递
	wsURL := c.socketURL + "?token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		c.mu.Lock()
		if c.state == Connecting {
			c.state = Disconnected
		}
		c.mu.Unlock()
		util.Logger.Error("连接推送通道失败", zap.Error(err))
		return err
	}

	c.mu.Lock()
	if c.state != Connecting {
		// 拨号期间被 Disconnect，断开必须保持，丢弃刚建立的连接
		c.mu.Unlock()
		conn.Close()
		util.Logger.Info("连接期间已被主动断开，丢弃新连接")
		return nil
	}
	c.conn = conn
	c.state = Connected
	c.registrations++ // 事件分发随连接确认注册，且仅此一次
	c.mu.Unlock()

	util.Logger.Info("推送通道已连接")
	go c.readLoop(conn)
	return nil
}

// readLoop 读取推送帧并分发，读错误即转入 Disconnected
func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				util.Logger.Warn("推送通道异常断开", zap.Error(err))
			}
			c.dropConn(conn)
			return
		}

		if !event.Kind.Valid() {
			util.Logger.Warn("收到未知的推送事件", zap.String("kind", string(event.Kind)))
			continue
		}
		if c.handler != nil {
			c.handler(event)
		}
	}
}

// dropConn 仅当当前连接仍是该连接时转入断开状态，
// 避免旧连接的读循环干扰新连接。
func (c *Channel) dropConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conn.Close()
	if c.conn == conn {
		c.conn = nil
		c.state = Disconnected
		util.Logger.Info("推送通道已断开")
	}
}

// Disconnect 主动断开，任意状态下可调用，重复调用是空操作
func (c *Channel) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = Disconnected
	c.mu.Unlock()

	if conn != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		util.Logger.Info("推送通道已断开")
	}
}

// State 返回当前连接状态
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Registrations 返回事件分发注册次数，供测试验证防重复注册
func (c *Channel) Registrations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registrations
}
