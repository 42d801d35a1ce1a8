package ws

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

var ErrConnectionClosed = errors.New("websocket connection closed")

// Connectioner is the server-push surface of a single websocket client.
type Connectioner interface {
	SendMessage(message []byte) error
	Close() error
}

type Huber interface {
	http.Handler
	JoinChannel(channel string, conn *Connection)
	LeaveChannel(channel string, conn *Connection)
	ConnectionsInChannel(channel string) []*Connection
	ConnectionsAll() []*Connection
	BroadcastToChannel(channel string, message []byte)
	Broadcast(message []byte)
}

type (
	OnConnectFunc    func(r *http.Request, hub *Hub, conn *Connection) error
	OnDisconnectFunc func(conn *Connection)
)

type HubOptions struct {
	Logger       *logrus.Logger
	CheckOrigin  func(r *http.Request) bool
	OnConnect    OnConnectFunc
	OnDisconnect OnDisconnectFunc
}

type Hub struct {
	upgrader     websocket.Upgrader
	logger       *logrus.Logger
	onConnect    OnConnectFunc
	onDisconnect OnDisconnectFunc

	mu          sync.RWMutex
	connections map[*Connection]struct{}
	channels    map[string]map[*Connection]struct{}
}

func NewHub(opts *HubOptions) *Hub {
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger:       logger,
		onConnect:    opts.OnConnect,
		onDisconnect: opts.OnDisconnect,
		connections:  make(map[*Connection]struct{}),
		channels:     make(map[string]map[*Connection]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("failed to upgrade websocket connection")
		return
	}
	conn := newConnection(wsConn)

	h.mu.Lock()
	h.connections[conn] = struct{}{}
	h.mu.Unlock()

	if h.onConnect != nil {
		if err := h.onConnect(r, h, conn); err != nil {
			h.logger.WithError(err).Error("websocket onConnect rejected connection")
			h.remove(conn)
			_ = conn.Close()
			return
		}
	}

	go conn.writePump()
	go h.readPump(conn)
}

// readPump drains client frames so control messages are processed; the hub is
// push-only, inbound payloads are discarded.
func (h *Hub) readPump(conn *Connection) {
	defer func() {
		h.remove(conn)
		_ = conn.Close()
		if h.onDisconnect != nil {
			h.onDisconnect(conn)
		}
	}()
	conn.conn.SetReadLimit(maxMessageSize)
	_ = conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("websocket read error")
			}
			return
		}
	}
}

func (h *Hub) remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, conn)
	for channel, conns := range h.channels {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.channels, channel)
		}
	}
}

func (h *Hub) JoinChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[conn]; !ok {
		return
	}
	conns, ok := h.channels[channel]
	if !ok {
		conns = make(map[*Connection]struct{})
		h.channels[channel] = conns
	}
	conns[conn] = struct{}{}
}

func (h *Hub) LeaveChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.channels, channel)
	}
}

func (h *Hub) ConnectionsInChannel(channel string) []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Connection, 0, len(h.channels[channel]))
	for conn := range h.channels[channel] {
		conns = append(conns, conn)
	}
	return conns
}

func (h *Hub) ConnectionsAll() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	return conns
}

func (h *Hub) BroadcastToChannel(channel string, message []byte) {
	for _, conn := range h.ConnectionsInChannel(channel) {
		if err := conn.SendMessage(message); err != nil {
			h.logger.WithError(err).Debug("failed to send websocket message")
		}
	}
}

func (h *Hub) Broadcast(message []byte) {
	for _, conn := range h.ConnectionsAll() {
		if err := conn.SendMessage(message); err != nil {
			h.logger.WithError(err).Debug("failed to send websocket message")
		}
	}
}

type Connection struct {
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newConnection(conn *websocket.Conn) *Connection {
	return &Connection{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}
}

func (c *Connection) SendMessage(message []byte) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	case c.send <- message:
		return nil
	default:
		// Slow consumer; drop the connection instead of blocking the hub.
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()
	for {
		select {
		case <-c.closed:
			return
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
