package hub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"borderwatch/internal/domain"
)

type ConnState int32

const (
	StateConnecting ConnState = iota
	StateOpen
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type WSConfig struct {
	SendBuffer     int
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

func DefaultWSConfig() WSConfig {
	return WSConfig{
		SendBuffer:     64,
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 4096,
	}
}

// withDefaults fills unset fields so a zero WSConfig still yields a working
// server. The handshake needs at least one slot in the send buffer.
func (c WSConfig) withDefaults() WSConfig {
	d := DefaultWSConfig()
	if c.SendBuffer < 1 {
		c.SendBuffer = d.SendBuffer
	}
	if c.WriteWait <= 0 {
		c.WriteWait = d.WriteWait
	}
	if c.PongWait <= 0 {
		c.PongWait = d.PongWait
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = c.PongWait * 9 / 10
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	return c
}

// Conn is a Channel backed by a WebSocket connection. Sends never block:
// messages go to a buffered queue drained by the write pump.
type Conn struct {
	id     string
	ws     *websocket.Conn
	cfg    WSConfig
	logger *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	state     atomic.Int32
}

func newConn(ws *websocket.Conn, cfg WSConfig, logger *slog.Logger) *Conn {
	id := uuid.NewString()
	return &Conn{
		id:     id,
		ws:     ws,
		cfg:    cfg,
		logger: logger.With(slog.String("channel_id", id)),
		send:   make(chan []byte, cfg.SendBuffer),
		done:   make(chan struct{}),
	}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) State() ConnState { return ConnState(c.state.Load()) }

func (c *Conn) Send(msg []byte) error {
	if c.State() == StateClosed {
		return ErrChannelClosed
	}
	select {
	case <-c.done:
		return ErrChannelClosed
	case c.send <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.state.Store(int32(StateClosed))
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(c.cfg.WriteWait))
		err = c.ws.Close()
	})
	return err
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("ws write failed", slog.Any("error", err))
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ws ping failed", slog.Any("error", err))
				_ = c.Close()
				return
			}
		}
	}
}

// readPump only watches for the peer going away; clients never send commands.
func (c *Conn) readPump() {
	c.ws.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Debug("ws read failed", slog.Any("error", err))
			}
			return
		}
	}
}

// Server upgrades HTTP requests and attaches the resulting connections to a Hub.
type Server struct {
	hub      *Hub
	cfg      WSConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewServer(h *Hub, cfg WSConfig, logger *slog.Logger) *Server {
	s := &Server{
		hub:    h,
		cfg:    cfg.withDefaults(),
		logger: logger.With(slog.String("component", "ws")),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.cfg.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", slog.String("remote", r.RemoteAddr), slog.Any("error", err))
		return
	}

	c := newConn(ws, s.cfg, s.logger)

	// The handshake is queued before the channel becomes visible to broadcasts,
	// so it is always the first frame the client sees.
	hello, err := json.Marshal(domain.NewEvent(domain.ConnectionEstablishedPayload{}, s.hub.now()))
	if err != nil {
		s.logger.Error("handshake marshal failed", slog.Any("error", err))
		_ = c.Close()
		return
	}
	c.send <- hello
	c.state.Store(int32(StateOpen))
	s.hub.Register(c)
	s.logger.Info("ws connected", slog.String("channel_id", c.id), slog.String("remote", r.RemoteAddr))

	go c.writePump()
	c.readPump()

	s.hub.Unregister(c)
	_ = c.Close()
	s.logger.Info("ws disconnected", slog.String("channel_id", c.id))
}
