package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/tradedesk-portal/internal/service"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	clientSendSize = 8
)

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// MarketStream pushes every refreshed market snapshot to connected websocket clients
type MarketStream struct {
	marketService *service.MarketService
	redis         *redis.Client
	upgrader      websocket.Upgrader
	logger        *zap.Logger

	clients    map[*streamClient]struct{}
	clientsMux sync.Mutex
}

// NewMarketStream creates a new MarketStream. Without redis, clients only get the snapshot on connect.
func NewMarketStream(marketService *service.MarketService, redisClient *redis.Client) *MarketStream {
	return &MarketStream{
		marketService: marketService,
		redis:         redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:  zap.L().Named("market_stream"),
		clients: make(map[*streamClient]struct{}),
	}
}

// Run relays snapshots published on the market updates channel until ctx is done
func (s *MarketStream) Run(ctx context.Context) {
	if s.redis == nil {
		return
	}

	pubsub := s.redis.Subscribe(ctx, service.MarketUpdatesChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.Broadcast([]byte(msg.Payload))
		}
	}
}

// Broadcast queues payload for every client; clients too slow to keep up are dropped
func (s *MarketStream) Broadcast(payload []byte) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	for client := range s.clients {
		select {
		case client.send <- payload:
		default:
			delete(s.clients, client)
			close(client.send)
		}
	}
}

// ClientCount returns the number of connected clients
func (s *MarketStream) ClientCount() int {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()
	return len(s.clients)
}

// ServeWS upgrades the request and sends the current snapshot, then every update
// GET /ws/market
func (s *MarketStream) ServeWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &streamClient{conn: conn, send: make(chan []byte, clientSendSize)}

	initial, err := json.Marshal(s.marketService.Snapshot(c.Request.Context()))
	if err != nil {
		s.logger.Error("failed to encode snapshot", zap.Error(err))
		conn.Close()
		return
	}
	client.send <- initial

	s.register(client)
	go s.writeLoop(client)
	s.readLoop(client)
}

func (s *MarketStream) register(client *streamClient) {
	s.clientsMux.Lock()
	s.clients[client] = struct{}{}
	s.clientsMux.Unlock()
}

func (s *MarketStream) unregister(client *streamClient) {
	s.clientsMux.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
	}
	s.clientsMux.Unlock()
}

// readLoop discards client messages and returns when the connection closes
func (s *MarketStream) readLoop(client *streamClient) {
	defer func() {
		s.unregister(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *MarketStream) writeLoop(client *streamClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// RegisterRoutes registers the stream route on the engine root
func (s *MarketStream) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/market", s.ServeWS)
}
