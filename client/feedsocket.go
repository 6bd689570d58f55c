package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stellarburgers/orderclient/pkg/logger"
)

// FeedHandler receives live feed snapshots.
type FeedHandler func(FeedData)

// FeedSocket streams public order feed snapshots over a websocket. Each
// message is a full feed snapshot, same shape as the HTTP endpoint, so the
// feed store can apply it atomically. Reconnecting is the caller's concern.
type FeedSocket struct {
	mu      sync.Mutex
	url     string
	handler FeedHandler
	log     *logger.Logger
	conn    *websocket.Conn
	done    chan struct{}
}

// NewFeedSocket creates a socket for the given ws:// or wss:// URL. An
// http(s) URL is converted.
func NewFeedSocket(feedURL string, handler FeedHandler, log *logger.Logger) *FeedSocket {
	if log == nil {
		log = logger.NewDefault("feedsocket")
	}
	return &FeedSocket{
		url:     WebsocketURL(feedURL),
		handler: handler,
		log:     log,
	}
}

// WebsocketURL converts an http(s) URL to its ws(s) equivalent. Already
// converted URLs pass through.
func WebsocketURL(u string) string {
	switch {
	case strings.HasPrefix(u, "https"):
		return "wss" + u[len("https"):]
	case strings.HasPrefix(u, "http"):
		return "ws" + u[len("http"):]
	default:
		return u
	}
}

// Connect dials the feed endpoint and starts delivering snapshots to the
// handler. Connecting twice is a no-op.
func (s *FeedSocket) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("client: feed socket dial: %w", err)
	}

	s.conn = conn
	s.done = make(chan struct{})
	go s.readLoop(conn, s.done)
	return nil
}

// Close shuts the connection down. Idempotent.
func (s *FeedSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	close(s.done)
	_ = s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *FeedSocket) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
			default:
				s.log.WithError(err).Warn("feed socket read failed")
			}
			return
		}

		var msg feedResponse
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.WithError(err).Warn("feed socket message is not a feed snapshot")
			continue
		}
		if !msg.Success {
			s.log.Warn("feed socket snapshot reported success=false")
			continue
		}
		s.handler(FeedData{Orders: msg.Orders, Total: msg.Total, TotalToday: msg.TotalToday})
	}
}
