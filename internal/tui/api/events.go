package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// FeedEvent is a single message from the server's event feed
type FeedEvent struct {
	Type      string          `json:"type"`
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// AchievementPayload carries the achievement fields pushed on unlock
type AchievementPayload struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

// MissionUnlockedPayload identifies a newly reachable mission
type MissionUnlockedPayload struct {
	ChapterID string `json:"chapter_id"`
	MissionID string `json:"mission_id"`
}

// EventsClient maintains a WebSocket connection to the progress event feed
type EventsClient struct {
	wsURL  string
	token  string
	conn   *websocket.Conn
	events chan FeedEvent

	mu     sync.Mutex
	closed bool
}

// NewEventsClient creates an events client for the given feed URL
func NewEventsClient(wsURL, token string) *EventsClient {
	return &EventsClient{
		wsURL:  wsURL,
		token:  token,
		events: make(chan FeedEvent, 32),
	}
}

// Connect dials the feed and starts the read loop
func (c *EventsClient) Connect() error {
	u, err := url.Parse(c.wsURL)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}

	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to event feed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop()
	return nil
}

// Events returns the channel events are delivered on. The channel is
// closed when the connection drops or Close is called.
func (c *EventsClient) Events() <-chan FeedEvent {
	return c.events
}

// Close shuts down the connection
func (c *EventsClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.conn != nil {
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

func (c *EventsClient) readLoop() {
	defer func() {
		c.mu.Lock()
		if !c.closed {
			c.closed = true
			c.conn.Close()
		}
		c.mu.Unlock()
		close(c.events)
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var ev FeedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}

		select {
		case c.events <- ev:
		default:
			// UI is not draining; drop rather than block the read loop
		}
	}
}
