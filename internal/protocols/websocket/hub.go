// Package websocket - Real-time Event Feed
// Pushes achievement and unlock events to a player's connected clients.
// The feed is push-only: clients never send application messages, and a
// missed event is recoverable from the REST API.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wordquest/pkg/models"
)

// Constants for performance and limits
const (
	maxMessageSize  = 1024                // clients only send control frames
	writeWait       = 10 * time.Second    // Time allowed to write a message
	pongWait        = 60 * time.Second    // Time allowed to read the next pong
	pingPeriod      = (pongWait * 9) / 10 // Send pings to client
	maxFeedClients  = 16                  // Max simultaneous connections per user
	cleanupInterval = 5 * time.Minute     // Empty feed cleanup interval
)

// Event types pushed to clients
const (
	EventAchievementUnlocked = "achievement_unlocked"
	EventMissionUnlocked     = "mission_unlocked"
)

// Event is one feed message
type Event struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// MissionUnlockedPayload announces a newly playable mission
type MissionUnlockedPayload struct {
	ChapterID string `json:"chapter_id"`
	MissionID string `json:"mission_id"`
}

// Hub manages per-user event feeds
type Hub struct {
	feedsMu sync.RWMutex
	feeds   map[string]*feed // user_id -> feed
	stop    chan struct{}
	wg      sync.WaitGroup
}

// feed fans events out to every connection one user holds
type feed struct {
	userID    string
	clientsMu sync.RWMutex
	clients   map[*Client]bool
}

// Client represents one WebSocket connection
type Client struct {
	hub          *Hub
	feed         *feed
	conn         *websocket.Conn
	send         chan *Event
	userID       string
	onDisconnect func()
}

// NewHub creates a new event feed hub
func NewHub() *Hub {
	hub := &Hub{
		feeds: make(map[string]*feed),
		stop:  make(chan struct{}),
	}

	hub.wg.Add(1)
	go hub.cleanupFeeds()

	return hub
}

// NotifyAchievement pushes an achievement award to the user's feed
func (h *Hub) NotifyAchievement(userID string, achievement models.Achievement) {
	h.publish(userID, &Event{
		Type:      EventAchievementUnlocked,
		UserID:    userID,
		Payload:   achievement,
		Timestamp: time.Now(),
	})
}

// NotifyMissionUnlocked announces that a mission opened for the user
func (h *Hub) NotifyMissionUnlocked(userID, chapterID, missionID string) {
	h.publish(userID, &Event{
		Type:      EventMissionUnlocked,
		UserID:    userID,
		Payload:   MissionUnlockedPayload{ChapterID: chapterID, MissionID: missionID},
		Timestamp: time.Now(),
	})
}

// publish delivers an event to every connection the user holds. A user with
// no connections drops the event silently.
func (h *Hub) publish(userID string, event *Event) {
	h.feedsMu.RLock()
	f, exists := h.feeds[userID]
	h.feedsMu.RUnlock()
	if !exists {
		return
	}

	logrus.Debugf("feed publish: user=%s type=%s", userID, event.Type)

	f.clientsMu.RLock()
	defer f.clientsMu.RUnlock()
	for client := range f.clients {
		select {
		case client.send <- event:
		default:
			// slow consumer; drop the event rather than block the caller
			logrus.Warnf("feed buffer full for user %s, dropping event", userID)
		}
	}
}

// cleanupFeeds periodically removes feeds with no connections
func (h *Hub) cleanupFeeds() {
	defer h.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.feedsMu.Lock()
			for userID, f := range h.feeds {
				f.clientsMu.RLock()
				empty := len(f.clients) == 0
				f.clientsMu.RUnlock()
				if empty {
					delete(h.feeds, userID)
				}
			}
			h.feedsMu.Unlock()

		case <-h.stop:
			return
		}
	}
}

// getOrCreateFeed returns the user's feed, creating it on first connect
func (h *Hub) getOrCreateFeed(userID string) *feed {
	h.feedsMu.Lock()
	defer h.feedsMu.Unlock()

	if f, exists := h.feeds[userID]; exists {
		return f
	}

	f := &feed{
		userID:  userID,
		clients: make(map[*Client]bool),
	}
	h.feeds[userID] = f
	return f
}

// ServeClient registers a connection on the user's feed and starts its pumps
func (h *Hub) ServeClient(conn *websocket.Conn, userID string, onDisconnect func()) {
	f := h.getOrCreateFeed(userID)

	f.clientsMu.Lock()
	if len(f.clients) >= maxFeedClients {
		f.clientsMu.Unlock()
		logrus.Warnf("feed for user %s full, rejecting connection", userID)
		conn.Close()
		return
	}

	client := &Client{
		hub:          h,
		feed:         f,
		conn:         conn,
		send:         make(chan *Event, 64),
		userID:       userID,
		onDisconnect: onDisconnect,
	}
	f.clients[client] = true
	f.clientsMu.Unlock()

	logrus.Debugf("feed client connected: user=%s", userID)

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		client.writePump()
	}()
	go func() {
		defer h.wg.Done()
		client.readPump()
	}()
}

// unregister removes a client from its feed
func (f *feed) unregister(client *Client) {
	f.clientsMu.Lock()
	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		close(client.send)
	}
	f.clientsMu.Unlock()
}

// readPump drains the connection so control frames are processed. Any
// application data from the client ends the connection.
func (c *Client) readPump() {
	defer func() {
		if c.onDisconnect != nil {
			c.onDisconnect()
		}
		c.feed.unregister(c)
		c.conn.Close()
		logrus.Debugf("feed client disconnected: user=%s", c.userID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Warnf("WebSocket read error: %v", err)
			}
			break
		}
		// push-only feed; ignore anything the client sends
	}
}

// writePump writes events and keepalive pings to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				logrus.Errorf("Failed to marshal event: %v", err)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ConnectionCount returns the number of live connections for one user
func (h *Hub) ConnectionCount(userID string) int {
	h.feedsMu.RLock()
	defer h.feedsMu.RUnlock()

	if f, exists := h.feeds[userID]; exists {
		f.clientsMu.RLock()
		defer f.clientsMu.RUnlock()
		return len(f.clients)
	}
	return 0
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	logrus.Info("Stopping WebSocket hub...")

	close(h.stop)

	h.feedsMu.Lock()
	for _, f := range h.feeds {
		f.clientsMu.Lock()
		for client := range f.clients {
			close(client.send)
			client.conn.Close()
		}
		f.clients = map[*Client]bool{}
		f.clientsMu.Unlock()
	}
	h.feeds = make(map[string]*feed)
	h.feedsMu.Unlock()

	h.wg.Wait()
	logrus.Info("WebSocket hub stopped")
}
