package websocket

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wordquest/internal/core"
	"wordquest/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	CheckOrigin:       checkOrigin,
	EnableCompression: true,
	Subprotocols:      []string{"wordquest.tui-v1", "wordquest.web-v1"},
}

// Handler upgrades HTTP connections onto the event feed
type Handler struct {
	hub     *Hub
	authSvc core.AuthService
	metrics struct {
		sync.Mutex
		totalConnections uint64
		activeUsers      map[string]int
	}
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc core.AuthService) *Handler {
	handler := &Handler{
		hub:     hub,
		authSvc: authSvc,
	}
	handler.metrics.activeUsers = make(map[string]int)
	return handler
}

// HandleWebSocket upgrades the connection and attaches it to the caller's
// personal event feed
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token, err := extractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication_required", "message": err.Error()})
		return
	}

	user, err := h.authSvc.ValidateToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// gorilla/websocket writes its own HTTP response when CheckOrigin
		// fails; writing JSON here would double-write
		logrus.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	h.updateMetrics(user.ID, true)
	logger.WebSocket("events", "connected", user.ID)

	h.hub.ServeClient(conn, user.ID, func() {
		h.updateMetrics(user.ID, false)
		logger.WebSocket("events", "disconnected", user.ID)
	})
}

// GetStatus returns global feed statistics
func (h *Handler) GetStatus(c *gin.Context) {
	h.metrics.Lock()
	defer h.metrics.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"total_connections": h.metrics.totalConnections,
		"connected_users":   len(h.metrics.activeUsers),
		"server_time":       time.Now().UTC(),
	})
}

// extractToken extracts the authentication token from the request
func extractToken(c *gin.Context) (string, error) {
	// Query parameter first (TUI clients)
	token := c.Query("token")
	if token != "" {
		return token, nil
	}

	// Authorization header
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1], nil
		}
	}

	// Cookie (web clients)
	cookie, err := c.Request.Cookie("token")
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", fmt.Errorf("no authentication token provided")
}

// checkOrigin validates the request origin
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	// Non-browser clients may omit Origin; treat as allowed.
	if origin == "" {
		return true
	}

	// Always allow local development origins (TUI client).
	if u, err := url.Parse(origin); err == nil {
		host := strings.ToLower(u.Hostname())
		if host == "localhost" || host == "127.0.0.1" || host == "0.0.0.0" {
			return true
		}
	}

	if gin.Mode() == gin.DebugMode {
		return true
	}

	allowed := []string{"https://wordquest.example.com", "https://app.wordquest.example.com"}
	for _, allowedOrigin := range allowed {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}

// updateMetrics updates connection metrics
func (h *Handler) updateMetrics(userID string, connected bool) {
	h.metrics.Lock()
	defer h.metrics.Unlock()

	if connected {
		h.metrics.totalConnections++
		h.metrics.activeUsers[userID]++
	} else {
		if count, exists := h.metrics.activeUsers[userID]; exists {
			count--
			if count <= 0 {
				delete(h.metrics.activeUsers, userID)
			} else {
				h.metrics.activeUsers[userID] = count
			}
		}
	}
}
