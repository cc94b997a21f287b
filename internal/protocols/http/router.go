package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"wordquest/internal/core"
	"wordquest/internal/protocols/websocket"
	"wordquest/pkg/config"
)

// Server manages HTTP REST API server
type Server struct {
	router         *gin.Engine
	config         *config.Config
	authSvc        core.AuthService
	bookSvc        core.BookService
	progressSvc    core.ProgressService
	leaderboardSvc core.LeaderboardService
	wsHandler      *websocket.Handler
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	bookSvc core.BookService,
	progressSvc core.ProgressService,
	leaderboardSvc core.LeaderboardService,
	wsHandler *websocket.Handler,
) *Server {
	// Set Gin to release mode by default
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	s := &Server{
		router:         router,
		config:         cfg,
		authSvc:        authSvc,
		bookSvc:        bookSvc,
		progressSvc:    progressSvc,
		leaderboardSvc: leaderboardSvc,
		wsHandler:      wsHandler,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// Real-time event feed
	if s.wsHandler != nil {
		s.router.GET("/ws/events", s.wsHandler.HandleWebSocket)
		s.router.GET("/ws/status", s.wsHandler.GetStatus)
	}

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		// Public catalog reads; answer keys are stripped from mission payloads
		v1.GET("/books", s.listBooks)
		v1.GET("/books/:id", s.getBook)
		v1.GET("/books/:id/chapters", s.listChapters)
		v1.GET("/chapters/:id", s.getChapter)
		v1.GET("/chapters/:id/missions", s.listMissions)
		v1.GET("/missions/:id", s.getMission)

		// Public leaderboard
		v1.GET("/leaderboard", s.getLeaderboard)

		// Protected player routes
		protected := v1.Group("", AuthMiddleware(s.authSvc))
		{
			protected.GET("/me", s.getMe)
			protected.GET("/me/achievements", s.getMyAchievements)
			protected.GET("/me/rank", s.getMyRank)

			protected.GET("/chapters/:id/status", s.getChapterMissionStatuses)
			protected.GET("/chapters/:id/progress", s.getChapterProgress)
			protected.GET("/books/:id/progress", s.getBookProgress)
			protected.POST("/books/:id/position", s.recordPosition)

			protected.POST("/missions/:id/submit", s.submitMission)
		}

		// Admin routes (catalog management)
		admin := v1.Group("/admin", AuthMiddleware(s.authSvc), AdminMiddleware())
		{
			admin.PUT("/users/:id/role", s.updateUserRole)

			admin.POST("/books", s.createBook)
			admin.PUT("/books/:id", s.updateBook)
			admin.DELETE("/books/:id", s.deleteBook)

			admin.POST("/books/:id/chapters", s.createChapter)
			admin.PUT("/chapters/:id", s.updateChapter)
			admin.DELETE("/chapters/:id", s.deleteChapter)

			admin.POST("/chapters/:id/missions", s.createMission)
			admin.PUT("/missions/:id", s.updateMission)
			admin.DELETE("/missions/:id", s.deleteMission)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
