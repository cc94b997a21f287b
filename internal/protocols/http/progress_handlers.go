package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wordquest/pkg/models"
)

// submitMission scores the caller's answers and applies the outcome
func (s *Server) submitMission(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	var req models.SubmitMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	result, err := s.progressSvc.SubmitMission(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, result)
}

// recordPosition updates the caller's navigation cursor in a book
func (s *Server) recordPosition(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	var req models.RecordPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	if err := s.progressSvc.RecordPosition(c.Request.Context(), userID, c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Position recorded",
		Timestamp: time.Now(),
	})
}

// getChapterMissionStatuses returns the chapter's missions with the caller's
// progress and unlock state
func (s *Server) getChapterMissionStatuses(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	statuses, err := s.progressSvc.GetMissionStatuses(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"missions": statuses})
}

// getChapterProgress returns the caller's record for one chapter
func (s *Server) getChapterProgress(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	progress, err := s.progressSvc.GetChapterProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"progress": progress})
}

// getBookProgress returns the caller's navigation cursor for one book
func (s *Server) getBookProgress(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	progress, err := s.progressSvc.GetBookProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"progress": progress})
}

// getMyAchievements returns the caller's achievements, most recent first
func (s *Server) getMyAchievements(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	achievements, err := s.progressSvc.GetAchievements(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"achievements": achievements})
}

// getLeaderboard returns the top players by total points
func (s *Server) getLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := s.leaderboardSvc.Top(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"leaderboard": entries})
}

// getMyRank returns the caller's own standing
func (s *Server) getMyRank(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(401, models.APIResponse{
			Success:   false,
			Error:     "unauthorized",
			Timestamp: time.Now(),
		})
		return
	}

	rank, err := s.leaderboardSvc.Rank(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, rank)
}
