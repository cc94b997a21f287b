package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"wordquest/pkg/models"
)

// respondError writes the standard error envelope with the mapped status
func respondError(c *gin.Context, err error) {
	c.JSON(models.HTTPStatus(err), models.APIResponse{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

// respondOK writes the standard success envelope
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// listBooks lists books with search filters
func (s *Server) listBooks(c *gin.Context) {
	var req models.BookSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid query parameters",
			Timestamp: time.Now(),
		})
		return
	}

	resp, err := s.bookSvc.ListBooks(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, resp)
}

// getBook retrieves a single book
func (s *Server) getBook(c *gin.Context) {
	book, err := s.bookSvc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"book": book})
}

// listChapters lists a book's chapters in reading order
func (s *Server) listChapters(c *gin.Context) {
	chapters, err := s.bookSvc.ListChapters(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"chapters": chapters})
}

// getChapter retrieves a single chapter
func (s *Server) getChapter(c *gin.Context) {
	chapter, err := s.bookSvc.GetChapter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"chapter": chapter})
}

// listMissions lists a chapter's missions with answer keys stripped
func (s *Server) listMissions(c *gin.Context) {
	missions, err := s.bookSvc.ListMissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	for i := range missions {
		missions[i].Data = missions[i].Data.PlayerView()
	}
	respondOK(c, 200, gin.H{"missions": missions})
}

// getMission retrieves a single mission with the answer key stripped
func (s *Server) getMission(c *gin.Context) {
	mission, err := s.bookSvc.GetMission(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	mission.Data = mission.Data.PlayerView()
	respondOK(c, 200, gin.H{"mission": mission})
}

// createBook adds a book to the catalog (admin)
func (s *Server) createBook(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	book, err := s.bookSvc.CreateBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 201, gin.H{"book": book})
}

// updateBook applies a partial book update (admin)
func (s *Server) updateBook(c *gin.Context) {
	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	book, err := s.bookSvc.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"book": book})
}

// deleteBook removes a book (admin)
func (s *Server) deleteBook(c *gin.Context) {
	if err := s.bookSvc.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Book deleted",
		Timestamp: time.Now(),
	})
}

// createChapter adds a chapter to a book (admin)
func (s *Server) createChapter(c *gin.Context) {
	var req models.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	chapter, err := s.bookSvc.CreateChapter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 201, gin.H{"chapter": chapter})
}

// updateChapter applies a partial chapter update (admin)
func (s *Server) updateChapter(c *gin.Context) {
	var req models.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	chapter, err := s.bookSvc.UpdateChapter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"chapter": chapter})
}

// deleteChapter removes a chapter (admin)
func (s *Server) deleteChapter(c *gin.Context) {
	if err := s.bookSvc.DeleteChapter(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Chapter deleted",
		Timestamp: time.Now(),
	})
}

// createMission adds a mission to a chapter (admin)
func (s *Server) createMission(c *gin.Context) {
	var req models.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	mission, err := s.bookSvc.CreateMission(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 201, gin.H{"mission": mission})
}

// updateMission applies a partial mission update (admin)
func (s *Server) updateMission(c *gin.Context) {
	var req models.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.APIResponse{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now(),
		})
		return
	}

	mission, err := s.bookSvc.UpdateMission(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"mission": mission})
}

// deleteMission removes a mission (admin)
func (s *Server) deleteMission(c *gin.Context) {
	if err := s.bookSvc.DeleteMission(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   "Mission deleted",
		Timestamp: time.Now(),
	})
}
