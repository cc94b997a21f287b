// Catalog service: books, chapters, missions.
// Reads are public; writes are reserved for administrators at the transport
// layer.
package core

import (
	"context"
	"fmt"

	"wordquest/internal/repository"
	"wordquest/pkg/models"
	"wordquest/pkg/utils"
)

// BookService manages the book/chapter/mission catalog
type BookService interface {
	CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	ListBooks(ctx context.Context, req models.BookSearchRequest) (*models.BookListResponse, error)
	UpdateBook(ctx context.Context, id string, req models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error

	CreateChapter(ctx context.Context, bookID string, req models.CreateChapterRequest) (*models.Chapter, error)
	GetChapter(ctx context.Context, id string) (*models.Chapter, error)
	ListChapters(ctx context.Context, bookID string) ([]models.Chapter, error)
	UpdateChapter(ctx context.Context, id string, req models.UpdateChapterRequest) (*models.Chapter, error)
	DeleteChapter(ctx context.Context, id string) error

	CreateMission(ctx context.Context, chapterID string, req models.CreateMissionRequest) (*models.Mission, error)
	GetMission(ctx context.Context, id string) (*models.Mission, error)
	ListMissions(ctx context.Context, chapterID string) ([]models.Mission, error)
	UpdateMission(ctx context.Context, id string, req models.UpdateMissionRequest) (*models.Mission, error)
	DeleteMission(ctx context.Context, id string) error
}

type bookService struct {
	bookRepo repository.BookRepository
}

// NewBookService creates a new catalog service
func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

// CreateBook validates and stores a new book
func (s *bookService) CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	if err := utils.ValidateBookTitle(req.Title); err != nil {
		return nil, fmt.Errorf("invalid title: %w", err)
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyBeginner
	}
	if !models.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidInput, req.Difficulty)
	}

	book := &models.Book{
		ID:          utils.GenerateBookID(),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		CoverURL:    req.CoverURL,
	}
	if err := s.bookRepo.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook retrieves one book with its chapter count
func (s *bookService) GetBook(ctx context.Context, id string) (*models.Book, error) {
	return s.bookRepo.GetBook(ctx, id)
}

// ListBooks lists books with search filters and pagination
func (s *bookService) ListBooks(ctx context.Context, req models.BookSearchRequest) (*models.BookListResponse, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	if req.Difficulty != "" && !models.ValidDifficulty(req.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidInput, req.Difficulty)
	}

	books, total, err := s.bookRepo.ListBooks(ctx, req)
	if err != nil {
		return nil, err
	}

	return &models.BookListResponse{
		Data:    books,
		Total:   total,
		Limit:   req.Limit,
		Offset:  req.Offset,
		HasMore: req.Offset+len(books) < total,
	}, nil
}

// UpdateBook applies a partial update and returns the new state
func (s *bookService) UpdateBook(ctx context.Context, id string, req models.UpdateBookRequest) (*models.Book, error) {
	if req.Difficulty != nil && !models.ValidDifficulty(*req.Difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidInput, *req.Difficulty)
	}
	if req.Title != nil {
		if err := utils.ValidateBookTitle(*req.Title); err != nil {
			return nil, fmt.Errorf("invalid title: %w", err)
		}
	}
	if err := s.bookRepo.UpdateBook(ctx, id, &req); err != nil {
		return nil, err
	}
	return s.bookRepo.GetBook(ctx, id)
}

// DeleteBook removes a book and everything under it
func (s *bookService) DeleteBook(ctx context.Context, id string) error {
	return s.bookRepo.DeleteBook(ctx, id)
}

// CreateChapter validates and stores a new chapter. A zero position appends
// after the book's existing chapters.
func (s *bookService) CreateChapter(ctx context.Context, bookID string, req models.CreateChapterRequest) (*models.Chapter, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: chapter title is required", models.ErrInvalidInput)
	}
	if _, err := s.bookRepo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	position := req.Position
	if position <= 0 {
		existing, err := s.bookRepo.ListChapters(ctx, bookID)
		if err != nil {
			return nil, err
		}
		position = len(existing) + 1
	}

	chapter := &models.Chapter{
		ID:          utils.GenerateChapterID(),
		BookID:      bookID,
		Position:    position,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	}
	if err := s.bookRepo.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// GetChapter retrieves one chapter
func (s *bookService) GetChapter(ctx context.Context, id string) (*models.Chapter, error) {
	return s.bookRepo.GetChapter(ctx, id)
}

// ListChapters returns a book's chapters in reading order
func (s *bookService) ListChapters(ctx context.Context, bookID string) ([]models.Chapter, error) {
	if _, err := s.bookRepo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.bookRepo.ListChapters(ctx, bookID)
}

// UpdateChapter applies a partial update and returns the new state
func (s *bookService) UpdateChapter(ctx context.Context, id string, req models.UpdateChapterRequest) (*models.Chapter, error) {
	if err := s.bookRepo.UpdateChapter(ctx, id, &req); err != nil {
		return nil, err
	}
	return s.bookRepo.GetChapter(ctx, id)
}

// DeleteChapter removes a chapter and its missions
func (s *bookService) DeleteChapter(ctx context.Context, id string) error {
	return s.bookRepo.DeleteChapter(ctx, id)
}

// CreateMission validates and stores a new mission. The answer key must be
// usable for the declared mode before anything is written.
func (s *bookService) CreateMission(ctx context.Context, chapterID string, req models.CreateMissionRequest) (*models.Mission, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: mission title is required", models.ErrInvalidInput)
	}
	if !models.ValidMode(req.Mode) {
		return nil, fmt.Errorf("%w: unknown mode %q", models.ErrInvalidInput, req.Mode)
	}
	if err := validateMissionData(req.Mode, req.Data); err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}

	position := req.Position
	if position <= 0 {
		existing, err := s.bookRepo.ListMissions(ctx, chapterID)
		if err != nil {
			return nil, err
		}
		position = len(existing) + 1
	}

	mission := &models.Mission{
		ID:          utils.GenerateMissionID(),
		ChapterID:   chapterID,
		Position:    position,
		Mode:        req.Mode,
		Difficulty:  req.Difficulty,
		Title:       req.Title,
		Description: req.Description,
		Data:        req.Data,
	}
	if err := s.bookRepo.CreateMission(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

// GetMission retrieves one mission including its answer key. Transport layers
// call Data.PlayerView() before handing the payload to players.
func (s *bookService) GetMission(ctx context.Context, id string) (*models.Mission, error) {
	return s.bookRepo.GetMission(ctx, id)
}

// ListMissions returns a chapter's missions in play order
func (s *bookService) ListMissions(ctx context.Context, chapterID string) ([]models.Mission, error) {
	if _, err := s.bookRepo.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	return s.bookRepo.ListMissions(ctx, chapterID)
}

// UpdateMission applies a partial update; mode is immutable. A replacement
// payload is validated against the mission's existing mode.
func (s *bookService) UpdateMission(ctx context.Context, id string, req models.UpdateMissionRequest) (*models.Mission, error) {
	if req.Data != nil {
		mission, err := s.bookRepo.GetMission(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := validateMissionData(mission.Mode, *req.Data); err != nil {
			return nil, err
		}
	}
	if err := s.bookRepo.UpdateMission(ctx, id, &req); err != nil {
		return nil, err
	}
	return s.bookRepo.GetMission(ctx, id)
}

// DeleteMission removes a mission
func (s *bookService) DeleteMission(ctx context.Context, id string) error {
	return s.bookRepo.DeleteMission(ctx, id)
}

// validateMissionData rejects payloads whose answer key would make every
// submission unscorable
func validateMissionData(mode string, data models.MissionData) error {
	switch mode {
	case models.ModeKeywords:
		if len(data.CorrectWords) == 0 {
			return fmt.Errorf("%w: keywords mission needs correct_words", models.ErrInvalidMissionData)
		}
	case models.ModeCompletePhrase:
		if len(data.Blanks) == 0 {
			return fmt.Errorf("%w: completarFrase mission needs blanks", models.ErrInvalidMissionData)
		}
		for _, b := range data.Blanks {
			if b.ID == "" || b.CorrectAnswer == "" {
				return fmt.Errorf("%w: blank %q needs an id and a correct answer", models.ErrInvalidMissionData, b.ID)
			}
		}
	case models.ModeOrderSequence:
		if len(data.Sequence) == 0 {
			return fmt.Errorf("%w: ordenar-secuencia mission needs sequence steps", models.ErrInvalidMissionData)
		}
		for _, step := range data.Sequence {
			if step.ID == "" {
				return fmt.Errorf("%w: sequence steps need ids", models.ErrInvalidMissionData)
			}
		}
	}
	return nil
}
