// Package models - Book Catalog
// Books, chapters and their admin-facing request types.
// Catalog entities are authored by administrators and read-only to players.
package models

import "time"

// Difficulty tiers
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// ValidDifficulty reports whether tier is a known difficulty level
func ValidDifficulty(tier string) bool {
	return tier == DifficultyBeginner || tier == DifficultyIntermediate || tier == DifficultyAdvanced
}

// Book represents a reading book in the catalog
type Book struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Author       string    `json:"author" db:"author"`
	Description  string    `json:"description" db:"description"`
	Difficulty   string    `json:"difficulty" db:"difficulty"` // beginner, intermediate, advanced
	CoverURL     string    `json:"cover_url,omitempty" db:"cover_url"`
	ChapterCount int       `json:"chapter_count" db:"chapter_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Chapter is an ordered section of a book containing missions
type Chapter struct {
	ID          string    `json:"id" db:"id"`
	BookID      string    `json:"book_id" db:"book_id"`
	Position    int       `json:"position" db:"position"` // 1-based order within the book
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateBookRequest
type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	CoverURL    string `json:"cover_url"`
}

// UpdateBookRequest uses pointers so omitted fields are left unchanged
type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
	Difficulty  *string `json:"difficulty,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`
}

// CreateChapterRequest
type CreateChapterRequest struct {
	Position    int    `json:"position"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// UpdateChapterRequest
type UpdateChapterRequest struct {
	Position    *int    `json:"position,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Content     *string `json:"content,omitempty"`
}

// BookListResponse wraps a paginated book listing
type BookListResponse struct {
	Data    []Book `json:"data"`
	Total   int    `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
}

// BookSearchRequest carries listing filters
type BookSearchRequest struct {
	Query      string `form:"q"`
	Difficulty string `form:"difficulty"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}
