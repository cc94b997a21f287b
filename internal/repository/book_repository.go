package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wordquest/pkg/models"
)

// BookRepository handles the book/chapter/mission catalog
type BookRepository interface {
	// Books
	CreateBook(ctx context.Context, book *models.Book) error
	GetBook(ctx context.Context, id string) (*models.Book, error)
	ListBooks(ctx context.Context, req models.BookSearchRequest) ([]models.Book, int, error)
	UpdateBook(ctx context.Context, id string, update *models.UpdateBookRequest) error
	DeleteBook(ctx context.Context, id string) error

	// Chapters
	CreateChapter(ctx context.Context, chapter *models.Chapter) error
	GetChapter(ctx context.Context, id string) (*models.Chapter, error)
	ListChapters(ctx context.Context, bookID string) ([]models.Chapter, error)
	UpdateChapter(ctx context.Context, id string, update *models.UpdateChapterRequest) error
	DeleteChapter(ctx context.Context, id string) error

	// Missions
	CreateMission(ctx context.Context, mission *models.Mission) error
	GetMission(ctx context.Context, id string) (*models.Mission, error)
	ListMissions(ctx context.Context, chapterID string) ([]models.Mission, error)
	UpdateMission(ctx context.Context, id string, update *models.UpdateMissionRequest) error
	DeleteMission(ctx context.Context, id string) error
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL book repository
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

// CreateBook inserts a new book
func (r *bookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (id, title, author, description, difficulty, cover_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, CURRENT_TIMESTAMP))
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		book.ID, book.Title, book.Author, book.Description, book.Difficulty, book.CoverURL, book.CreatedAt,
	).Scan(&book.CreatedAt)
	if err != nil {
		return mapDBError(err, "create_book")
	}
	return nil
}

// GetBook retrieves a book with its chapter count
func (r *bookRepository) GetBook(ctx context.Context, id string) (*models.Book, error) {
	query := `
		SELECT b.id, b.title, b.author, b.description, b.difficulty, b.cover_url, b.created_at,
		       (SELECT COUNT(*) FROM chapters c WHERE c.book_id = b.id) AS chapter_count
		FROM books b
		WHERE b.id = $1
	`
	book := &models.Book{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Description,
		&book.Difficulty, &book.CoverURL, &book.CreatedAt, &book.ChapterCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_book")
	}
	return book, nil
}

// ListBooks lists books with optional title search and difficulty filter
func (r *bookRepository) ListBooks(ctx context.Context, req models.BookSearchRequest) ([]models.Book, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argn := 0

	if req.Query != "" {
		argn++
		where += fmt.Sprintf(" AND (b.title ILIKE $%d OR b.author ILIKE $%d)", argn, argn)
		args = append(args, "%"+req.Query+"%")
	}
	if req.Difficulty != "" {
		argn++
		where += fmt.Sprintf(" AND b.difficulty = $%d", argn)
		args = append(args, req.Difficulty)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM books b " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapDBError(err, "count_books")
	}

	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.author, b.description, b.difficulty, b.cover_url, b.created_at,
		       (SELECT COUNT(*) FROM chapters c WHERE c.book_id = b.id) AS chapter_count
		FROM books b
		%s
		ORDER BY b.title ASC
		LIMIT $%d OFFSET $%d
	`, where, argn+1, argn+2)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapDBError(err, "list_books")
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description,
			&b.Difficulty, &b.CoverURL, &b.CreatedAt, &b.ChapterCount,
		); err != nil {
			return nil, 0, mapDBError(err, "list_books")
		}
		books = append(books, b)
	}
	return books, total, rows.Err()
}

// UpdateBook applies the non-nil fields of update
func (r *bookRepository) UpdateBook(ctx context.Context, id string, update *models.UpdateBookRequest) error {
	query := `
		UPDATE books
		SET title       = COALESCE($2, title),
		    author      = COALESCE($3, author),
		    description = COALESCE($4, description),
		    difficulty  = COALESCE($5, difficulty),
		    cover_url   = COALESCE($6, cover_url)
		WHERE id = $1
		RETURNING id
	`
	var updated string
	err := r.pool.QueryRow(ctx, query, id,
		update.Title, update.Author, update.Description, update.Difficulty, update.CoverURL,
	).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "update_book")
	}
	return nil
}

// DeleteBook removes a book; chapters and missions cascade
func (r *bookRepository) DeleteBook(ctx context.Context, id string) error {
	var deleted string
	err := r.pool.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "book not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "delete_book")
	}
	return nil
}

// CreateChapter inserts a new chapter
func (r *bookRepository) CreateChapter(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (id, book_id, position, title, description, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, CURRENT_TIMESTAMP))
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		chapter.ID, chapter.BookID, chapter.Position, chapter.Title,
		chapter.Description, chapter.Content, chapter.CreatedAt,
	).Scan(&chapter.CreatedAt)
	if err != nil {
		return mapDBError(err, "create_chapter")
	}
	return nil
}

// GetChapter retrieves a chapter by ID
func (r *bookRepository) GetChapter(ctx context.Context, id string) (*models.Chapter, error) {
	query := `
		SELECT id, book_id, position, title, description, content, created_at
		FROM chapters WHERE id = $1
	`
	ch := &models.Chapter{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.BookID, &ch.Position, &ch.Title, &ch.Description, &ch.Content, &ch.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "chapter not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_chapter")
	}
	return ch, nil
}

// ListChapters returns a book's chapters in reading order
func (r *bookRepository) ListChapters(ctx context.Context, bookID string) ([]models.Chapter, error) {
	query := `
		SELECT id, book_id, position, title, description, content, created_at
		FROM chapters WHERE book_id = $1
		ORDER BY position ASC
	`
	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, mapDBError(err, "list_chapters")
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(
			&ch.ID, &ch.BookID, &ch.Position, &ch.Title, &ch.Description, &ch.Content, &ch.CreatedAt,
		); err != nil {
			return nil, mapDBError(err, "list_chapters")
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// UpdateChapter applies the non-nil fields of update
func (r *bookRepository) UpdateChapter(ctx context.Context, id string, update *models.UpdateChapterRequest) error {
	query := `
		UPDATE chapters
		SET position    = COALESCE($2, position),
		    title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    content     = COALESCE($5, content)
		WHERE id = $1
		RETURNING id
	`
	var updated string
	err := r.pool.QueryRow(ctx, query, id,
		update.Position, update.Title, update.Description, update.Content,
	).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "chapter not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "update_chapter")
	}
	return nil
}

// DeleteChapter removes a chapter; missions cascade
func (r *bookRepository) DeleteChapter(ctx context.Context, id string) error {
	var deleted string
	err := r.pool.QueryRow(ctx, `DELETE FROM chapters WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "chapter not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "delete_chapter")
	}
	return nil
}

// CreateMission inserts a new mission; Data marshals to JSONB via pgx
func (r *bookRepository) CreateMission(ctx context.Context, mission *models.Mission) error {
	query := `
		INSERT INTO missions (id, chapter_id, position, mode, difficulty, title, description, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, CURRENT_TIMESTAMP))
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		mission.ID, mission.ChapterID, mission.Position, mission.Mode,
		mission.Difficulty, mission.Title, mission.Description, mission.Data, mission.CreatedAt,
	).Scan(&mission.CreatedAt)
	if err != nil {
		return mapDBError(err, "create_mission")
	}
	return nil
}

// GetMission retrieves a mission by ID, including its answer key
func (r *bookRepository) GetMission(ctx context.Context, id string) (*models.Mission, error) {
	query := `
		SELECT id, chapter_id, position, mode, difficulty, title, description, data, created_at
		FROM missions WHERE id = $1
	`
	m := &models.Mission{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ChapterID, &m.Position, &m.Mode, &m.Difficulty,
		&m.Title, &m.Description, &m.Data, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "mission not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_mission")
	}
	return m, nil
}

// ListMissions returns a chapter's missions in play order
func (r *bookRepository) ListMissions(ctx context.Context, chapterID string) ([]models.Mission, error) {
	query := `
		SELECT id, chapter_id, position, mode, difficulty, title, description, data, created_at
		FROM missions WHERE chapter_id = $1
		ORDER BY position ASC
	`
	rows, err := r.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, mapDBError(err, "list_missions")
	}
	defer rows.Close()

	var missions []models.Mission
	for rows.Next() {
		var m models.Mission
		if err := rows.Scan(
			&m.ID, &m.ChapterID, &m.Position, &m.Mode, &m.Difficulty,
			&m.Title, &m.Description, &m.Data, &m.CreatedAt,
		); err != nil {
			return nil, mapDBError(err, "list_missions")
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

// UpdateMission applies the non-nil fields of update; mode is immutable
func (r *bookRepository) UpdateMission(ctx context.Context, id string, update *models.UpdateMissionRequest) error {
	query := `
		UPDATE missions
		SET position    = COALESCE($2, position),
		    difficulty  = COALESCE($3, difficulty),
		    title       = COALESCE($4, title),
		    description = COALESCE($5, description),
		    data        = COALESCE($6, data)
		WHERE id = $1
		RETURNING id
	`
	var updated string
	err := r.pool.QueryRow(ctx, query, id,
		update.Position, update.Difficulty, update.Title, update.Description, update.Data,
	).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "mission not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "update_mission")
	}
	return nil
}

// DeleteMission removes a mission
func (r *bookRepository) DeleteMission(ctx context.Context, id string) error {
	var deleted string
	err := r.pool.QueryRow(ctx, `DELETE FROM missions WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "mission not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "delete_mission")
	}
	return nil
}
