package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"wordquest/internal/tui/api"
	"wordquest/internal/tui/styles"
	"wordquest/pkg/models"
)

// BrowseModel displays a paginated book list
type BrowseModel struct {
	apiClient *api.Client

	// Data
	books []models.Book
	total int

	// Filter
	difficulties       []string
	selectedDifficulty string // "" for all

	// Pagination
	page  int
	limit int

	// State
	loading          bool
	err              error
	cursor           int
	difficultyMode   bool // true when selecting difficulty
	difficultyCursor int

	// Window size
	width  int
	height int
}

var difficultyLevels = []string{
	"All",
	models.DifficultyBeginner,
	models.DifficultyIntermediate,
	models.DifficultyAdvanced,
}

// NewBrowseModel creates a new browse model
func NewBrowseModel(apiClient *api.Client) BrowseModel {
	return BrowseModel{
		apiClient:    apiClient,
		page:         1,
		limit:        20,
		cursor:       0,
		difficulties: difficultyLevels,
	}
}

// Init initializes and loads data
func (m BrowseModel) Init() tea.Cmd {
	return m.loadBooks()
}

// Update handles messages
func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Difficulty selection mode
		if m.difficultyMode {
			switch {
			case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "f"))):
				m.difficultyMode = false
				return m, nil

			case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
				m.difficultyCursor++
				if m.difficultyCursor >= len(m.difficulties) {
					m.difficultyCursor = len(m.difficulties) - 1
				}
				return m, nil

			case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
				m.difficultyCursor--
				if m.difficultyCursor < 0 {
					m.difficultyCursor = 0
				}
				return m, nil

			case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
				if m.difficultyCursor == 0 {
					m.selectedDifficulty = "" // "All" means no filter
				} else {
					m.selectedDifficulty = m.difficulties[m.difficultyCursor]
				}
				m.difficultyMode = false
				m.page = 1
				m.cursor = 0
				m.loading = true
				return m, m.loadBooks()
			}
			return m, nil
		}

		// Normal navigation mode
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("f"))):
			// Toggle difficulty filter
			m.difficultyMode = true
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("j", "down"))):
			m.cursor++
			if m.cursor >= len(m.books) {
				m.cursor = len(m.books) - 1
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("k", "up"))):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = 0
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("n", "pgdown"))):
			// Next page
			if m.hasNextPage() {
				m.page++
				m.cursor = 0
				m.loading = true
				return m, m.loadBooks()
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("p", "pgup"))):
			// Previous page
			if m.page > 1 {
				m.page--
				m.cursor = 0
				m.loading = true
				return m, m.loadBooks()
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
			m.loading = true
			return m, m.loadBooks()

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if len(m.books) > 0 {
				book := m.books[m.cursor]
				return m, func() tea.Msg {
					return SelectBookMsg{BookID: book.ID, Title: book.Title}
				}
			}
			return m, nil
		}

	case BookListLoadedMsg:
		m.loading = false
		m.books = msg.Books
		m.total = msg.Total
		return m, nil

	case BrowseErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// View renders the browse view
func (m BrowseModel) View() string {
	var b strings.Builder

	// Difficulty selection overlay
	if m.difficultyMode {
		return m.renderDifficultySelection()
	}

	// Title with pagination info and active filter
	pageInfo := fmt.Sprintf("Page %d/%d", m.page, m.totalPages())
	b.WriteString(styles.TitleStyle.Render("📚 Books"))
	b.WriteString("  ")
	b.WriteString(styles.SubtitleStyle.Render(pageInfo))

	if m.selectedDifficulty != "" {
		b.WriteString("  ")
		b.WriteString(styles.BadgePrimaryStyle.Render(m.selectedDifficulty))
	}
	b.WriteString("\n\n")

	// Loading state
	if m.loading {
		b.WriteString(styles.SpinnerStyle.Render("⟳ "))
		b.WriteString(styles.InfoStyle.Render("Loading books..."))
		return b.String()
	}

	// Error state
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("Press 'r' to retry"))
		return b.String()
	}

	// Empty state
	if len(m.books) == 0 {
		b.WriteString(styles.InfoStyle.Render("No books found"))
		return b.String()
	}

	// Book list
	for i, book := range m.books {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.cursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		title := styles.ListItemTitleStyle.Render(styles.Truncate(book.Title, 40))
		difficulty := m.renderDifficulty(book.Difficulty)
		chapters := styles.SubtitleStyle.Render(fmt.Sprintf("%d ch", book.ChapterCount))

		line := fmt.Sprintf("%s%s %s %s", prefix, title, difficulty, chapters)
		b.WriteString(style.Render(line))

		// Description on next line for selected item
		if i == m.cursor && book.Description != "" {
			desc := styles.Truncate(book.Description, 60)
			b.WriteString("\n    ")
			b.WriteString(styles.ListItemDescStyle.Render(desc))
		}
		b.WriteString("\n")
	}

	// Pagination help
	b.WriteString("\n")
	b.WriteString(styles.RenderDivider(40))
	b.WriteString("\n")

	navHelp := "↑/↓ navigate • Enter open • f filter"
	if m.page > 1 {
		navHelp += " • p prev"
	}
	if m.hasNextPage() {
		navHelp += " • n next"
	}
	navHelp += " • r refresh"

	b.WriteString(styles.HelpStyle.Render(navHelp))

	return b.String()
}

// renderDifficultySelection renders the difficulty filter overlay
func (m BrowseModel) renderDifficultySelection() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🎯 Select Difficulty"))
	b.WriteString("\n\n")

	for i, level := range m.difficulties {
		prefix := "  "
		style := styles.ListItemStyle
		if i == m.difficultyCursor {
			prefix = "▸ "
			style = styles.ListItemSelectedStyle
		}

		// Highlight currently active filter
		label := level
		if (i == 0 && m.selectedDifficulty == "") || level == m.selectedDifficulty {
			label = "✓ " + label
		}

		b.WriteString(style.Render(prefix + label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • Enter select • ESC cancel"))

	return b.String()
}

// renderDifficulty renders a difficulty badge
func (m BrowseModel) renderDifficulty(difficulty string) string {
	switch difficulty {
	case models.DifficultyBeginner:
		return styles.BadgeSuccessStyle.Render(difficulty)
	case models.DifficultyIntermediate:
		return styles.BadgeWarningStyle.Render(difficulty)
	case models.DifficultyAdvanced:
		return styles.BadgePrimaryStyle.Render(difficulty)
	default:
		return styles.BadgeWarningStyle.Render(difficulty)
	}
}

// hasNextPage returns true if there are more pages
func (m BrowseModel) hasNextPage() bool {
	return m.page < m.totalPages()
}

// totalPages calculates total pages
func (m BrowseModel) totalPages() int {
	if m.total == 0 {
		return 1
	}
	pages := m.total / m.limit
	if m.total%m.limit > 0 {
		pages++
	}
	return pages
}

// loadBooks loads the book list with the active difficulty filter
func (m BrowseModel) loadBooks() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		offset := (m.page - 1) * m.limit

		resp, err := m.apiClient.ListBooks(ctx, "", m.selectedDifficulty, m.limit, offset)
		if err != nil {
			return BrowseErrorMsg{Err: err}
		}
		return BookListLoadedMsg{
			Books: resp.Data,
			Total: resp.Total,
		}
	}
}

// GetSelectedBook returns the currently selected book ID
func (m BrowseModel) GetSelectedBook() string {
	if m.cursor < len(m.books) {
		return m.books[m.cursor].ID
	}
	return ""
}

// Messages

// BookListLoadedMsg is sent when the book list is loaded
type BookListLoadedMsg struct {
	Books []models.Book
	Total int
}

// BrowseErrorMsg is sent on browse errors
type BrowseErrorMsg struct {
	Err error
}

// SelectBookMsg is sent when the user opens a book
type SelectBookMsg struct {
	BookID string
	Title  string
}
